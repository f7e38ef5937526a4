package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage_Short(t *testing.T) {
	assert.Equal(t, []string{"*Best pick*\nMahomes"}, splitMessage("*Best pick*\nMahomes", maxMessageLength))
}

func TestSplitMessage_OnLineBreaks(t *testing.T) {
	var lines []string
	for i := 0; i < 300; i++ {
		lines = append(lines, "12. Bijan Robinson (RB, ATL) 15.0")
	}
	text := strings.Join(lines, "\n")

	parts := splitMessage(text, maxMessageLength)
	require.Greater(t, len(parts), 1)
	for _, part := range parts {
		assert.LessOrEqual(t, textLength(part), maxMessageLength)
		for _, line := range strings.Split(part, "\n") {
			assert.Equal(t, lines[0], line)
		}
	}
	assert.Equal(t, text, strings.Join(parts, "\n"))
}

func TestSplitMessage_LongLine(t *testing.T) {
	parts := splitMessage("header\n"+strings.Repeat("a", 25), 10)
	assert.Equal(t, []string{"header", "aaaaaaaaaa", "aaaaaaaaaa", "aaaaa"}, parts)
}

func TestSplitMessage_CountsUTF16(t *testing.T) {
	// each emoji is two code units
	parts := splitMessage(strings.Repeat("🏈", 6), 4)
	assert.Equal(t, []string{"🏈🏈", "🏈🏈", "🏈🏈"}, parts)
}
