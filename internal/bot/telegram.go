package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLength is Telegram's limit on message text, in UTF-16 code units.
const maxMessageLength = 4096

// simulationCommands replay the rest of the draft once per candidate.
var simulationCommands = map[string]bool{
	"best":    true,
	"bestall": true,
}

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, draftService Reporter) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(draftService),
		chatID:  chatID,
	}, nil
}

// Start answers commands until ctx is done. When a draft chat is configured,
// commands from other chats are ignored.
func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			chatID := update.Message.Chat.ID
			if t.chatID != 0 && chatID != t.chatID {
				slog.Warn("Ignoring command outside the draft chat", "command", update.Message.Command(), "chat_id", chatID)
				continue
			}

			slog.Debug("Handling command", "command", update.Message.Command(), "chat_id", chatID)
			if simulationCommands[update.Message.Command()] {
				if _, err := t.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
					slog.Debug("Error sending chat action", "error", err)
				}
			}
			if err := t.send(t.handler.HandleCommand(ctx, update)); err != nil {
				slog.Error("Error sending message", "error", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	err := t.send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}

// send delivers msg, split into as many messages as its text needs.
func (t *TelegramBot) send(msg tgbotapi.MessageConfig) error {
	parts := splitMessage(msg.Text, maxMessageLength)
	for i, part := range parts {
		msg.Text = part
		if _, err := t.bot.Send(msg); err != nil {
			return fmt.Errorf("sending part %d of %d: %w", i+1, len(parts), err)
		}
	}
	return nil
}

// splitMessage breaks text into parts of at most limit UTF-16 code units.
// Parts end on line breaks so Markdown within a line stays intact; a single
// line over the limit is cut between runes.
func splitMessage(text string, limit int) []string {
	if textLength(text) <= limit {
		return []string{text}
	}

	var parts []string
	var b strings.Builder
	n := 0
	flush := func() {
		if part := strings.TrimRight(b.String(), "\n"); part != "" {
			parts = append(parts, part)
		}
		b.Reset()
		n = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		l := textLength(line)
		if n+l > limit {
			flush()
		}
		for l > limit {
			head, rest := cutText(line, limit)
			parts = append(parts, head)
			line, l = rest, textLength(rest)
		}
		b.WriteString(line)
		n += l
	}
	flush()
	return parts
}

func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func cutText(s string, limit int) (string, string) {
	n := 0
	for i, r := range s {
		if i > 0 && n+utf16.RuneLen(r) > limit {
			return s[:i], s[i:]
		}
		n += utf16.RuneLen(r)
	}
	return s, ""
}
