package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reporter produces the Markdown replies for each command.
type Reporter interface {
	GetBaselinesReport(ctx context.Context) (string, error)
	GetVORPReport(ctx context.Context, position string) (string, error)
	GetBestPickReport(ctx context.Context, team string) (string, error)
	GetBestPicksReport(ctx context.Context) (string, error)
	GetPickReport(ctx context.Context, team, player string) (string, error)
	GetUndoReport(ctx context.Context, team string) (string, error)
	GetRosterReport(ctx context.Context, team string) (string, error)
	GetImportReport(ctx context.Context) (string, error)
	GetRefreshReport(ctx context.Context) (string, error)
	GetDraftBoardReport(ctx context.Context) (string, error)
}

const helpText = `Available commands:
/baselines - Replacement level per position
/vorp [pos] - Top available players by VORP
/best [team] - Best next pick for a team (default: your team)
/bestall - Best next pick for every team
/pick <team> | <player> - Record a pick
/undo <team> - Remove a team's last pick
/roster [team] - View a team's roster
/board - Draft board summary
/import - Import picks from the Sleeper draft
/refresh - Refetch players and projections`

type Handler struct {
	draftService Reporter
}

func NewHandler(draftService Reporter) *Handler {
	return &Handler{draftService: draftService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to the draft assistant! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "baselines":
		h.reply(&msg, "fetching baselines", func() (string, error) {
			return h.draftService.GetBaselinesReport(ctx)
		})
	case "vorp":
		h.reply(&msg, "ranking players", func() (string, error) {
			return h.draftService.GetVORPReport(ctx, args)
		})
	case "best":
		h.reply(&msg, "evaluating best pick", func() (string, error) {
			return h.draftService.GetBestPickReport(ctx, args)
		})
	case "bestall":
		h.reply(&msg, "evaluating best picks", func() (string, error) {
			return h.draftService.GetBestPicksReport(ctx)
		})
	case "pick":
		h.handlePick(ctx, &msg, args)
	case "undo":
		if args == "" {
			msg.Text = "Please provide a team name. Usage: /undo <team>"
			break
		}
		h.reply(&msg, "undoing pick", func() (string, error) {
			return h.draftService.GetUndoReport(ctx, args)
		})
	case "roster":
		h.reply(&msg, "getting team roster", func() (string, error) {
			return h.draftService.GetRosterReport(ctx, args)
		})
	case "board":
		h.reply(&msg, "building draft board", func() (string, error) {
			return h.draftService.GetDraftBoardReport(ctx)
		})
	case "import":
		h.reply(&msg, "importing draft", func() (string, error) {
			return h.draftService.GetImportReport(ctx)
		})
	case "refresh":
		h.reply(&msg, "refreshing players", func() (string, error) {
			return h.draftService.GetRefreshReport(ctx)
		})
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) reply(msg *tgbotapi.MessageConfig, action string, report func() (string, error)) {
	text, err := report()
	if err != nil {
		msg.Text = fmt.Sprintf("Error %s: %v", action, err)
		msg.ParseMode = ""
		return
	}
	msg.Text = text
}

func (h *Handler) handlePick(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	team, player, ok := strings.Cut(args, "|")
	team, player = strings.TrimSpace(team), strings.TrimSpace(player)
	if !ok || team == "" || player == "" {
		msg.Text = "Please provide a team and a player. Usage: /pick <team> | <player>"
		return
	}
	h.reply(msg, "recording pick", func() (string, error) {
		return h.draftService.GetPickReport(ctx, team, player)
	})
}
