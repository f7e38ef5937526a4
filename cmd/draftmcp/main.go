package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/djones2085/ffp/internal/api/fantasy"
	"github.com/djones2085/ffp/internal/api/sleeper"
	"github.com/djones2085/ffp/internal/config"
	"github.com/djones2085/ffp/internal/repository/memory"
	"github.com/djones2085/ffp/internal/service"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultLimit = 20

type TeamArgs struct {
	Team string `json:"team,omitempty" jsonschema:"Team name (default: your team)"`
}

type RankingsArgs struct {
	Position string `json:"position,omitempty" jsonschema:"QB|RB|WR|TE|K|DEF (empty = all)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum players to return (default 20)"`
}

type PickArgs struct {
	Team   string `json:"team" jsonschema:"Team making the pick (required)"`
	Player string `json:"player" jsonschema:"Player name or Sleeper id (required)"`
}

type NoArgs struct{}

func main() {
	if err := run(); err != nil {
		slog.Error("Error running MCP server", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// stdout carries the protocol
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	settings, err := service.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}

	fantasyAPI := fantasy.NewAPI(sleeper.NewAPI(sleeper.NewClient(cfg.Sleeper)))
	draftService := service.NewDraftService(fantasyAPI, memory.NewRepository(), settings, nil)

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ffp-draft-mcp",
			Version: "0.1.0",
		},
		nil,
	)
	registerTools(server, draftService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func registerTools(server *mcp.Server, s *service.DraftService) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "baselines",
		Description: "Replacement-level projected points per position and for FLEX",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		b, err := s.Board(ctx)
		if err != nil {
			return toolError(err), nil, nil
		}
		out := map[string]any{}
		for pos, bl := range b.Baselines.Positions {
			out[pos.String()] = bl
		}
		if b.Baselines.Flex != nil {
			out["FLEX"] = b.Baselines.Flex
		}
		return toolJSON(json.Marshal(out))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "vorp_rankings",
		Description: "Best available players by value over replacement",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RankingsArgs) (*mcp.CallToolResult, any, error) {
		limit := args.Limit
		if limit <= 0 {
			limit = defaultLimit
		}
		players, err := s.TopAvailable(ctx, args.Position, limit)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(players))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "best_pick",
		Description: "Simulate the rest of the draft for every candidate and return the pick that maximizes the team's final total, with the simulated final rosters",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
		rec, err := s.Recommend(ctx, args.Team)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(rec))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "best_picks",
		Description: "Best next pick for every team from the current draft state",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		recs, err := s.Recommendations(ctx)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(recs))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_pick",
		Description: "Record that a team drafted a player",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PickArgs) (*mcp.CallToolResult, any, error) {
		if args.Team == "" || args.Player == "" {
			return toolError(fmt.Errorf("team and player are required")), nil, nil
		}
		player, team, err := s.RecordPick(ctx, args.Team, args.Player)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(map[string]any{"team": team, "player": player}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "undo_pick",
		Description: "Remove a team's most recent pick",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
		player, team, err := s.UndoPick(ctx, args.Team)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(map[string]any{"team": team, "player": player}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "roster",
		Description: "A team's roster slots and projected total",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
		view, err := s.RosterView(ctx, args.Team)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(view))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_draft",
		Description: "Replace recorded picks with those from the configured Sleeper draft",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		n, err := s.ImportDraft(ctx)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.Marshal(map[string]int{"imported": n}))
	})
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
