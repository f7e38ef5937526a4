package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/djones2085/ffp/internal/draft"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	TelegramBot TelegramBot
	Sleeper     Sleeper
	League      League
	Scheduler   Scheduler
	Server      Server
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type Sleeper struct {
	BaseURL string        `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	Season  string        `envconfig:"SEASON" default:"2026"`
	Scoring string        `envconfig:"SCORING" default:"pts_ppr"`
	DraftID string        `envconfig:"SLEEPER_DRAFT_ID"`
	Timeout time.Duration `envconfig:"SLEEPER_TIMEOUT" default:"10s"`
}

type League struct {
	Size          int           `envconfig:"LEAGUE_SIZE" default:"12"`
	Teams         []string      `envconfig:"TEAMS"`
	MyTeam        string        `envconfig:"MY_TEAM" default:"MyTeam"`
	Roster        string        `envconfig:"ROSTER" default:"QB,RB,RB,WR,WR,TE,FLEX,K,DEF,BN:6"`
	DraftOrder    string        `envconfig:"DRAFT_ORDER" default:"fixed"`
	Workers       int           `envconfig:"WORKERS" default:"4"`
	MaxCandidates int           `envconfig:"MAX_CANDIDATES" default:"0"`
	PoolTTL       time.Duration `envconfig:"POOL_TTL" default:"24h"`
}

type Scheduler struct {
	RefreshCron string `envconfig:"REFRESH_CRON" default:"0 6 * * *"`
	BoardCron   string `envconfig:"BOARD_CRON" default:"0 9 * * *"`
	Timezone    string `envconfig:"TIMEZONE" default:"America/Chicago"`
}

type Server struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if _, err := draft.ParseTemplate(c.League.Roster); err != nil {
		return fmt.Errorf("ROSTER: %w", err)
	}
	if _, err := draft.ParseOrder(c.League.DraftOrder); err != nil {
		return fmt.Errorf("DRAFT_ORDER: %w", err)
	}
	if len(c.League.Teams) == 0 && c.League.Size < 1 {
		return fmt.Errorf("LEAGUE_SIZE must be positive, got %d", c.League.Size)
	}
	seen := make(map[string]bool)
	for _, t := range c.League.TeamNames() {
		key := strings.ToLower(t)
		if seen[key] {
			return fmt.Errorf("TEAMS: duplicate team name %q", t)
		}
		seen[key] = true
	}
	for name, expr := range map[string]string{
		"REFRESH_CRON": c.Scheduler.RefreshCron,
		"BOARD_CRON":   c.Scheduler.BoardCron,
	} {
		if expr == "" {
			continue
		}
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// TeamNames returns the configured team names, or generated ones when only
// a league size is set. MY_TEAM is always present, and generated names skip
// it.
func (l League) TeamNames() []string {
	teams := make([]string, 0, max(len(l.Teams), l.Size))
	for _, t := range l.Teams {
		if t = strings.TrimSpace(t); t != "" {
			teams = append(teams, t)
		}
	}
	if len(teams) == 0 {
		teams = append(teams, l.MyTeam)
		for i := 1; len(teams) < l.Size; i++ {
			name := fmt.Sprintf("Team%d", i)
			if strings.EqualFold(name, l.MyTeam) {
				continue
			}
			teams = append(teams, name)
		}
		return teams
	}

	for _, t := range teams {
		if strings.EqualFold(t, l.MyTeam) {
			return teams
		}
	}
	return append(teams, l.MyTeam)
}
