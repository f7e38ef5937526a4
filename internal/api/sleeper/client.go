package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/djones2085/ffp/internal/config"
)

type Client struct {
	httpClient *http.Client
	Config     config.Sleeper
}

func NewClient(cfg config.Sleeper) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		Config:     cfg,
	}
}

func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, result interface{}) error {
	url := fmt.Sprintf("%s%s", strings.TrimRight(c.Config.BaseURL, "/"), endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		values := strings.Split(value, ",")
		for _, v := range values {
			q.Add(key, strings.TrimSpace(v))
		}
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}
