package shiftleft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/K0NGR3SS/critfindings/internal/config"
	"github.com/K0NGR3SS/critfindings/internal/models"
	"github.com/K0NGR3SS/critfindings/internal/placeholder"
	"go.uber.org/zap"
)

// MaxPageSize is the largest per_page value the findings endpoint accepts.
const MaxPageSize = 249

const (
	appsPath     = "/orgs/{orgID}/apps"
	findingsPath = "/orgs/{orgID}/apps/{appID}/findings"
)

type Client struct {
	HTTP   *http.Client
	vars   map[string]string
	logger *zap.Logger
}

type FindingsPage struct {
	Findings []models.Finding
	// Truncated is set when the API reported a further page that was not fetched.
	Truncated bool
}

type appsResponse struct {
	Response []models.Application `json:"response"`
}

type findingsResponse struct {
	Response struct {
		Findings []models.Finding `json:"findings"`
	} `json:"response"`
	NextPage json.RawMessage `json:"next_page"`
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		vars:   cfg.Vars(),
		logger: logger,
	}
}

// GetApplicationID returns the id of the first application whose name equals name exactly.
func (c *Client) GetApplicationID(ctx context.Context, name string) (string, error) {
	var body appsResponse
	if err := c.get(ctx, placeholder.URL(c.vars, appsPath, nil), nil, &body); err != nil {
		return "", fmt.Errorf("failed to list applications: %w", err)
	}

	for _, app := range body.Response {
		if app.Name == name {
			c.logger.Debug("resolved application", zap.String("name", name), zap.String("id", app.ID))
			return app.ID, nil
		}
	}

	return "", &ApplicationNotFoundError{Name: name, OrgID: c.vars["orgID"]}
}

// GetCriticalFindings fetches a single page of critical findings for appID.
func (c *Client) GetCriticalFindings(ctx context.Context, appID string) (*FindingsPage, error) {
	query := url.Values{}
	query.Set("severity", models.SeverityCritical)
	query.Set("per_page", strconv.Itoa(MaxPageSize))

	endpoint := placeholder.URL(c.vars, findingsPath, map[string]string{"appID": url.PathEscape(appID)})

	var body findingsResponse
	if err := c.get(ctx, endpoint, query, &body); err != nil {
		return nil, fmt.Errorf("failed to list findings for %s: %w", appID, err)
	}

	page := &FindingsPage{
		Findings:  body.Response.Findings,
		Truncated: truthy(body.NextPage),
	}
	if page.Truncated {
		c.logger.Debug("findings response has more pages, only the first was fetched",
			zap.String("app_id", appID),
			zap.Int("per_page", MaxPageSize),
			zap.Int("returned", len(page.Findings)))
	}

	return page, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", placeholder.Resolve(c.vars, "{authHDR}", nil))
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("GET", zap.String("url", endpoint))

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Body:       string(bytes.TrimSpace(snippet)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}

	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
