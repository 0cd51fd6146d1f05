package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/K0NGR3SS/critfindings/internal/report"
)

const maxListed = 10

type SlackNotifier struct {
	WebhookURL string
	Channel    string
	HTTP       *http.Client
}

type slackMessage struct {
	Channel     string            `json:"channel,omitempty"`
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji"`
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text,omitempty"`
	Fields []slackField `json:"fields,omitempty"`
	Footer string       `json:"footer,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func NewSlackNotifier(webhookURL, channel string) *SlackNotifier {
	return &SlackNotifier{
		WebhookURL: webhookURL,
		Channel:    channel,
		HTTP:       http.DefaultClient,
	}
}

// SendReport posts a summary of the critical findings of appName.
func (s *SlackNotifier) SendReport(ctx context.Context, appName string, entries []report.Entry, truncated bool) error {
	if len(entries) == 0 {
		return s.sendMessage(ctx, slackMessage{
			Channel:   s.Channel,
			Username:  "critfindings",
			IconEmoji: ":white_check_mark:",
			Text:      fmt.Sprintf("*%s*: no critical severity findings.", appName),
		})
	}

	listed := ""
	for i, e := range entries {
		if i >= maxListed {
			listed += fmt.Sprintf("\n_...and %d more_", len(entries)-maxListed)
			break
		}
		listed += fmt.Sprintf("• `#%s` %s\n", e.ID, e.Title)
	}

	fields := []slackField{
		{Title: "Application", Value: appName, Short: true},
		{Title: "Critical", Value: fmt.Sprintf("%d", len(entries)), Short: true},
	}
	footer := ""
	if truncated {
		footer = report.TruncatedWarning
	}

	return s.sendMessage(ctx, slackMessage{
		Channel:   s.Channel,
		Username:  "critfindings",
		IconEmoji: ":rotating_light:",
		Text:      fmt.Sprintf("*%s* has *%d* critical severity findings", appName, len(entries)),
		Attachments: []slackAttachment{
			{
				Color:  "danger",
				Title:  "Critical Findings",
				Text:   listed,
				Fields: fields,
				Footer: footer,
			},
		},
	})
}

func (s *SlackNotifier) sendMessage(ctx context.Context, msg slackMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned non-200 status: %d", resp.StatusCode)
	}

	return nil
}
