package notification

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/domain"
)

// DiscordService implements NotificationService for Discord webhooks
type DiscordService struct {
	log        zerolog.Logger
	webhookURL string
	httpClient *http.Client
	now        func() time.Time
}

func NewDiscordService(log zerolog.Logger, webhookURL string) *DiscordService {
	return &DiscordService{
		log:        log.With().Str("module", "notification").Str("type", "discord").Logger(),
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

// SendSuccess posts the outcome of a refresh job
func (s *DiscordService) SendSuccess(ctx context.Context, stats domain.RefreshStatistics) error {
	if s.webhookURL == "" {
		return nil
	}

	fields := []discordField{
		{Name: "Duration", Value: stats.Duration.Round(time.Millisecond).String(), Inline: true},
	}

	switch stats.Job {
	case JobNews:
		fields = append(fields, discordField{Name: "Articles", Value: fmt.Sprintf("%d", stats.Articles), Inline: true})
	default:
		fields = append(fields,
			discordField{Name: "Live", Value: fmt.Sprintf("%d", stats.Live), Inline: true},
			discordField{Name: "Completed", Value: fmt.Sprintf("%d", stats.Completed), Inline: true},
			discordField{Name: "Upcoming", Value: fmt.Sprintf("%d", stats.Upcoming), Inline: true},
		)
	}

	return s.sendWebhook(ctx, discordWebhook{Embeds: []discordEmbed{{
		Title:     fmt.Sprintf("matchday %s refresh completed", stats.Job),
		Color:     0x00ff00,
		Timestamp: s.now().Format(time.RFC3339),
		Fields:    fields,
	}}})
}

// SendError posts a failed refresh job
func (s *DiscordService) SendError(ctx context.Context, job string, err error) error {
	if s.webhookURL == "" {
		return nil
	}

	return s.sendWebhook(ctx, discordWebhook{Embeds: []discordEmbed{{
		Title:       fmt.Sprintf("matchday %s refresh failed", job),
		Description: fmt.Sprintf("```%s```", err.Error()),
		Color:       0xff0000,
		Timestamp:   s.now().Format(time.RFC3339),
	}}})
}

func (s *DiscordService) sendWebhook(ctx context.Context, payload discordWebhook) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return errors.Wrap(err, "failed to create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send webhook request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	s.log.Debug().Msg("discord notification sent")
	return nil
}

type discordWebhook struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
