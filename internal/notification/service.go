package notification

import (
	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/domain"
)

// Job names used in refresh notifications
const (
	JobMatches = "matches"
	JobNews    = "news"
)

// NewService returns the notifier for the configured webhook. Without a
// webhook every call is a no-op.
func NewService(log zerolog.Logger, webhookURL string) domain.NotificationService {
	return NewDiscordService(log, webhookURL)
}
