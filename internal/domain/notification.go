package domain

import (
	"context"
	"time"
)

// NotificationService defines the interface for notification services
type NotificationService interface {
	// SendSuccess sends a success notification with statistics
	SendSuccess(ctx context.Context, stats RefreshStatistics) error

	// SendError sends an error notification with error details
	SendError(ctx context.Context, job string, err error) error
}

// RefreshStatistics holds the outcome of one scheduled refresh
type RefreshStatistics struct {
	Job       string
	Live      int
	Completed int
	Upcoming  int
	Articles  int
	Duration  time.Duration
}
