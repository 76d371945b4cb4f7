package notification

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/matchday/internal/domain"
)

func capture(t *testing.T, status int) (*httptest.Server, *[]discordWebhook) {
	t.Helper()
	var got []discordWebhook
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload discordWebhook
		require.NoError(t, json.Unmarshal(b, &payload))
		got = append(got, payload)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestSendSuccess(t *testing.T) {
	srv, got := capture(t, http.StatusNoContent)
	s := NewDiscordService(zerolog.Nop(), srv.URL)
	s.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	err := s.SendSuccess(context.Background(), domain.RefreshStatistics{Job: JobMatches, Live: 2, Completed: 10, Upcoming: 7, Duration: 5200 * time.Millisecond})
	require.NoError(t, err)

	require.Len(t, *got, 1)
	embed := (*got)[0].Embeds[0]
	assert.Equal(t, "matchday matches refresh completed", embed.Title)
	assert.Equal(t, "2026-10-19T12:00:00Z", embed.Timestamp)
	assert.Equal(t, []discordField{
		{Name: "Duration", Value: "5.2s", Inline: true},
		{Name: "Live", Value: "2", Inline: true},
		{Name: "Completed", Value: "10", Inline: true},
		{Name: "Upcoming", Value: "7", Inline: true},
	}, embed.Fields)
}

func TestSendError(t *testing.T) {
	srv, got := capture(t, http.StatusOK)
	s := NewDiscordService(zerolog.Nop(), srv.URL)

	require.NoError(t, s.SendError(context.Background(), JobNews, errors.New("boom")))
	require.Len(t, *got, 1)
	assert.Equal(t, "matchday news refresh failed", (*got)[0].Embeds[0].Title)
	assert.Contains(t, (*got)[0].Embeds[0].Description, "boom")
}

func TestWebhookFailureStatus(t *testing.T) {
	srv, _ := capture(t, http.StatusBadRequest)
	s := NewDiscordService(zerolog.Nop(), srv.URL)

	assert.Error(t, s.SendSuccess(context.Background(), domain.RefreshStatistics{Job: JobNews}))
}

func TestNoWebhookIsNoop(t *testing.T) {
	s := NewService(zerolog.Nop(), "")
	assert.NoError(t, s.SendSuccess(context.Background(), domain.RefreshStatistics{}))
	assert.NoError(t, s.SendError(context.Background(), JobMatches, errors.New("x")))
}
