package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"matchmill/internal/config"
	"matchmill/internal/game"
	"matchmill/internal/notifications"
)

type captured struct {
	calls    int
	title    string
	tags     string
	priority string
	body     string
}

func newServer(t *testing.T, status int) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		got.calls++
		got.title = r.Header.Get("Title")
		got.tags = r.Header.Get("Tags")
		got.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		got.body = string(body)
		w.WriteHeader(status)
		if status >= 300 {
			_, _ = w.Write([]byte("topic is read-only"))
		}
	}))
	t.Cleanup(server.Close)
	return server, got
}

func newService(t *testing.T, url string, mutate func(*config.Notifications)) notifications.Service {
	t.Helper()
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = url
	cfg.Notifications.RequestTimeout = 5
	cfg.Notifications.MatchStarted = true
	if mutate != nil {
		mutate(&cfg.Notifications)
	}
	return notifications.NewService(&cfg)
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = "   "
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyMatchFailed(context.Background(), "k", "no_map", errors.New("boom")); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	won := true
	match := &game.Match{
		Key:      "VALORANT/2020-06-02-13-00-abc123",
		Map:      "ascent",
		GameMode: "spike rush",
		Duration: 754.4,
		Rounds:   make([]game.Round, 7),
		Won:      &won,
		Score:    &game.Score{Won: 4, Lost: 3},
	}

	tests := []struct {
		name           string
		send           func(notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name:          "match started",
			send:          func(s notifications.Service) error { return s.NotifyMatchStarted(context.Background(), "VALORANT/x") },
			expectTitle:   "matchmill - Match Started",
			expectMessage: "▶️ Match started: VALORANT/x",
			expectTags:    "matchmill,match,started",
		},
		{
			name:          "match completed",
			send:          func(s notifications.Service) error { return s.NotifyMatchCompleted(context.Background(), match) },
			expectTitle:   "matchmill - Match Complete",
			expectMessage: "🏁 Spike Rush on Ascent: victory 4-3\n7 rounds in 12m34s\nKey: VALORANT/2020-06-02-13-00-abc123",
			expectTags:    "matchmill,match,completed",
		},
		{
			name: "match failed",
			send: func(s notifications.Service) error {
				return s.NotifyMatchFailed(context.Background(), "", "no_rounds", errors.New("unresolvable match: no rounds"))
			},
			expectTitle:    "matchmill - Error",
			expectMessage:  "❌ Match (unkeyed) could not be resolved (no_rounds): unresolvable match: no rounds",
			expectTags:     "matchmill,error,alert",
			expectPriority: "high",
		},
		{
			name: "run completed with failures",
			send: func(s notifications.Service) error {
				return s.NotifyRunCompleted(context.Background(), 3, 1, 90*time.Second)
			},
			expectTitle:   "matchmill - Run Complete (with errors)",
			expectMessage: "Processing complete: 3 matches, 1 failed in 1m30s",
			expectTags:    "matchmill,run,completed",
		},
		{
			name:           "test",
			send:           func(s notifications.Service) error { return s.TestNotification(context.Background()) },
			expectTitle:    "matchmill - Test",
			expectMessage:  "🧪 Notification system test",
			expectTags:     "matchmill,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, got := newServer(t, http.StatusOK)
			svc := newService(t, server.URL, nil)
			if err := tc.send(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}
			if got.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, got.title)
			}
			if got.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, got.body)
			}
			if got.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, got.tags)
			}
			if got.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, got.priority)
			}
		})
	}
}

func TestNtfyServiceHonoursToggles(t *testing.T) {
	server, got := newServer(t, http.StatusOK)
	svc := newService(t, server.URL, func(n *config.Notifications) {
		n.MatchStarted = false
		n.MatchCompleted = false
		n.Errors = false
	})

	ctx := context.Background()
	_ = svc.NotifyMatchStarted(ctx, "k")
	_ = svc.NotifyMatchCompleted(ctx, &game.Match{Key: "k"})
	_ = svc.NotifyMatchFailed(ctx, "k", "no_map", nil)
	_ = svc.NotifyRunCompleted(ctx, 1, 0, time.Second)
	if got.calls != 0 {
		t.Fatalf("expected suppressed events to skip ntfy, got %d calls", got.calls)
	}

	if err := svc.TestNotification(ctx); err != nil || got.calls != 1 {
		t.Fatalf("test notification must ignore toggles: calls=%d err=%v", got.calls, err)
	}
}

func TestNtfyServiceReportsHTTPErrors(t *testing.T) {
	server, _ := newServer(t, http.StatusForbidden)
	svc := newService(t, server.URL, nil)
	err := svc.TestNotification(context.Background())
	if err == nil || !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "read-only") {
		t.Fatalf("expected status error, got %v", err)
	}
}
