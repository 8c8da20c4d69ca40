package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"matchmill/internal/config"
	"matchmill/internal/game"
)

const userAgent = "matchmill/" + game.Version

// Service defines the notification surface exposed to the pipeline.
type Service interface {
	NotifyMatchStarted(ctx context.Context, key string) error
	NotifyMatchCompleted(ctx context.Context, m *game.Match) error
	NotifyMatchFailed(ctx context.Context, key, reason string, err error) error
	NotifyRunCompleted(ctx context.Context, matches, failed int, duration time.Duration) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		toggles:  cfg.Notifications,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	toggles  config.Notifications
}

func (n *ntfyService) NotifyMatchStarted(ctx context.Context, key string) error {
	if !n.toggles.MatchStarted {
		return nil
	}
	data := payload{
		title:   "matchmill - Match Started",
		message: fmt.Sprintf("▶️ Match started: %s", displayKey(key)),
		tags:    []string{"matchmill", "match", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyMatchCompleted(ctx context.Context, m *game.Match) error {
	if !n.toggles.MatchCompleted || m == nil {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 %s on %s: %s", titleCase(m.GameMode), titleCase(m.Map), resultText(m))
	fmt.Fprintf(&b, "\n%d rounds in %s", len(m.Rounds), formatDuration(m.Duration))
	if len(m.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%d warnings", len(m.Warnings))
	}
	fmt.Fprintf(&b, "\nKey: %s", displayKey(m.Key))

	data := payload{
		title:   "matchmill - Match Complete",
		message: b.String(),
		tags:    []string{"matchmill", "match", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyMatchFailed(ctx context.Context, key, reason string, err error) error {
	if !n.toggles.Errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ Match ")
	builder.WriteString(displayKey(key))
	builder.WriteString(" could not be resolved")
	if reason = strings.TrimSpace(reason); reason != "" {
		builder.WriteString(" (")
		builder.WriteString(reason)
		builder.WriteString(")")
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "matchmill - Error",
		message:  builder.String(),
		tags:     []string{"matchmill", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, matches, failed int, duration time.Duration) error {
	if !n.toggles.MatchCompleted {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	title := "matchmill - Run Complete"
	message := fmt.Sprintf("Processing complete: %d matches in %s", matches, duration)
	if failed > 0 {
		title = "matchmill - Run Complete (with errors)"
		message = fmt.Sprintf("Processing complete: %d matches, %d failed in %s", matches, failed, duration)
	}
	data := payload{
		title:   title,
		message: message,
		tags:    []string{"matchmill", "run", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "matchmill - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"matchmill", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyMatchStarted(context.Context, string) error                  { return nil }
func (noopService) NotifyMatchCompleted(context.Context, *game.Match) error           { return nil }
func (noopService) NotifyMatchFailed(context.Context, string, string, error) error    { return nil }
func (noopService) NotifyRunCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) TestNotification(context.Context) error                            { return nil }
