package preflight

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"matchmill/internal/config"
	"matchmill/internal/matchstore"
	"matchmill/internal/publish"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckMatchStore opens the match database and verifies its schema.
func CheckMatchStore(ctx context.Context, path string) Result {
	const name = "Match database"

	store, err := matchstore.OpenPath(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	health, err := store.CheckHealth(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (schema v%d, %d matches)", path, health.SchemaVersion, health.Matches)}
}

// CheckNtfyTopic verifies the ntfy topic is an absolute http(s) URL.
func CheckNtfyTopic(topic string) Result {
	const name = "ntfy"

	parsed, err := url.Parse(strings.TrimSpace(topic))
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("invalid topic url (%v)", err)}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Result{Name: name, Detail: "topic url must use http or https"}
	}
	if parsed.Host == "" || strings.Trim(parsed.Path, "/") == "" {
		return Result{Name: name, Detail: "topic url must include host and topic"}
	}
	return Result{Name: name, Passed: true, Detail: parsed.Host + parsed.Path}
}

// CheckRedis pings the configured Redis server.
func CheckRedis(ctx context.Context, cfg config.Redis) Result {
	const name = "Redis"

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := publish.NewRedis(cfg)
	defer client.Close()

	if err := client.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Address, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (stream %s)", cfg.Address, cfg.Stream)}
}
