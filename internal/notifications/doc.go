// Package notifications delivers match lifecycle events via ntfy.
//
// The default implementation publishes to the ntfy topic configured in
// config.toml and degrades to a no-op when no topic is set. Each event kind
// can be switched off individually in the [notifications] section, so the
// pipeline calls the Service unconditionally.
package notifications
