package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"matchmill/internal/config"
	"matchmill/internal/fileutil"
	"matchmill/internal/game"
	"matchmill/internal/matchstore"
	"matchmill/internal/textutil"
)

func newMatchesCommand(ctx *commandContext) *cobra.Command {
	matchesCmd := &cobra.Command{
		Use:   "matches",
		Short: "Inspect and manage stored matches",
	}

	matchesCmd.AddCommand(newMatchesListCommand(ctx))
	matchesCmd.AddCommand(newMatchesShowCommand(ctx))
	matchesCmd.AddCommand(newMatchesDeleteCommand(ctx))
	matchesCmd.AddCommand(newMatchesExportCommand(ctx))

	return matchesCmd
}

type recordJSON struct {
	Key         string      `json:"key"`
	StartedAt   float64     `json:"started_at"`
	Map         string      `json:"map"`
	GameMode    string      `json:"game_mode"`
	Rounds      int         `json:"rounds"`
	Duration    float64     `json:"duration"`
	Won         *bool       `json:"won,omitempty"`
	Score       *game.Score `json:"score,omitempty"`
	GameVersion string      `json:"game_version"`
	Warnings    int         `json:"warnings"`
	UpdatedAt   string      `json:"updated_at"`
}

func newMatchesListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored matches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *matchstore.Store) error {
				records, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					out := make([]recordJSON, 0, len(records))
					for _, r := range records {
						out = append(out, recordJSON{
							Key:         r.Key,
							StartedAt:   r.StartedAt,
							Map:         r.Map,
							GameMode:    r.GameMode,
							Rounds:      r.Rounds,
							Duration:    r.Duration,
							Won:         r.Won,
							Score:       r.Score,
							GameVersion: r.GameVersion,
							Warnings:    r.Warnings,
							UpdatedAt:   r.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
						})
					}
					return writeJSON(cmd, out)
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No matches stored")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderRecordTable(records))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of matches to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newMatchesShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Show a stored match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *matchstore.Store) error {
				m, err := store.Get(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, m)
				}
				renderMatch(cmd.OutOrStdout(), m)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the full match document as JSON")
	return cmd
}

func newMatchesDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>...",
		Short: "Delete stored matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *matchstore.Store) error {
				out := cmd.OutOrStdout()
				missing := 0
				for _, arg := range args {
					key := strings.TrimSpace(arg)
					err := store.Delete(cmd.Context(), key)
					switch {
					case errors.Is(err, matchstore.ErrNotFound):
						missing++
						fmt.Fprintf(out, "Match %s not found\n", key)
					case err != nil:
						return err
					default:
						fmt.Fprintf(out, "Match %s deleted\n", key)
					}
				}
				if missing == len(args) {
					return fmt.Errorf("no matching matches")
				}
				return nil
			})
		},
	}
}

func newMatchesExportCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export <key>...",
		Short: "Write stored matches to JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(dir)
			if err != nil {
				return fmt.Errorf("resolve export directory: %w", err)
			}
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create export directory %q: %w", target, err)
			}
			return ctx.withStore(func(store *matchstore.Store) error {
				for _, arg := range args {
					m, err := store.Get(cmd.Context(), strings.TrimSpace(arg))
					if err != nil {
						return err
					}
					path := filepath.Join(target, textutil.SanitizeFileName(m.Key)+".json")
					data, err := json.MarshalIndent(m, "", "  ")
					if err != nil {
						return fmt.Errorf("encode match %s: %w", m.Key, err)
					}
					if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", m.Key, path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write exported matches to")
	return cmd
}
