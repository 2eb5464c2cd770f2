package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/sheetsmith/internal/config"
	"github.com/ShayCichocki/sheetsmith/internal/render"
	"github.com/ShayCichocki/sheetsmith/internal/state"
)

var (
	historyLimit     int
	historyOlderThan string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List generated workbooks",
	Long: `List workbooks recorded by generate and watch, newest first.

History is stored in SQLite at history.db_path, by default
~/.local/share/sheetsmith/history.db.`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one history record",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete history records older than a duration",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPurge,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of records to show (0 for all)")
	historyPurgeCmd.Flags().StringVar(&historyOlderThan, "older-than", "30d", "Delete records older than this age (e.g. 36h, 30d)")

	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyPurgeCmd)
}

// openHistory opens and migrates the configured history database.
func openHistory(cfg *config.Config) (state.HistoryStore, error) {
	db, err := state.OpenMigrated(cfg.HistoryDBPath())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return db, nil
}

// historyExists reports whether the history database has been created.
func historyExists(cfg *config.Config) bool {
	_, err := os.Stat(cfg.HistoryDBPath())
	return err == nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	if !historyExists(cfg) {
		fmt.Fprint(cmd.OutOrStdout(), render.Generations(nil))
		return nil
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	gens, err := store.ListGenerations(historyLimit)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Generations(gens))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteGeneration(args[0]); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no history record with id %s", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n", color.GreenString("✓"), args[0])
	return nil
}

func runHistoryPurge(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	age, err := parseAge(historyOlderThan)
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.PurgeOldGenerations(age)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Purged %d record(s)\n", color.GreenString("✓"), n)
	return nil
}

// parseAge parses a Go duration, also accepting a whole number of days
// such as "30d".
func parseAge(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid age %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid age %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid age %q: must not be negative", s)
	}
	return d, nil
}
