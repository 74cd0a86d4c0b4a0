// Package main implements scentdex-cli, a command-line demo of the perfume search pipeline.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/app"
	"github.com/kailas-cloud/scentdex/internal/config"
	"github.com/kailas-cloud/scentdex/internal/domain/perfume"
	"github.com/kailas-cloud/scentdex/internal/domain/search/facet"
	"github.com/kailas-cloud/scentdex/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/scentdex/internal/logger"
	"github.com/kailas-cloud/scentdex/internal/version"
)

const (
	defaultQuery = "fresh citrus summer fragrance"
	maxNotesLen  = 80
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scentdex-cli [query] [gender]",
	Short: "Search the perfume catalog from the command line",
	Long: `scentdex-cli embeds a natural-language scent description and prints the
closest perfumes from the configured vector index.

Examples:
  # Default query
  scentdex-cli

  # Custom query
  scentdex-cli "warm vanilla for winter evenings"

  # Restrict to a gender
  scentdex-cli "smoky leather" male`,
	Args:         cobra.MaximumNArgs(2),
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, filters := parseArgs(args)

	req, err := request.New(query, filters, nil, request.CLILimits)
	if err != nil {
		return err
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(&cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := logpkg.ContextWithLogger(cmd.Context(), logger.With(zap.String("command", "scentdex-cli")))

	out := cmd.OutOrStdout()
	printHeader(out, query, filters.Gender)

	perfumes, err := a.Search.Search(ctx, &req)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	printResults(out, perfumes)
	return nil
}

// parseArgs maps the positional arguments onto a query and filters.
func parseArgs(args []string) (string, request.Filters) {
	query := defaultQuery
	var filters request.Filters
	if len(args) > 0 && args[0] != "" {
		query = args[0]
	}
	if len(args) > 1 {
		filters.Gender = facet.Gender(args[1])
	}
	return query, filters
}

func printHeader(w io.Writer, query string, gender facet.Gender) {
	if gender != "" {
		fmt.Fprintf(w, "Searching for: %q (gender: %s)\n\n", query, gender)
		return
	}
	fmt.Fprintf(w, "Searching for: %q\n\n", query)
}

func printResults(w io.Writer, perfumes []perfume.Perfume) {
	if len(perfumes) == 0 {
		fmt.Fprintln(w, "No perfumes found.")
		return
	}
	for i, p := range perfumes {
		fmt.Fprintf(w, "%d. %s by %s (%d%% match)\n", i+1, p.Name, p.Brand, perfume.MatchPercent(p.Score))
		fmt.Fprintf(w, "   Family: %s | Rating: %.1f\n", p.OlfactoryFamily, p.Rating)
		fmt.Fprintf(w, "   Notes: %s\n\n", truncate(p.Notes, maxNotesLen))
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
