package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rail44/adminui/internal/config"
	"github.com/rail44/adminui/internal/formatter"
	"github.com/rail44/adminui/internal/log"
	"github.com/rail44/adminui/internal/source"
)

type listOptions struct {
	search string
	page   int
	format string
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the member table",
	Long: `List fetches the members, applies the search query and prints the
requested page as a table, Markdown or JSON.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Error("failed to load configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}

		setupLogging(cfg)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := runList(ctx, cmd.OutOrStdout(), cfg, listOpts); err != nil {
			log.Error("list failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "", "only show users whose name contains this text")
	listCmd.Flags().IntVarP(&listOpts.page, "page", "p", 1, "page to print")
	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", string(formatter.FormatTable), "output format (table, markdown, json)")
	rootCmd.AddCommand(listCmd)
}

func runList(ctx context.Context, w io.Writer, cfg *config.Config, opts listOptions) error {
	format, err := formatter.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	src, err := source.New(cfg, log.Default())
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}

	state := newState(cfg)
	state.Initialize(source.Load(ctx, src, log.Default()))
	state.SetSearchQuery(opts.search)
	state.SetPage(opts.page)

	out, err := formatter.Render(format, state.Snapshot())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
