package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rail44/adminui/internal/config"
	"github.com/rail44/adminui/internal/log"
	"github.com/rail44/adminui/internal/source"
	"github.com/rail44/adminui/internal/ui"
	"github.com/rail44/adminui/internal/watch"
)

var (
	plain     bool
	watchFile bool
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse, search and edit the member table interactively",
	Long: `Browse opens the member table in the terminal. Rows can be searched by
name, selected, edited in place and deleted. Changes live only as long as
the session.

With --watch and a file source, the table reloads whenever the file changes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Error("failed to load configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}

		setupLogging(cfg)

		if err := runBrowse(cmd.Context(), cfg); err != nil {
			log.Error("browse failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	},
}

func init() {
	browseCmd.Flags().BoolVar(&plain, "plain", false, "print the first page instead of starting the TUI")
	browseCmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "reload when the source file changes")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src, err := source.New(cfg, log.Default())
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}

	model := ui.NewModel(ctx, newState(cfg), src)
	p := ui.NewProgram(model, ui.ProgramOptions{Plain: plain})

	if watchFile && p.IsTUIEnabled() {
		if config.IsRemote(cfg.Source) {
			log.Warn("--watch only applies to file sources", slog.String("source", cfg.Source))
		} else {
			watcher, err := watch.NewFileWatcher(src.Location(), p.Reload)
			if err != nil {
				return fmt.Errorf("failed to create file watcher: %w", err)
			}
			defer watcher.Close()
			go watcher.Start(ctx)
		}
	}

	return p.Run(ctx)
}
