package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rail44/adminui/internal/config"
	"github.com/rail44/adminui/internal/log"
	"github.com/rail44/adminui/internal/table"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "adminui",
	Short: "Terminal admin table for member lists",
	Long: `adminui fetches a member list once and lets you search, paginate,
select, edit and delete rows in memory. Nothing is written back to the source.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is adminui.toml in the current or a parent directory)")
	rootCmd.PersistentFlags().String("source", "", "members URL or JSON file")
	rootCmd.PersistentFlags().Int("page-size", 0, "rows per page")
	rootCmd.PersistentFlags().String("log-level", "", "log level (error, warn, info, debug)")

	viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))
	viper.BindPFlag("page_size", rootCmd.PersistentFlags().Lookup("page-size"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// loadConfig reads the config file and applies flags given on the command line
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	if viper.IsSet("source") {
		cfg.Source = viper.GetString("source")
	}
	if viper.IsSet("page_size") {
		cfg.PageSize = viper.GetInt("page_size")
	}
	if viper.IsSet("log_level") {
		cfg.LogLevel = viper.GetString("log_level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Path != "" {
		log.Debug("using config file", slog.String("path", cfg.Path))
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Error("invalid log level", slog.String("level", logLevel))
		os.Exit(1)
	}
	if err := log.SetLevel(level); err != nil {
		log.Error("failed to set log level", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newState builds an empty table configured from cfg
func newState(cfg *config.Config) *table.State {
	opts := []table.Option{table.WithPageSize(cfg.PageSize)}
	if cfg.TransientDeletes {
		opts = append(opts, table.WithTransientDeletes())
	}
	return table.New(opts...)
}
