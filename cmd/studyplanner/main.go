package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"studyplanner/internal/bootstrap"
	"studyplanner/internal/platform/config"
	"studyplanner/internal/platform/notify"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir   string
	ephemeral bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studyplanner",
		Short:         "Plan study sessions with spaced repetition",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default ~/.studyplanner)")
	root.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep all data in memory for this run")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log warnings and background errors to stderr")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newBadgesCmd(opts))
	root.AddCommand(newTimerCmd(opts))
	root.AddCommand(newResourceCmd(opts))
	root.AddCommand(newWatchlistCmd(opts))
	root.AddCommand(newThemeCmd(opts))
	root.AddCommand(newTourCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newLogCmd(opts))
	return root
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	return config.Load(config.Options{DataDir: opts.dataDir, Ephemeral: opts.ephemeral})
}

func newLogger(opts *rootOptions) *log.Logger {
	out := io.Discard
	if opts.verbose {
		out = os.Stderr
	}
	return log.New(out, "studyplanner: ", log.LstdFlags)
}

// loadApp wires the application for one command. Notifications go to
// stderr so stdout stays scriptable.
func loadApp(ctx context.Context, opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := newLogger(opts)
	return bootstrap.New(ctx, cfg, notify.NewLogged(notify.NewWriter(os.Stderr), logger), logger)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger := newLogger(opts)
			messages := notify.NewChannel(32)
			app, err := bootstrap.New(cmd.Context(), cfg, notify.NewLogged(messages, logger), logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(cmd.Context(), app, messages.C())
		},
	}
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	themeCmd := &cobra.Command{Use: "theme", Short: "Show or change the color theme"}

	themeCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the effective theme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.PreferenceCLI.Theme(cmd.Context())
			if err != nil {
				return err
			}
			source := "saved"
			if !out.Saved {
				source = "terminal"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", out.Theme, source)
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Save a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.PreferenceCLI.SetTheme(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme=%s saved=%t\n", out.Theme, out.Saved)
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.PreferenceCLI.ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme=%s saved=%t\n", out.Theme, out.Saved)
			return nil
		},
	})
	return themeCmd
}

func newTourCmd(opts *rootOptions) *cobra.Command {
	tour := &cobra.Command{
		Use:   "tour",
		Short: "Show whether the first-run tour was completed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.PreferenceCLI.Tour(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed=%t\n", out.Completed)
			return nil
		},
	}

	tour.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Show the tour again on the next TUI launch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.PreferenceCLI.ResetTour(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed=%t\n", out.Completed)
			return nil
		},
	})
	return tour
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{Use: "config", Short: "Inspect or create the config file"}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write config.yaml with the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			path, err := config.WriteFile(cfg, force)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# data dir: %s\n# db: %s\n# activity log: %s\n",
				cfg.DataDir, cfg.DBPath, cfg.ActivityLogPath)
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	configCmd.AddCommand(initCmd, showCmd)
	return configCmd
}

func newLogCmd(opts *rootOptions) *cobra.Command {
	var n int
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Print recent activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			events, err := app.Activity.Tail(n)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no activity")
				return nil
			}
			for _, e := range events {
				var details []string
				if e.Subject != "" {
					details = append(details, fmt.Sprintf("%q", e.Subject))
				}
				if e.Level > 0 {
					details = append(details, fmt.Sprintf("level=%d", e.Level))
				}
				if e.NextDate != "" {
					details = append(details, "next="+e.NextDate)
				}
				if e.BadgeID != "" {
					details = append(details, "badge="+e.BadgeID)
				}
				if e.Count > 0 {
					details = append(details, fmt.Sprintf("count=%d", e.Count))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-18s %s\n",
					e.Time.Local().Format("2006-01-02 15:04"), e.Event, strings.Join(details, " "))
			}
			return nil
		},
	}
	logCmd.Flags().IntVarP(&n, "lines", "n", 20, "number of events (0 for all)")
	return logCmd
}
