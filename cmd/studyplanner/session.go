package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	sessiondto "studyplanner/internal/modules/session/dto"
	timerdto "studyplanner/internal/modules/timer/dto"
)

func newSessionCmd(opts *rootOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Study session commands"}

	var date, at, notes string
	var duration int
	var tags []string
	add := &cobra.Command{
		Use:   "add <subject>",
		Short: "Schedule a study session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Add(cmd.Context(), strings.Join(args, " "), date, at, duration, notes, tags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) on %s\n", out.Session.Subject, out.Session.ID, out.Session.Date)
			return nil
		},
	}
	add.Flags().StringVar(&date, "date", "today", "date: YYYY-MM-DD, today, tomorrow or +N")
	add.Flags().StringVar(&at, "time", "", "time of day HH:MM (optional)")
	add.Flags().IntVar(&duration, "duration", 30, "duration in minutes (1-480)")
	add.Flags().StringVar(&notes, "notes", "", "notes")
	add.Flags().StringSliceVar(&tags, "tags", nil, "tags")

	var status, tag, query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions ordered by date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			sessions, err := app.SessionCLI.List(cmd.Context(), status, tag, query)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				printSession(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", sessiondto.StatusAll, "all|upcoming|completed")
	list.Flags().StringVar(&tag, "tag", "", "only sessions with this tag")
	list.Flags().StringVar(&query, "query", "", "subject or notes contain this text")

	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a session completed and schedule the next review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Complete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !out.Changed {
				return fmt.Errorf("session not found: %s", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %s: level=%d next=%s (+%dd)\n",
				out.Session.Subject, out.Session.Level, out.Session.Date, out.IntervalDays)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !out.Changed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no session %s\n", args[0])
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", out.ID)
			return nil
		},
	}

	var importFormat string
	importCmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Merge sessions from a JSON, CSV or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Import(cmd.Context(), args[0], importFormat)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "read %d, added %d\n", out.Read, out.Added)
			return nil
		},
	}
	importCmd.Flags().StringVar(&importFormat, "format", "", "json|csv|yaml (default: from extension)")

	var exportFormat, exportStatus, exportTag string
	exportCmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write sessions to a file, or markdown notes into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Export(cmd.Context(), args[0], exportFormat, exportStatus, exportTag)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions\n", out.Count)
			for _, p := range out.Paths {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", p)
			}
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json|csv|yaml|markdown (default: from extension)")
	exportCmd.Flags().StringVar(&exportStatus, "status", sessiondto.StatusAll, "all|upcoming|completed")
	exportCmd.Flags().StringVar(&exportTag, "tag", "", "only sessions with this tag")

	sample := &cobra.Command{
		Use:   "sample",
		Short: "Load the demo sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Sample(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %d sample sessions\n", out.Added)
			return nil
		},
	}

	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags used by sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			tags, err := app.SessionCLI.Tags(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tags {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}

	session.AddCommand(add, list, complete, remove, importCmd, exportCmd, sample, tagsCmd)
	return session
}

func printSession(w io.Writer, s sessiondto.SessionOutput) {
	when := s.Date.String()
	if s.Time != "" {
		when += " " + s.Time
	}
	line := fmt.Sprintf("%s  %-16s %3d min  L%-2d %s", s.ID, when, s.Duration, s.Level, s.Subject)
	if len(s.Tags) > 0 {
		line += "  #" + strings.Join(s.Tags, " #")
	}
	_, _ = fmt.Fprintln(w, line)
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.StatsCLI.Stats(cmd.Context())
			if err != nil {
				return err
			}
			next := "none"
			if out.NextUpcomingDate != nil {
				next = out.NextUpcomingDate.String()
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "completed:   %d\n", out.CompletedCount)
			_, _ = fmt.Fprintf(w, "next:        %s\n", next)
			_, _ = fmt.Fprintf(w, "hours:       %.1f\n", out.TotalHours)
			_, _ = fmt.Fprintf(w, "streak:      %d days\n", out.StreakDays)
			_, _ = fmt.Fprintf(w, "badges:      %d\n", out.UnlockedBadgeCount)
			return nil
		},
	}
}

func newBadgesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			badges, err := app.BadgeCLI.Badges(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range badges {
				mark := "[ ]"
				if b.Unlocked {
					mark = "[x]"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %-16s %s\n", mark, b.Icon, b.Name, b.Description)
			}
			return nil
		},
	}
}

func newTimerCmd(opts *rootOptions) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Focus timer"}

	var minutes int
	start := &cobra.Command{
		Use:   "start",
		Short: "Count down in the foreground; Ctrl+C pauses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			w := cmd.OutOrStdout()
			var onTick func(timerdto.StateOutput)
			if term.IsTerminal(int(os.Stdout.Fd())) {
				onTick = func(s timerdto.StateOutput) { _, _ = fmt.Fprintf(w, "\r%s ", s.Display) }
			}
			out, err := app.TimerCLI.Run(ctx, minutes, onTick)
			if onTick != nil {
				_, _ = fmt.Fprintln(w)
			}
			if err != nil {
				return err
			}
			if !out.Completed {
				_, _ = fmt.Fprintf(w, "paused at %s\n", out.State.Display)
				return nil
			}
			_, _ = fmt.Fprintf(w, "time's up! timer sessions: %d\n", out.TimerUses)
			return nil
		},
	}
	start.Flags().IntVarP(&minutes, "minutes", "m", 0, "countdown length (default from config)")

	record := &cobra.Command{
		Use:   "record",
		Short: "Count a focus block finished elsewhere",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.TimerCLI.Record(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer sessions: %d\n", out.TimerUses)
			return nil
		},
	}

	presets := &cobra.Command{
		Use:   "presets",
		Short: "List preset lengths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			for _, p := range app.TimerCLI.Presets() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d min\n", p)
			}
			return nil
		},
	}

	timer.AddCommand(start, record, presets)
	return timer
}
