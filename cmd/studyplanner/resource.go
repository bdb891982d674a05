package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	librarydto "studyplanner/internal/modules/library/dto"
)

func newResourceCmd(opts *rootOptions) *cobra.Command {
	resource := &cobra.Command{Use: "resource", Short: "Learning resource library"}

	var kind, tag string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List indexed resources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			resources, err := app.LibraryCLI.List(cmd.Context(), kind, tag, limit)
			if err != nil {
				return err
			}
			printResources(cmd.OutOrStdout(), resources)
			return nil
		},
	}
	list.Flags().StringVar(&kind, "kind", "", "tutorial|channel|video|article|repository|feed")
	list.Flags().StringVar(&tag, "tag", "", "tag filter")
	list.Flags().IntVar(&limit, "limit", 0, "max results (0 for all)")

	var searchTag string
	var searchLimit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over titles, descriptions and tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			resources, err := app.LibraryCLI.Search(cmd.Context(), strings.Join(args, " "), searchTag, searchLimit)
			if err != nil {
				return err
			}
			printResources(cmd.OutOrStdout(), resources)
			return nil
		},
	}
	search.Flags().StringVar(&searchTag, "tag", "", "tag filter")
	search.Flags().IntVar(&searchLimit, "limit", 20, "max results")

	tags := &cobra.Command{
		Use:   "tags",
		Short: "List resource tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			tags, err := app.LibraryCLI.Tags(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tags {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}

	reindex := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the resource index from the built-in catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.LibraryCLI.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d resources\n", out.Count)
			return nil
		},
	}

	preview := &cobra.Command{
		Use:   "preview <url>",
		Short: "Fetch title, description and image of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.LibraryCLI.Preview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "title: %s\n", out.Title)
			if out.Description != "" {
				_, _ = fmt.Fprintf(w, "description: %s\n", out.Description)
			}
			if out.Image != "" {
				_, _ = fmt.Fprintf(w, "image: %s\n", out.Image)
			}
			return nil
		},
	}

	open := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a resource in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return app.LibraryCLI.Open(cmd.Context(), args[0])
		},
	}

	var date, at string
	var duration int
	schedule := &cobra.Command{
		Use:   "schedule <id>",
		Short: "Turn a resource into a study session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			day, err := app.SessionCLI.ParseDate(date)
			if err != nil {
				return err
			}
			out, err := app.LibraryCLI.Schedule(cmd.Context(), args[0], day, at, duration)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "scheduled %q on %s (%s)\n", out.Subject, out.Date, out.SessionID)
			return nil
		},
	}
	schedule.Flags().StringVar(&date, "date", "today", "date: YYYY-MM-DD, today, tomorrow or +N")
	schedule.Flags().StringVar(&at, "time", "", "time of day HH:MM (optional)")
	schedule.Flags().IntVar(&duration, "duration", 0, "minutes (default 30)")

	resource.AddCommand(list, search, tags, reindex, newFetchCmd(opts), preview, open, schedule)
	return resource
}

func newFetchCmd(opts *rootOptions) *cobra.Command {
	fetch := &cobra.Command{Use: "fetch", Short: "Pull resources from online providers into the index"}

	var maxResults int
	fetch.PersistentFlags().IntVar(&maxResults, "max", 20, "max results per request")

	run := func(cmd *cobra.Command, provider string, queries []string) error {
		app, err := loadApp(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		if provider == librarydto.ProviderFeed && len(queries) == 0 {
			queries = app.Config.FeedURLs
			if len(queries) == 0 {
				return fmt.Errorf("no feed url given and none configured")
			}
		}
		if len(queries) == 0 {
			queries = []string{""}
		}
		total := 0
		for _, q := range queries {
			out, err := app.LibraryCLI.Fetch(cmd.Context(), provider, q, maxResults)
			if err != nil {
				return err
			}
			printResources(cmd.OutOrStdout(), out.Resources)
			total += out.Indexed
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d\n", total)
		return nil
	}

	fetch.AddCommand(&cobra.Command{
		Use:   "devto [tag]",
		Short: "Latest Dev.to articles, optionally by tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, librarydto.ProviderDevto, args)
		},
	})
	fetch.AddCommand(&cobra.Command{
		Use:   "github <query>",
		Short: "GitHub repositories matching a search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, librarydto.ProviderGitHub, []string{strings.Join(args, " ")})
		},
	})
	fetch.AddCommand(&cobra.Command{
		Use:   "feed [url...]",
		Short: "Entries of RSS or Atom feeds (default: configured feeds)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, librarydto.ProviderFeed, args)
		},
	})
	return fetch
}

func newWatchlistCmd(opts *rootOptions) *cobra.Command {
	watchlist := &cobra.Command{Use: "watchlist", Short: "Saved videos and resources"}

	watchlist.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the watchlist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			items, err := app.LibraryCLI.Watchlist(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "watchlist is empty")
				return nil
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", item.ID, item.Title, item.URL)
			}
			return nil
		},
	})

	watchlist.AddCommand(&cobra.Command{
		Use:   "add <resource-id>",
		Short: "Save a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.LibraryCLI.SaveToWatchlist(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !out.Changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "already on the watchlist")
			}
			return nil
		},
	})

	watchlist.AddCommand(&cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Drop an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.LibraryCLI.RemoveFromWatchlist(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !out.Changed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no watchlist entry %s\n", args[0])
			}
			return nil
		},
	})
	return watchlist
}

func printResources(w io.Writer, resources []librarydto.ResourceOutput) {
	if len(resources) == 0 {
		_, _ = fmt.Fprintln(w, "no resources")
		return
	}
	for _, r := range resources {
		_, _ = fmt.Fprintf(w, "%s  [%s] %s  %s\n", r.ID, r.Kind, r.Title, r.URL)
	}
}
