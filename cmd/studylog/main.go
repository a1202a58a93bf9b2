package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"studylog/internal/bootstrap"
	sessiondto "studylog/internal/modules/session/dto"
	"studylog/internal/platform/config"
	"studylog/internal/platform/timefmt"
	statsview "studylog/internal/ui/views/stats"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "studylog",
		Short:         "Study session stopwatch, log and heatmap",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "directory holding the .studylog data folder")

	root.AddCommand(newTUICmd(&dataPath))
	root.AddCommand(newTimerCmd(&dataPath))
	root.AddCommand(newSessionCmd(&dataPath))
	root.AddCommand(newStatsCmd(&dataPath))
	root.AddCommand(newTagsCmd(&dataPath))
	root.AddCommand(newExportCmd(&dataPath))
	root.AddCommand(newSyncCmd(&dataPath))
	root.AddCommand(newMigrateCmd(&dataPath))
	return root
}

// withApp loads the app for one command and closes it afterwards.
func withApp(dataPath string, run func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.New(dataPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return run(ctx, app)
}

func newTUICmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the studylog terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newTimerCmd(dataPath *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Stopwatch shared between invocations"}

	printStatus := func(w io.Writer, status string, elapsedMs int64) {
		_, _ = fmt.Fprintf(w, "%s %s\n", status, timefmt.FormatDuration(elapsedMs))
	}

	timer.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the stopwatch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Start(ctx)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), out.Status, out.ElapsedMs)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the running stopwatch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Pause(ctx)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), out.Status, out.ElapsedMs)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume a paused stopwatch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Resume(ctx)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), out.Status, out.ElapsedMs)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show stopwatch state and elapsed time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Status(ctx)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), out.Status, out.ElapsedMs)
				return nil
			})
		},
	})

	var topic, notes string
	var tags []string
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the stopwatch and save the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Stop(ctx, topic, notes, tags)
				if err != nil {
					return err
				}
				if !out.Recorded {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing recorded")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %s (%s)\n", out.Session.ID, out.Session.Topic, timefmt.FormatDuration(out.Session.DurationMs))
				return nil
			})
		},
	}
	stop.Flags().StringVar(&topic, "topic", "", "session topic")
	stop.Flags().StringVar(&notes, "notes", "", "session notes")
	stop.Flags().StringSliceVar(&tags, "tags", nil, "session tags")
	timer.AddCommand(stop)
	return timer
}

func newSessionCmd(dataPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Inspect and edit recorded sessions"}

	var rangeName string
	var filterTags []string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				sessions, err := app.SessionCLI.List(ctx)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("range") || len(filterTags) > 0 {
					sessions, err = filterSessions(ctx, app, sessions, rangeOrDefault(rangeName, app), filterTags)
					if err != nil {
						return err
					}
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					printSessionLine(cmd.OutOrStdout(), s, app)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&rangeName, "range", "", "week|2weeks|month|3months|6months|year")
	list.Flags().StringSliceVar(&filterTags, "tags", nil, "only sessions carrying any of these tags")
	session.AddCommand(list)

	session.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.SessionCLI.Get(ctx, args[0])
				if err != nil {
					return err
				}
				loc := app.Config.Location
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\ntopic: %s\nstart: %s\nend: %s\nduration: %s\ntags: %s\nnotes: %s\n",
					s.ID, s.Topic,
					timefmt.LocalDatetimeString(s.StartAt, loc), timefmt.LocalDatetimeString(s.EndAt, loc),
					timefmt.FormatDuration(s.DurationMs), strings.Join(s.Tags, ","), s.Notes)
				return nil
			})
		},
	})

	var start, end, topic, notes string
	var tags []string
	add := &cobra.Command{
		Use:   "add --start <YYYY-MM-DDTHH:mm> --end <YYYY-MM-DDTHH:mm>",
		Short: "Record a session by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.SessionCLI.Add(ctx, start, end, topic, notes, tags)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s: %s (%s)\n", s.ID, s.Topic, timefmt.FormatDuration(s.DurationMs))
				return nil
			})
		},
	}
	add.Flags().StringVar(&start, "start", "", "start, local time")
	add.Flags().StringVar(&end, "end", "", "end, local time")
	add.Flags().StringVar(&topic, "topic", "", "session topic")
	add.Flags().StringVar(&notes, "notes", "", "session notes")
	add.Flags().StringSliceVar(&tags, "tags", nil, "session tags")
	session.AddCommand(add)

	var editStart, editEnd, editTopic, editNotes string
	var editTags []string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a session; omitted fields keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				current, err := app.SessionCLI.Get(ctx, args[0])
				if err != nil {
					return err
				}
				input := sessiondto.EditInput{
					ID:      current.ID,
					StartAt: current.StartAt,
					EndAt:   current.EndAt,
					Topic:   current.Topic,
					Notes:   current.Notes,
					Tags:    current.Tags,
				}
				flags := cmd.Flags()
				if flags.Changed("start") {
					input.Start = editStart
				}
				if flags.Changed("end") {
					input.End = editEnd
				}
				if flags.Changed("topic") {
					input.Topic = editTopic
				}
				if flags.Changed("notes") {
					input.Notes = editNotes
				}
				if flags.Changed("tags") {
					input.Tags = editTags
				}
				s, err := app.SessionCLI.Edit(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s: %s (%s)\n", s.ID, s.Topic, timefmt.FormatDuration(s.DurationMs))
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editStart, "start", "", "start, local time")
	edit.Flags().StringVar(&editEnd, "end", "", "end, local time")
	edit.Flags().StringVar(&editTopic, "topic", "", "session topic")
	edit.Flags().StringVar(&editNotes, "notes", "", "session notes")
	edit.Flags().StringSliceVar(&editTags, "tags", nil, "session tags (replaces all)")
	session.AddCommand(edit)

	session.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	})
	return session
}

func newStatsCmd(dataPath *string) *cobra.Command {
	var rangeName string
	var tags []string
	var heatmap bool
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Totals per range and tag, optionally with the yearly heatmap",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				report, err := app.StatsCLI.Report(ctx, rangeOrDefault(rangeName, app), tags, heatmap)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s: %s sessions\n", report.RangeLabel, humanize.Comma(int64(report.SessionCount)))
				if len(report.Tags) > 0 {
					_, _ = fmt.Fprintf(w, "tags: %s\n", strings.Join(report.Tags, ", "))
				}
				_, _ = fmt.Fprintf(w, "total: %s\ndays studied: %d\naverage per study day: %s\n",
					timefmt.FormatSeconds(report.TotalSeconds), report.DaysStudied, timefmt.FormatSeconds(report.AveragePerStudyDay))
				for _, day := range report.Days {
					_, _ = fmt.Fprintf(w, "  %s\t%s\n", day.Day, timefmt.FormatSeconds(day.Seconds))
				}
				if report.Heatmap != nil {
					_, _ = fmt.Fprintf(w, "\n%s\n%s\n", statsview.RenderHeatmap(report.Heatmap, 0), statsview.Legend())
				}
				return nil
			})
		},
	}
	stats.Flags().StringVar(&rangeName, "range", "", "week|2weeks|month|3months|6months|year")
	stats.Flags().StringSliceVar(&tags, "tags", nil, "only sessions carrying any of these tags")
	stats.Flags().BoolVar(&heatmap, "heatmap", false, "draw the heatmap for the past year")
	return stats
}

func newTagsCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				tags, err := app.SessionCLI.Tags(ctx)
				if err != nil {
					return err
				}
				for _, tag := range tags {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), tag)
				}
				return nil
			})
		},
	}
}

func newExportCmd(dataPath *string) *cobra.Command {
	var out string
	var toClipboard bool
	export := &cobra.Command{
		Use:   "export",
		Short: "Write all sessions as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				payload, err := app.SessionCLI.Export(ctx)
				if err != nil {
					return err
				}
				if toClipboard {
					if err := clipboard.WriteAll(string(payload.Data)); err != nil {
						return fmt.Errorf("copy export: %w", err)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "copied %d sessions to the clipboard\n", payload.Count)
					return nil
				}
				path := out
				if path == "" {
					path = filepath.Join(*dataPath, payload.FileName)
				}
				if err := os.WriteFile(path, payload.Data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions (%s) to %s\n", payload.Count, humanize.Bytes(uint64(len(payload.Data))), path)
				return nil
			})
		},
	}
	export.Flags().StringVar(&out, "out", "", "output file (default study-sessions-<date>.json in the data directory)")
	export.Flags().BoolVar(&toClipboard, "copy", false, "copy to the clipboard instead of writing a file")
	return export
}

func newSyncCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Write the loaded sessions back to the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.Sync(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %d sessions\n", app.Loaded.Loaded)
				return nil
			})
		},
	}
}

func newMigrateCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Import sessions from the legacy key-value file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataPath, func(_ context.Context, app *bootstrap.App) error {
				if app.Loaded.Migrated == 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "nothing to migrate (%d sessions in store)\n", app.Loaded.Loaded)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "migrated %d sessions from %s\n", app.Loaded.Migrated, app.Config.LegacyPath)
				return nil
			})
		},
	}
}

func rangeOrDefault(rangeName string, app *bootstrap.App) string {
	if strings.TrimSpace(rangeName) == "" {
		return app.Config.DefaultRange
	}
	return rangeName
}

func filterSessions(ctx context.Context, app *bootstrap.App, sessions []sessiondto.SessionOutput, rangeName string, tags []string) ([]sessiondto.SessionOutput, error) {
	ids, err := app.StatsCLI.Matching(ctx, rangeName, tags)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	out := make([]sessiondto.SessionOutput, 0, len(ids))
	for _, s := range sessions {
		if keep[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func printSessionLine(w io.Writer, s sessiondto.SessionOutput, app *bootstrap.App) {
	ended := humanize.Time(timefmt.ToTime(s.EndAt, app.Config.Location))
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, timefmt.LocalDatetimeString(s.StartAt, app.Config.Location), timefmt.FormatDuration(s.DurationMs), s.Topic, ended)
	if len(s.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "\t#%s\n", strings.Join(s.Tags, " #"))
	}
}
