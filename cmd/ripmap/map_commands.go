package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ripmap/internal/disc"
	"ripmap/internal/episodemap"
	"ripmap/internal/session"
)

func newAutomapCommand(ctx *commandContext) *cobra.Command {
	var noPrompt bool

	cmd := &cobra.Command{
		Use:   "automap [episodes] [titles]",
		Short: "Map episodes onto disc titles or chapters automatically",
		Long: "Map episodes onto the scanned disc. Episodes and titles are lists such as\n" +
			"\"1-3,5\"; by default every unmapped, unripped episode is mapped onto every\n" +
			"title not already in use. When several chapter layouts fit, each candidate\n" +
			"start chapter is played in VLC and confirmed at the prompt.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req session.AutomapRequest
			if len(args) > 0 && args[0] != "all" {
				numbers, err := parseNumberList(args[0])
				if err != nil {
					return err
				}
				req.Episodes = numbers
			}
			if len(args) > 1 {
				numbers, err := parseNumberList(args[1])
				if err != nil {
					return err
				}
				req.Titles = numbers
			}

			return ctx.withSession(cmd, func(s *session.Session) error {
				interactive := !noPrompt && isatty.IsTerminal(os.Stdin.Fd())
				if interactive {
					player, err := ctx.player()
					if err != nil {
						return err
					}
					req.Disambiguator = newPromptDisambiguator(s.Disc(), player, cmd.ErrOrStderr())
				}

				added, err := s.Automap(cmd.Context(), req)
				if err != nil {
					if errors.Is(err, episodemap.ErrMultipleSolutions) && !interactive {
						return fmt.Errorf("%w; run on a terminal to choose between them or map episodes with 'ripmap map'", err)
					}
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Mapped %d episode(s)\n", len(added))
				fmt.Fprintln(out, renderEntries(added, s.Ident()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Never ask which chapter an episode starts at")
	return cmd
}

func newMapCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "map <episode> <title|title.chapter|title.start-end>",
		Short: "Map one episode by hand",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEpisodeNumber(args[0])
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, func(s *session.Session) error {
				entry, err := s.Map(cmd.Context(), number, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s to %s (%s)\n",
					entry.Episode, entry.Target, disc.FormatDuration(entry.Target.Duration()))
				return nil
			})
		},
	}
}

func newUnmapCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unmap [episodes]",
		Short: "Remove mappings for the listed episodes, or all mappings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var numbers []int
			if len(args) == 1 {
				parsed, err := parseNumberList(args[0])
				if err != nil {
					return err
				}
				numbers = parsed
			}
			return ctx.withSession(cmd, func(s *session.Session) error {
				if err := s.Unmap(cmd.Context(), numbers...); err != nil {
					return err
				}
				if len(numbers) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Cleared all mappings")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Unmapped %d episode(s)\n", len(numbers))
				}
				return nil
			})
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current episode mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session.Session) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s season %d on %s\n", s.Program(), s.Season(), discSummary(s.Disc()))
				if s.Mapping().Len() == 0 {
					fmt.Fprintln(out, "No episodes mapped; run 'ripmap automap' or 'ripmap map'.")
					return nil
				}
				fmt.Fprintln(out, renderEntries(s.Mapping().Items(), s.Ident()))
				return nil
			})
		},
	}
}

func newRecordCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Record the mapped episodes as ripped from this disc",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session.Session) error {
				recorded, err := s.Record(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(recorded) == 0 {
					fmt.Fprintln(out, "Nothing to record")
					return nil
				}
				for _, e := range recorded {
					fmt.Fprintf(out, "Recorded %s from %s\n", e, rippedFrom(e))
				}
				return nil
			})
		},
	}
}

func renderEntries(entries []episodemap.Entry, ident string) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		status := "pending"
		if entry.Episode.DiscID == ident {
			status = "ripped"
		}
		rows = append(rows, []string{
			entry.Episode.Label(),
			entry.Episode.Name,
			entry.Target.String(),
			disc.FormatDuration(entry.Target.Duration()),
			status,
		})
	}
	return renderTable(
		[]string{"Episode", "Name", "Target", "Duration", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
