package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ripmap/internal/catalog"
	"ripmap/internal/config"
	"ripmap/internal/disc"
	"ripmap/internal/episodemap"
	"ripmap/internal/session"
)

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "titles [title]",
		Short: "List the titles of the scanned disc, or the chapters of one title",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				d, err := ctx.loadDisc(cfg)
				if err != nil {
					return err
				}
				var mapping *episodemap.EpisodeMap
				s, err := session.Open(cmd.Context(), cfg, store, d)
				switch {
				case err == nil:
					mapping = s.Mapping()
				case !errors.Is(err, session.ErrNoProgram):
					return err
				}

				out := cmd.OutOrStdout()
				if len(args) == 0 {
					fmt.Fprintf(out, "%s\n", discSummary(d))
					fmt.Fprintln(out, renderTitles(d, mapping))
					return nil
				}
				number, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid title number %q", args[0])
				}
				title := d.Title(number)
				if title == nil {
					return fmt.Errorf("no title %d on disc", number)
				}
				fmt.Fprintf(out, "Title %d, %s, %d chapters\n", title.Number, disc.FormatDuration(title.Duration), len(title.Chapters))
				fmt.Fprintln(out, renderChapters(title, mapping))
				return nil
			})
		},
	}
}

func renderTitles(d *disc.Disc, mapping *episodemap.EpisodeMap) string {
	rows := make([][]string, 0, len(d.Titles))
	for _, t := range d.Titles {
		rows = append(rows, []string{
			strconv.Itoa(t.Number),
			disc.FormatDuration(t.Duration),
			strconv.Itoa(len(t.Chapters)),
			duplicateLabel(t.Duplicate),
			episodesOn(mapping, t),
		})
	}
	return renderTable(
		[]string{"Title", "Duration", "Chapters", "Duplicate", "Episodes"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func renderChapters(title *disc.Title, mapping *episodemap.EpisodeMap) string {
	rows := make([][]string, 0, len(title.Chapters))
	for _, c := range title.Chapters {
		rows = append(rows, []string{
			c.String(),
			disc.FormatDuration(c.Start()),
			disc.FormatDuration(c.Duration),
			episodesCovering(mapping, c),
		})
	}
	return renderTable(
		[]string{"Chapter", "Start", "Duration", "Episodes"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	)
}
