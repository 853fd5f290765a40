package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ripmap/internal/catalog"
	"ripmap/internal/config"
)

func newProgramsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List programs in the catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				programs, err := store.Programs(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(programs) == 0 {
					fmt.Fprintln(out, "No programs yet; add episodes with 'ripmap episodes add'.")
					return nil
				}
				rows := make([][]string, 0, len(programs))
				for _, p := range programs {
					rows = append(rows, []string{
						p.Name,
						strconv.Itoa(p.Seasons),
						strconv.Itoa(p.Episodes),
						strconv.Itoa(p.Ripped),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Program", "Seasons", "Episodes", "Ripped"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
}

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "episodes",
		Short: "Manage the episodes of the selected program season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newEpisodesListCommand(ctx),
		newEpisodesAddCommand(ctx),
		newEpisodesInsertCommand(ctx),
		newEpisodesRenameCommand(ctx),
		newEpisodesRemoveCommand(ctx),
		newEpisodesUnripCommand(ctx),
	)
	return cmd
}

func newEpisodesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List episodes and where they were ripped from",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSeason(cmd, func(store *catalog.Store, program string, season int) error {
				episodes, err := store.Episodes(cmd.Context(), program, season)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s season %d\n", program, season)
				if len(episodes) == 0 {
					fmt.Fprintln(out, "No episodes yet; add them with 'ripmap episodes add <name>...'.")
					return nil
				}
				rows := make([][]string, 0, len(episodes))
				for _, e := range episodes {
					discID := ""
					if e.Ripped() {
						discID = e.DiscID[:min(len(e.DiscID), 12)]
					}
					rows = append(rows, []string{e.Label(), e.Name, rippedFrom(e), discID})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Episode", "Name", "Ripped From", "Disc"},
					rows,
					nil,
				))
				return nil
			})
		},
	}
}

func newEpisodesAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>...",
		Short: "Append episodes to the season",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSeason(cmd, func(store *catalog.Store, program string, season int) error {
				added, err := store.AddEpisodes(cmd.Context(), program, season, args...)
				if err != nil {
					return err
				}
				for _, e := range added {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", e)
				}
				return nil
			})
		},
	}
}

func newEpisodesInsertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <number> <name>",
		Short: "Insert an episode, renumbering the episodes after it",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEpisodeNumber(args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			return ctx.withSeason(cmd, func(store *catalog.Store, program string, season int) error {
				e, err := store.InsertEpisode(cmd.Context(), program, season, number, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Inserted %s\n", e)
				return nil
			})
		},
	}
}

func newEpisodesRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <number> <name>",
		Short: "Rename an episode",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEpisodeNumber(args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			return ctx.withSeason(cmd, func(store *catalog.Store, program string, season int) error {
				key := catalog.EpisodeKey{Program: program, Season: season, Number: number}
				if err := store.RenameEpisode(cmd.Context(), key, name); err != nil {
					return err
				}
				e, err := store.Episode(cmd.Context(), key)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s\n", e)
				return nil
			})
		},
	}
}

func newEpisodesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <number>",
		Aliases: []string{"rm"},
		Short:   "Remove an episode, renumbering the episodes after it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEpisodeNumber(args[0])
			if err != nil {
				return err
			}
			return ctx.withSeason(cmd, func(store *catalog.Store, program string, season int) error {
				key := catalog.EpisodeKey{Program: program, Season: season, Number: number}
				e, err := store.Episode(cmd.Context(), key)
				if err != nil {
					return err
				}
				if err := store.DeleteEpisode(cmd.Context(), key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", e)
				return nil
			})
		},
	}
}

func newEpisodesUnripCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unrip <number>",
		Short: "Forget the rip history of an episode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEpisodeNumber(args[0])
			if err != nil {
				return err
			}
			return ctx.withSeason(cmd, func(store *catalog.Store, program string, season int) error {
				key := catalog.EpisodeKey{Program: program, Season: season, Number: number}
				if err := store.UnmarkRipped(cmd.Context(), key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared rip history of S%02dE%02d\n", season, number)
				return nil
			})
		},
	}
}
