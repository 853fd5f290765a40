package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ripmap/internal/catalog"
	"ripmap/internal/config"
	"ripmap/internal/disc"
	"ripmap/internal/logging"
	"ripmap/internal/preflight"
	"ripmap/internal/session"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the disc with HandBrake and start a new mapping",
		Long: "Scan the disc with HandBrake and save the result for later commands.\n" +
			"Pending mappings for the disc are discarded; episodes already ripped\n" +
			"from it are mapped again from their rip history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if check := preflight.CheckSource(cfg.Disc.Source); !check.Passed {
				return fmt.Errorf("%s: %s", check.Name, check.Detail)
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			scanCtx, cancel := context.WithTimeout(cmd.Context(), cfg.ScanTimeout())
			defer cancel()
			scanner := disc.NewScanner(cfg.Disc.HandBrake, disc.ScanOptions{
				MinDurationSeconds: cfg.Disc.MinTitleSeconds,
				DVDNav:             cfg.Disc.DVDNav,
			})
			logger.Info("scanning disc", logging.String("source", cfg.Disc.Source))
			d, err := scanner.ScanToFile(scanCtx, cfg.Disc.Source, ctx.fs, cfg.Paths.ScanCache)
			if err != nil {
				return fmt.Errorf("scan disc: %w", err)
			}
			logger.Info("disc scanned",
				logging.String(logging.FieldDiscID, d.Ident()),
				logging.Int("title_count", len(d.Titles)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %s\n", discSummary(d))

			if cfg.Session.Program == "" {
				fmt.Fprintln(out, renderTitles(d, nil))
				fmt.Fprintln(out, "No program selected; set session.program or pass --program to map episodes.")
				return nil
			}
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				s, err := session.Open(cmd.Context(), cfg, store, d, session.WithLogger(logger))
				if err != nil {
					return err
				}
				if err := s.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, renderTitles(d, s.Mapping()))
				if n := s.Mapping().Len(); n > 0 {
					fmt.Fprintf(out, "%d episode(s) already ripped from this disc.\n", n)
				}
				return nil
			})
		},
	}
}
