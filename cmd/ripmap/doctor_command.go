package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ripmap/internal/deps"
	"ripmap/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, the disc source and external programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			problems := 0
			var rows [][]string
			for _, result := range preflight.RunAll(cfg) {
				if !result.Passed {
					problems++
				}
				rows = append(rows, []string{result.Name, checkState(result.Passed, false), result.Detail})
			}
			for _, status := range preflight.CheckSystemDeps(cfg) {
				if !status.Satisfied() {
					problems++
				}
				rows = append(rows, []string{status.Name, checkState(status.Available, status.Optional), dependencyDetail(status)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))
			if problems > 0 {
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}

func checkState(passed, optional bool) string {
	switch {
	case passed:
		return "ok"
	case optional:
		return "missing (optional)"
	default:
		return "FAIL"
	}
}

func dependencyDetail(status deps.Status) string {
	detail := status.Command
	if status.Detail != "" {
		detail = status.Detail
	}
	if status.Description != "" {
		detail += " - " + status.Description
	}
	return detail
}
