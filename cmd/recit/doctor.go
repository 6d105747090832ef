package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frudas24/recit/internal/config"
	"github.com/frudas24/recit/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and display detection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			statuses := deps.CheckBinaries(deps.Requirements(toolPaths(cfg)))
			det := ctx.detector(cmd).Probe(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderDoctorTable(out, statuses))
			fmt.Fprintf(out, "Config:  %s\n", cfg.Path)
			fmt.Fprintf(out, "Output:  %s\n", cfg.OutputDir)
			fmt.Fprintf(out, "Display: %s (%d monitor(s) via %s)\n", cfg.Display, len(det.Monitors), det.Source)

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

func toolPaths(cfg config.Config) deps.Paths {
	return deps.Paths{
		FFmpeg:   cfg.FFmpegPath,
		Xrandr:   cfg.XrandrPath,
		Xdpyinfo: cfg.XdpyinfoPath,
	}
}

func renderDoctorTable(w io.Writer, statuses []deps.Status) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := "ok"
		location := s.Path
		if !s.Available {
			state = "missing"
			if s.Optional {
				state = "missing (optional)"
			}
			location = s.Detail
		}
		rows = append(rows, []string{s.Name, s.Description, state, location})
	}
	return renderTable(w,
		[]string{"Tool", "Used for", "Status", "Path"},
		rows,
		nil,
	)
}
