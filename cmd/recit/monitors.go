package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/frudas24/recit/internal/monitor"
)

type canvasJSON struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type attemptJSON struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

type monitorsJSON struct {
	Source   string            `json:"source"`
	Monitors []monitor.Monitor `json:"monitors"`
	Primary  monitor.Monitor   `json:"primary"`
	Canvas   canvasJSON        `json:"canvas"`
	Attempts []attemptJSON     `json:"attempts,omitempty"`
}

func newMonitorsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List detected monitors",
		RunE: func(cmd *cobra.Command, args []string) error {
			det := ctx.detector(cmd).Probe(cmd.Context())
			report := buildMonitorsReport(det, verbose)
			if asJSON {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderMonitorTable(out, det.Monitors))
			fmt.Fprintf(out, "Primary: %s\n", report.Primary)
			fmt.Fprintf(out, "Canvas:  %dx%d\n", report.Canvas.Width, report.Canvas.Height)
			fmt.Fprintf(out, "Source:  %s\n", report.Source)
			if verbose {
				fmt.Fprintln(out, renderAttemptTable(out, det.Attempts))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON for scripts")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show every detection source that was tried")
	return cmd
}

func buildMonitorsReport(det monitor.Detection, withAttempts bool) monitorsJSON {
	primary, _ := monitor.PrimaryOf(det.Monitors)
	w, h := monitor.BoundingBox(det.Monitors)
	report := monitorsJSON{
		Source:   det.Source,
		Monitors: det.Monitors,
		Primary:  primary,
		Canvas:   canvasJSON{Width: w, Height: h},
	}
	if withAttempts {
		for _, a := range det.Attempts {
			entry := attemptJSON{Source: a.Source, Count: a.Count}
			if a.Err != nil {
				entry.Error = a.Err.Error()
			}
			report.Attempts = append(report.Attempts, entry)
		}
	}
	return report
}

func renderMonitorTable(w io.Writer, list []monitor.Monitor) string {
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		rows = append(rows, []string{
			m.Name,
			m.Resolution(),
			m.AspectRatioLabel(),
			fmt.Sprintf("+%d+%d", m.X, m.Y),
			yesNo(m.Primary),
		})
	}
	return renderTable(w,
		[]string{"Name", "Resolution", "Aspect", "Offset", "Primary"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}

func renderAttemptTable(w io.Writer, attempts []monitor.Attempt) string {
	rows := make([][]string, 0, len(attempts))
	for _, a := range attempts {
		result := "ok"
		if a.Err != nil {
			result = a.Err.Error()
		}
		rows = append(rows, []string{a.Source, strconv.Itoa(a.Count), result})
	}
	return renderTable(w,
		[]string{"Source", "Monitors", "Result"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	)
}
