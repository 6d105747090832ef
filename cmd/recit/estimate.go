package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/frudas24/recit/internal/monitor"
)

// ladderHeights are the output heights shown when no --height is given.
var ladderHeights = []int{480, 720, 1080}

type estimateRow struct {
	Height  int
	Width   int
	Bitrate float64
	Size    string
}

func newEstimateCommand(ctx *commandContext) *cobra.Command {
	var monitorName string
	var height int
	var fps int
	var duration time.Duration
	var format string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate output dimensions and file size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			list := ctx.detector(cmd).Detect(cmd.Context())
			m, err := selectMonitor(list, firstNonEmpty(monitorName, cfg.Monitor))
			if err != nil {
				return err
			}
			if duration <= 0 {
				return fmt.Errorf("--duration must be positive")
			}
			if fps <= 0 {
				fps = cfg.Framerate
			}
			f := cfg.RecordFormat()
			if format != "" {
				f = monitor.ParseFormat(format)
			}

			heights := ladderHeights
			if height > 0 {
				heights = []int{height}
			}
			rows := buildEstimateRows(m, heights, fps, duration, f)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Monitor: %s\n", m)
			fmt.Fprintf(out, "Format:  %s, %d fps, %s\n", f, fps, duration)
			fmt.Fprintln(out, renderEstimateTable(out, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&monitorName, "monitor", "m", "", "Monitor name (defaults to the configured or primary monitor)")
	cmd.Flags().IntVar(&height, "height", 0, "Output height in pixels (omit for the 480/720/1080 ladder)")
	cmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (defaults to the configured framerate)")
	cmd.Flags().DurationVarP(&duration, "duration", "d", time.Minute, "Recording length")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Container format: webm or mp4")
	return cmd
}

func buildEstimateRows(m monitor.Monitor, heights []int, fps int, duration time.Duration, format monitor.Format) []estimateRow {
	rows := make([]estimateRow, 0, len(heights))
	for _, h := range heights {
		w, sh := monitor.ScaledDimensions(m, h)
		rows = append(rows, estimateRow{
			Height:  sh,
			Width:   w,
			Bitrate: monitor.BitrateMbps(format, h),
			Size:    monitor.EstimateFileSize(m, h, fps, duration, format),
		})
	}
	return rows
}

func renderEstimateTable(w io.Writer, rows []estimateRow) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			strconv.Itoa(r.Height) + "p",
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			strconv.FormatFloat(r.Bitrate, 'f', 1, 64) + " Mbps",
			r.Size,
		})
	}
	return renderTable(w,
		[]string{"Height", "Output", "Bitrate", "Estimate"},
		cells,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
