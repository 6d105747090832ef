package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/frudas24/recit/internal/config"
	"github.com/frudas24/recit/internal/ffmpeg"
	"github.com/frudas24/recit/internal/monitor"
	"github.com/frudas24/recit/internal/region"
)

// canvasName labels the whole-screen pseudo monitor used for full-screen plans.
const canvasName = "Screen"

type planOptions struct {
	Region  string
	Monitor string
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the ffmpeg command a recording would run",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := ctx.detector(cmd).Detect(cmd.Context())
			p, err := buildPlan(ctx.config, list, opts, time.Now())
			if err != nil {
				return err
			}
			w, h := ffmpeg.OutputSize(p)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ffmpeg.CommandLine(p.FFmpegPath, ffmpeg.BuildRecordArgs(p)))
			fmt.Fprintf(out, "Output: %s (%dx%d)\n", p.Output, w, h)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Region, "region", "r", "", "Capture area as x,y,w,h on the virtual screen")
	cmd.Flags().StringVarP(&opts.Monitor, "monitor", "m", "", "Capture a single monitor by name")
	return cmd
}

// buildPlan resolves the capture source. A region wins over a monitor; with neither
// the whole X screen is grabbed and scaled with the canvas aspect ratio.
func buildPlan(cfg config.Config, list []monitor.Monitor, opts planOptions, now time.Time) (ffmpeg.Plan, error) {
	format := cfg.RecordFormat()
	p := ffmpeg.Plan{
		FFmpegPath: cfg.FFmpegPath,
		Display:    cfg.Display,
		FPS:        cfg.Framerate,
		Height:     cfg.TargetHeight(),
		Format:     format,
		Output:     ffmpeg.OutputPath(cfg.OutputDir, now, format),
	}

	name := opts.Monitor
	if name == "" && strings.TrimSpace(opts.Region) == "" {
		name = cfg.Monitor
	}
	m, err := selectMonitor(list, name)
	if err != nil {
		return ffmpeg.Plan{}, err
	}
	p.Monitor = m

	canvasW, canvasH := monitor.BoundingBox(list)
	if strings.TrimSpace(opts.Region) != "" {
		r, err := region.Parse(opts.Region)
		if err != nil {
			return ffmpeg.Plan{}, err
		}
		p.Source = region.Clamp(r, canvasW, canvasH)
		p.Area = true
		return p, nil
	}
	if name != "" {
		p.Source = region.Rect{X: m.X, Y: m.Y, W: m.Width, H: m.Height}
		return p, nil
	}
	p.Monitor = monitor.Monitor{Name: canvasName, Width: canvasW, Height: canvasH, Primary: true}
	return p, nil
}
