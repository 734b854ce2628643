package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/philipparndt/gocalipers/internal/measurement"
	"github.com/philipparndt/gocalipers/internal/replay"
	"github.com/spf13/cobra"
)

var replayOutput string

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a recorded interaction and render it to PNG",
	Long: `Drive a measurement session from a YAML script without a display.
The final frame is written as PNG and the completed measurements are listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "calipers.png", "PNG file to write")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	script, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	surface, err := replay.NewSurface(script, filepath.Dir(args[0]))
	if err != nil {
		return err
	}

	result, err := replay.Run(script, surface, cfg.SessionOptions(logger))
	if err != nil {
		return err
	}

	f, err := os.Create(replayOutput)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := surface.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("frame written", "path", replayOutput, "frames", surface.Frames())

	return printSummary(cmd.OutOrStdout(), result)
}

func printSummary(out io.Writer, result *replay.Result) error {
	bold := color.New(color.Bold).SprintFunc()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("#"), bold("From"), bold("To"), bold("Interval"), bold("Length"))
	for i, m := range result.Session.Measurements() {
		tbl.AddRow(i+1, m.P1.String(), m.P2.String(), fmt.Sprintf("%.6f", m.Interval), measurement.FormatLength(m.Length))
	}

	if _, err := fmt.Fprintln(out, tbl); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d measurement(s), %d prompt(s)\n", len(result.Session.Measurements()), result.Prompter.Asked())
	return err
}
