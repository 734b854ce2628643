package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/philipparndt/gocalipers/internal/measurement"
	"github.com/philipparndt/gocalipers/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	measureRef   []float64
	measureValue string
	measureFrom  []float64
	measureTo    []float64
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Compute a length from pixel coordinates",
	Long: `Calibrate with a reference interval in pixels and its real length, then
compute the real length between two further pixel positions. Uses the same
calculation as the overlay.`,
	Example: `  calipers measure --ref 0,0,100,0 --value 100 --from 0,0 --to 0,200`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMeasure(cmd.OutOrStdout(), measureRef, measureValue, measureFrom, measureTo)
	},
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64SliceVar(&measureRef, "ref", nil, "reference interval x1,y1,x2,y2 in pixels")
	measureCmd.Flags().StringVar(&measureValue, "value", "", "real length of the reference interval")
	measureCmd.Flags().Float64SliceVar(&measureFrom, "from", nil, "first endpoint x,y in pixels")
	measureCmd.Flags().Float64SliceVar(&measureTo, "to", nil, "second endpoint x,y in pixels")

	for _, name := range []string{"ref", "value", "from", "to"} {
		_ = measureCmd.MarkFlagRequired(name)
	}
}

func runMeasure(out io.Writer, ref []float64, value string, from, to []float64) error {
	if len(ref) != 4 {
		return fmt.Errorf("--ref needs 4 coordinates, got %d", len(ref))
	}
	p1, err := toPoint("from", from)
	if err != nil {
		return err
	}
	p2, err := toPoint("to", to)
	if err != nil {
		return err
	}
	v, err := measurement.ParseInterval(value)
	if err != nil {
		return err
	}

	a := geometry.NewPoint(ref[0], ref[1])
	b := geometry.NewPoint(ref[2], ref[3])
	m, err := measurement.FromReference(a, b, v)
	if err != nil {
		return err
	}
	m.SetFirstPoint(p1)
	m.Complete(p2)

	bold := color.New(color.Bold).SprintFunc()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Quantity"), bold("Value"))
	tbl.AddRow("Reference", fmt.Sprintf("%s -> %s", a, b))
	tbl.AddRow("Reference pixels", fmt.Sprintf("%.4f", geometry.Distance(a, b)))
	tbl.AddRow("Interval", fmt.Sprintf("%.6f units/px", m.Interval))
	tbl.AddRow("Endpoints", fmt.Sprintf("%s -> %s", p1, p2))
	tbl.AddRow("Pixels", fmt.Sprintf("%.4f", geometry.Distance(p1, p2)))
	tbl.AddRow("Length", measurement.FormatLength(m.Length))

	_, err = fmt.Fprintln(out, tbl)
	return err
}

func toPoint(name string, coords []float64) (geometry.Point, error) {
	if len(coords) != 2 {
		return geometry.Point{}, fmt.Errorf("--%s needs 2 coordinates, got %d", name, len(coords))
	}
	return geometry.NewPoint(coords[0], coords[1]), nil
}
