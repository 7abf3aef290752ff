package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcslider/pkg/geometry"
	"github.com/matzehuels/arcslider/pkg/slider"
)

// probeCommand creates the probe command, a debugging aid that shows what a
// pointer-down at (x, y) would do to the configured widget.
func (c *CLI) probeCommand() *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Show the angle and arc for a pointer position",
		Example: `  arcslider probe --x 200 --y 150
  arcslider probe -c knobs.toml --x 150 --y 40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ctrl := slider.NewController(cfg.Widget)
			center := ctrl.Viewport().Center()
			p := geometry.Point{X: x, Y: y}

			rad := geometry.PointerAngle(p.X, p.Y, center.X, center.Y)
			out := cmd.OutOrStdout()
			printKeyValue(out, "pointer", fmt.Sprintf("(%g, %g)", x, y))
			printKeyValue(out, "center", fmt.Sprintf("(%g, %g)", center.X, center.Y))
			printKeyValue(out, "distance", fmt.Sprintf("%.2f", p.Distance(center)))
			printKeyValue(out, "angle", fmt.Sprintf("%.6f rad  %.4f°", rad, geometry.RadiansToDegrees(rad)))

			frame, ok := ctrl.PointerDown(p)
			if !ok {
				return fmt.Errorf("widget has no sliders")
			}
			printKeyValue(out, "slider", frame.SliderID)
			printKeyValue(out, "degrees", fmt.Sprintf("%.4f°", frame.AngleDegrees))
			printKeyValue(out, "value", fmt.Sprintf("%.4f", frame.Value))
			printKeyValue(out, "handle", fmt.Sprintf("(%.3f, %.3f)", frame.Handle.X, frame.Handle.Y))
			printKeyValue(out, "path", frame.ActivePath)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "pointer x in container coordinates")
	cmd.Flags().Float64Var(&y, "y", 0, "pointer y in container coordinates")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}
