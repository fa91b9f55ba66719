package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/physics"
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Print the libration points of the configured binary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		separation, mu := cfg.Orbital.Separation, cfg.Orbital.MassRatio
		if cmd.Flags().Changed("separation") {
			separation, _ = cmd.Flags().GetFloat64("separation")
		}
		if cmd.Flags().Changed("mass-ratio") {
			mu, _ = cmd.Flags().GetFloat64("mass-ratio")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "separation=%g mass_ratio=%g\n", separation, mu)
		set := physics.LibrationPoints(separation, mu)
		for i, p := range set.Points() {
			fmt.Fprintf(out, "L%d  x=%10.4f  y=%10.4f  z=%10.4f\n", i+1, p.X, p.Y, p.Z)
		}
		return nil
	},
}

func init() {
	pointsCmd.Flags().Float64("separation", 0, "override the binary separation")
	pointsCmd.Flags().Float64("mass-ratio", 0, "override the binary mass ratio")
	rootCmd.AddCommand(pointsCmd)
}
