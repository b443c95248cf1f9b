package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/furlong/internal/unit"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the units in the active catalog",
	Example: `  furlong units
  furlong units --dimension length/time
  furlong units --system imperial`,
	Args: cobra.NoArgs,
	RunE: runUnits,
}

func runUnits(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	units := s.catalog.Units()
	if expr, _ := cmd.Flags().GetString("dimension"); expr != "" {
		v, err := s.catalog.ParseDimension(expr)
		if err != nil {
			return err
		}
		units = s.catalog.UnitsOf(v)
	}
	if name, _ := cmd.Flags().GetString("system"); name != "" {
		sys, ok := s.catalog.System(name)
		if !ok {
			return fmt.Errorf("unknown system %q", name)
		}
		units = inSystem(units, sys)
	}

	s.printer.UnitTable(s.catalog, units)
	return nil
}

func inSystem(units []unit.Unit, sys *unit.System) []unit.Unit {
	var out []unit.Unit
	for _, u := range units {
		if u.System() == sys {
			out = append(out, u)
		}
	}
	return out
}

func init() {
	unitsCmd.Flags().String("dimension", "", "only units of this dimension, e.g. length or mass*length/time^2")
	unitsCmd.Flags().String("system", "", "only units of this system")
	rootCmd.AddCommand(unitsCmd)
}
