package cmd

import (
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a value from one unit to another",
	Example: `  furlong convert 2 km m
  furlong convert 1 "square meter" ft^2
  furlong convert 60 mph km/h --precision 3
  furlong convert -- -40 ft m    # "--" ends flags so a negative value is not read as one`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	v, err := parseValue(args[0])
	if err != nil {
		return err
	}
	q, err := s.catalog.Convert(v, args[1], args[2])
	if err != nil {
		return err
	}
	s.printer.Result(s.format(q))
	return nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
