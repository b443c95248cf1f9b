package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/furlong/internal/quantity"
)

var calcCmd = &cobra.Command{
	Use:   "calc <value> <unit> <op> <value> <unit>",
	Short: "Combine two quantities with + - x / or compare them with = < >",
	Long: "Calc applies an operator to two quantities. The left operand's unit and system " +
		"determine the result unit; --to converts the result afterwards. Addition, " +
		"subtraction and comparison require matching dimensions. Use x or * for multiplication.",
	Example: `  furlong calc 2 m + 3 ft
  furlong calc 3 ft x 2 m --to ft^2
  furlong calc 1 mi / 1 h --to mph
  furlong calc 1 yd = 3 ft
  furlong calc -p 3 -- -2 m + 3 ft    # "--" before a negative left operand`,
	Args: cobra.ExactArgs(5),
	RunE: runCalc,
}

func runCalc(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	a, err := operand(s, args[0], args[1])
	if err != nil {
		return err
	}
	b, err := operand(s, args[3], args[4])
	if err != nil {
		return err
	}

	calc := s.catalog.Calculator()
	var result quantity.Quantity
	switch op := args[2]; op {
	case "+":
		result, err = calc.Add(a, b)
	case "-":
		result, err = calc.Sub(a, b)
	case "*", "x":
		result, err = calc.Mul(a, b)
	case "/":
		result, err = calc.Div(a, b)
	case "=", "==":
		eq, err := calc.Equal(a, b)
		if err != nil {
			return err
		}
		s.printer.Result(strconv.FormatBool(eq))
		return nil
	case "<", ">":
		cmp, err := calc.Compare(a, b)
		if err != nil {
			return err
		}
		s.printer.Result(strconv.FormatBool((op == "<" && cmp < 0) || (op == ">" && cmp > 0)))
		return nil
	default:
		return fmt.Errorf("unknown operator %q (want + - x / = < >)", op)
	}
	if err != nil {
		return err
	}

	if to, _ := cmd.Flags().GetString("to"); to != "" {
		u, err := s.catalog.Lookup(to)
		if err != nil {
			return err
		}
		if result, err = calc.Into(result, u); err != nil {
			return err
		}
	}
	s.printer.Result(s.format(result))
	return nil
}

func operand(s *session, value, unitName string) (quantity.Quantity, error) {
	v, err := parseValue(value)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return s.catalog.Quantity(v, unitName)
}

func init() {
	calcCmd.Flags().String("to", "", "convert the result into this unit")
	rootCmd.AddCommand(calcCmd)
}
