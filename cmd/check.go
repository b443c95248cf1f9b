package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/furlong/internal/catalog"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the catalog and verify every same-dimension conversion resolves",
	Long: "Check builds the active catalog, reporting every definition error, then resolves " +
		"each pair of units sharing a dimension. With --strict, unresolved pairs are an error.",
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := s.open(); err != nil {
		var ve *catalog.ValidationError
		if errors.As(err, &ve) {
			s.printer.ValidationErrors(s.catalogName(), err)
			return fmt.Errorf("catalog %s is invalid", s.catalogName())
		}
		return err
	}

	unresolved := s.catalog.Verify()
	s.printer.CheckResult(s.catalogName(), s.catalog, unresolved)
	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(unresolved) > 0 {
		return fmt.Errorf("%d unresolved conversion(s)", len(unresolved))
	}
	return nil
}

func init() {
	checkCmd.Flags().Bool("strict", false, "exit non-zero when any conversion is unresolved")
	rootCmd.AddCommand(checkCmd)
}
