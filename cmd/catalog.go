package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/furlong/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Export or scaffold unit catalog files",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active catalog definition in toml, yaml or json",
	Example: `  furlong catalog export --format yaml
  furlong --catalog units.toml catalog export --format json`,
	Args: cobra.NoArgs,
	RunE: runCatalogExport,
}

var catalogInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the built-in catalog to a file for editing",
	Long:  "Init writes the built-in definition to path, encoded according to its extension (.toml, .yaml, .yml or .json).",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogInit,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("format")
	format, err := catalog.ParseFormat(name)
	if err != nil {
		return err
	}
	return catalog.Encode(cmd.OutOrStdout(), s.catalog.Definition(), format)
}

func runCatalogInit(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	force, _ := cmd.Flags().GetBool("force")
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	def, err := catalog.BuiltinDefinition()
	if err != nil {
		return err
	}
	if err := catalog.Save(path, def); err != nil {
		return err
	}
	s.printer.Info(fmt.Sprintf("wrote built-in catalog to %s", path))
	return nil
}

func init() {
	catalogExportCmd.Flags().String("format", "toml", "output format: toml, yaml or json")
	catalogInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	catalogCmd.AddCommand(catalogExportCmd, catalogInitCmd)
	rootCmd.AddCommand(catalogCmd)
}
