// Package cmd - catalog commands
package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	hcladapter "reuse-cost/adapters/hcl"
	"reuse-cost/core/catalog"
	"reuse-cost/core/output"
	"reuse-cost/core/types"
	"reuse-cost/core/ui"
	"reuse-cost/internal/errors"
)

var catalogOutput string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and export the rate catalog",
	Long: `Inspect and export the rate catalog in effect.

The catalog is the built-in rate table with the --catalog override file,
if any, applied on top.`,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every rate and constant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := loadEstimator()
		if err != nil {
			return err
		}
		return output.RenderCatalog(cmd.OutOrStdout(), est.Catalog(), noColor)
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to .xlsx or .json",
	Long: `Export the catalog. The format follows the --output extension.

Examples:
  reuse-cost catalog export --output rates.xlsx
  reuse-cost catalog export --catalog regional.hcl --output regional.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := loadEstimator()
		if err != nil {
			return err
		}
		if err := exportCatalog(catalogOutput, est.Catalog()); err != nil {
			return err
		}
		ui.NewWriter(cmd.OutOrStdout(), noColor).Success("Wrote %s", catalogOutput)
		return nil
	},
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check <catalog.hcl>",
	Short: "Check a catalog override file without estimating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := hcladapter.NewLoader().LoadCatalog(args[0])
		if err != nil {
			return err
		}
		w := ui.NewWriter(cmd.OutOrStdout(), noColor)
		w.Success("%s is valid (version %s, %d rates)", args[0], cat.Version, len(cat.Entries()))
		return w.Err()
	},
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogCheckCmd)

	catalogExportCmd.Flags().StringVarP(&catalogOutput, "output", "o", "", "destination file (.xlsx or .json)")
	catalogExportCmd.MarkFlagRequired("output")
}

// catalogDocument is the JSON export layout
type catalogDocument struct {
	Version   string             `json:"version"`
	Currency  types.Currency     `json:"currency"`
	Rates     []catalog.Entry    `json:"rates"`
	Constants []catalog.Constant `json:"constants"`
}

func exportCatalog(path string, cat *catalog.Catalog) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".json" {
		return errors.Newf(errors.TypeNotSupported, "cannot export catalog as %q; use .xlsx or .json", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.TypeRender, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(errors.TypeRender, cerr, "close %s", path)
		}
	}()

	if ext == ".xlsx" {
		return output.WriteCatalogWorkbook(f, cat)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(&catalogDocument{
		Version:   cat.Version,
		Currency:  cat.Currency,
		Rates:     cat.Entries(),
		Constants: cat.Constants(),
	})
}
