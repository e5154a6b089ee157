// Package cmd - validate command
package cmd

import (
	"github.com/spf13/cobra"

	hcladapter "reuse-cost/adapters/hcl"
	"reuse-cost/core/types"
	"reuse-cost/core/ui"
	"reuse-cost/core/validation"
	"reuse-cost/internal/errors"
)

var validateCmd = &cobra.Command{
	Use:   "validate <site.hcl>",
	Short: "Check a site file without estimating",
	Long: `Check every block of a site file against the rate catalog and report
all problems at once.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	est, err := loadEstimator()
	if err != nil {
		return err
	}
	site, err := hcladapter.NewLoader().LoadSite(args[0])
	if err != nil {
		return err
	}

	cat := est.Catalog()
	checked := map[types.SystemKind][]string{}
	var order []types.SystemKind
	if site.Rainwater != nil {
		checked[types.SystemRainwater] = validation.Rainwater(cat, *site.Rainwater)
		order = append(order, types.SystemRainwater)
	}
	if site.HVAC != nil {
		checked[types.SystemHVAC] = validation.HVAC(cat, *site.HVAC)
		order = append(order, types.SystemHVAC)
	}

	w := ui.NewWriter(cmd.OutOrStdout(), noColor)
	invalid := 0
	for _, system := range order {
		messages := checked[system]
		if len(messages) == 0 {
			w.Success("%s: ok", system)
			continue
		}
		invalid++
		w.Error("%s: %d problem(s)", system, len(messages))
		for _, msg := range messages {
			w.Println("    %s", msg)
		}
	}
	if err := w.Err(); err != nil {
		return err
	}
	if invalid > 0 {
		return errors.Newf(errors.TypeInput, "%s: %d of %d block(s) invalid", args[0], invalid, len(order))
	}
	return nil
}
