package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/chemiz/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect element catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file, or the built-in catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			cat    *catalog.Catalog
			err    error
			source = "built-in catalog"
		)
		if len(args) == 1 {
			source = args[0]
			cat, err = catalog.LoadFile(args[0])
		} else {
			cat, err = loadCatalog(cmd)
		}
		if err != nil {
			var le *catalog.LoadError
			if errors.As(err, &le) && len(le.Problems) > 0 {
				fmt.Printf("%s is invalid:\n", source)
				for _, p := range le.Problems {
					fmt.Printf("  - %s\n", p)
				}
				return fmt.Errorf("%d problem(s) found", len(le.Problems))
			}
			return err
		}

		fmt.Printf("%s is valid: version %s, %d elements.\n", source, cat.Version(), cat.Len())
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}
