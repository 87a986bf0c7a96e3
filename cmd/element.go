package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/chemiz/internal/catalog"
)

var elementCmd = &cobra.Command{
	Use:   "element <symbol|number>",
	Short: "Show the catalog record of an element",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load element catalog: %w", err)
		}

		var (
			e  catalog.Element
			ok bool
		)
		if n, err := strconv.Atoi(args[0]); err == nil {
			e, ok = cat.ByNumber(n)
		} else {
			e, ok = cat.Get(normalizeSymbol(args[0]))
		}
		if !ok {
			return fmt.Errorf("no element %q in catalog %s", args[0], cat.Version())
		}

		row := func(label, value string) {
			if value != "" {
				fmt.Printf("%-18s %s\n", label+":", value)
			}
		}
		row("Symbol", e.Symbol)
		row("Name", e.Name)
		row("Atomic number", strconv.Itoa(e.AtomicNumber))
		row("Atomic mass", fmt.Sprintf("%.3f", e.AtomicMass))
		row("Type", e.Type.Label())
		row("Class", e.Type.Class().String())
		valency := strings.Join(e.Valencies, ", ")
		if valency == "" {
			valency = "none"
		}
		row("Valency", valency)
		row("Oxidation states", strings.Join(e.OxidationStates, ", "))
		row("Configuration", e.ElectronConfiguration)
		row("State", e.State)
		row("Appearance", e.Appearance)
		row("Oxide", e.OxideCharacter)
		return nil
	},
}

// normalizeSymbol capitalizes the first letter so "fe" finds Fe.
func normalizeSymbol(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
