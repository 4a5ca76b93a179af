package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/funnel/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		sheet  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "validate <input.json|input.xlsx>",
		Short: "Check an input file and show each step's proportions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := pipeline.Load(cmd.Context(), args[0], sheet)
			if err != nil {
				return err
			}
			rows := pipeline.Summarize(points)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			fmt.Println(summaryTable(rows))
			steps := 0
			for _, r := range rows {
				if !r.Blank {
					steps++
				}
			}
			printSuccess("%s is valid", args[0])
			printStats(steps, len(rows)-steps, false)
			printNextStep("Render it", "funnel render "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "spreadsheet sheet name (default: first sheet)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON")

	return cmd
}

// summaryTable renders rows as a bordered table. Blank rows show as a dim
// separator line.
func summaryTable(rows []pipeline.RowSummary) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numberStyle := cellStyle.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("#", "Step", "Count", "Of top", "Of previous").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return cellStyle
			default:
				return numberStyle
			}
		})

	for _, r := range rows {
		if r.Blank {
			t.Row(fmt.Sprint(r.Index), StyleDim.Render("(blank)"), "", "", "")
			continue
		}
		t.Row(fmt.Sprint(r.Index), r.Name, r.CountLabel, trimOf(r.AbsoluteLabel), trimOf(r.RelativeLabel))
	}
	return t.String()
}

// trimOf drops the " of top"/" of previous" suffix; the column header says it.
func trimOf(label string) string {
	pct, _, _ := strings.Cut(label, " ")
	return pct
}
