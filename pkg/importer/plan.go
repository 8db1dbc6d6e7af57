package importer

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/actau-dev/actau/pkg/models"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	addStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	reviewStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	transferStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
)

// printPlan renders a human-readable preview of what a real run would
// import, one section per destination account.
func printPlan(order []string, groups map[string][]models.Candidate) {
	for _, accountID := range order {
		candidates := groups[accountID]
		fmt.Println(headerStyle.Render(fmt.Sprintf("account %s: %d transaction(s)", accountID, len(candidates))))
		for _, c := range candidates {
			line := "+ " + c.String()
			switch {
			case !c.Cleared:
				fmt.Println(reviewStyle.Render("? " + c.String() + "  (needs review)"))
			case c.PayeeID != "":
				fmt.Println(transferStyle.Render(line + "  (transfer)"))
			default:
				fmt.Println(addStyle.Render(line))
			}
		}
		fmt.Println()
	}
}
