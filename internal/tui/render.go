package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ChasNicholls/spendlite/internal/rules"
	"github.com/ChasNicholls/spendlite/internal/view"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	activeStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

// View implements tea.Model.
func (a *App) View() string {
	vm := a.app.View()

	var b strings.Builder
	b.WriteString(titleStyle.Render("SpendLite") + "  " + dimStyle.Render(vm.MonthLabel))
	if vm.CategoryFilter != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" — filtered by %q", vm.CategoryFilter)))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Showing %d transactions · Debit: $%s · Credit: $%s · Net: $%s\n\n",
		vm.Summary.Count,
		vm.Summary.Debit.StringFixed(2),
		vm.Summary.Credit.StringFixed(2),
		vm.Summary.Net.StringFixed(2)))

	b.WriteString(a.renderTotals(vm))
	if !vm.Collapsed {
		b.WriteString("\n")
		b.WriteString(a.renderTransactions(vm))
		b.WriteString(a.renderPager(vm))
	} else {
		b.WriteString("\n" + dimStyle.Render("Transactions hidden (c to show)") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("←/→ page · ↑/↓ move · r rule · t totals · enter filter · f clear filter · m month · M all months · c collapse · q quit"))

	if a.modal == modalRule {
		return b.String() + "\n\n" + a.renderRuleModal()
	}
	return b.String()
}

func (a *App) renderTotals(vm view.Model) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %12s %7s", "Category", "Total", "%")) + "\n")
	for i, row := range vm.Totals {
		line := fmt.Sprintf("%-24s %12s %6.1f%%",
			view.TitleCase(row.Category), row.Total.StringFixed(2), row.Percent)
		if a.focus == focusTotals && i == a.totalsCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %12s %7s", "Total", vm.GrandTotal.StringFixed(2), "100%")) + "\n")
	return b.String()
}

func (a *App) renderTransactions(vm view.Model) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %12s  %-20s %s", "Date", "Amount", "Category", "Description")) + "\n")
	if len(vm.Page.Items) == 0 {
		b.WriteString(dimStyle.Render("no transactions") + "\n")
		return b.String()
	}
	for i, t := range vm.Page.Items {
		desc := t.Description
		if len(desc) > 48 {
			desc = desc[:45] + "..."
		}
		line := fmt.Sprintf("%-12s %12s  %-20s %s",
			t.RawDate, t.Amount.StringFixed(2), view.TitleCase(t.Category), desc)
		if a.focus == focusTransactions && i == a.txCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (a *App) renderPager(vm view.Model) string {
	var parts []string
	for _, ctl := range vm.Pager {
		label := ctl.Label
		switch {
		case ctl.Active:
			label = activeStyle.Render(label)
		case ctl.Disabled:
			label = dimStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ") +
		dimStyle.Render(fmt.Sprintf("  Page %d / %d", vm.Page.Number, vm.Page.TotalPages)) + "\n"
}

func (a *App) renderRuleModal() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Create rule") + "\n\n")

	desc := a.modalTxn.Description
	if len(desc) > 60 {
		desc = desc[:57] + "..."
	}
	b.WriteString(dimStyle.Render(desc) + "\n\n")
	b.WriteString("Keyword:  " + a.keywordInput.View() + "\n")
	b.WriteString("Category: " + a.categoryInput.View() + "\n")

	if nearest := rules.NearestCategory(a.categoryInput.Value(), a.knownCategories()); nearest != "" &&
		nearest != strings.ToUpper(strings.TrimSpace(a.categoryInput.Value())) {
		b.WriteString(dimStyle.Render("Did you mean "+nearest+"?") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("tab switch · enter save · esc cancel"))
	return modalStyle.Render(b.String())
}
