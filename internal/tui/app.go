// Package tui is the interactive presentation surface: a paginated
// transaction table, category totals, filters and a rule-creation modal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ChasNicholls/spendlite/internal/model"
	"github.com/ChasNicholls/spendlite/internal/rules"
	"github.com/ChasNicholls/spendlite/internal/state"
	"github.com/ChasNicholls/spendlite/internal/view"
)

type focusArea string

const (
	focusTransactions focusArea = "transactions"
	focusTotals       focusArea = "totals"
)

type modalState string

const (
	modalNone modalState = ""
	modalRule modalState = "rule"
)

// App drives the interactive session around a shared state.App.
type App struct {
	app   *state.App
	keys  keyMap
	focus focusArea
	modal modalState

	txCursor     int
	totalsCursor int
	status       string

	keywordInput  textinput.Model
	categoryInput textinput.Model
	modalField    int // 0 = keyword, 1 = category
	modalTxn      model.Transaction
}

type keyMap struct {
	Quit        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Up          key.Binding
	Down        key.Binding
	Rule        key.Binding
	Totals      key.Binding
	Collapse    key.Binding
	ClearFilter key.Binding
	CycleMonth  key.Binding
	ClearMonth  key.Binding
	Select      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c")),
		NextPage:    key.NewBinding(key.WithKeys("right", "l")),
		PrevPage:    key.NewBinding(key.WithKeys("left", "h")),
		Up:          key.NewBinding(key.WithKeys("up", "k")),
		Down:        key.NewBinding(key.WithKeys("down", "j")),
		Rule:        key.NewBinding(key.WithKeys("r")),
		Totals:      key.NewBinding(key.WithKeys("t")),
		Collapse:    key.NewBinding(key.WithKeys("c")),
		ClearFilter: key.NewBinding(key.WithKeys("f")),
		CycleMonth:  key.NewBinding(key.WithKeys("m")),
		ClearMonth:  key.NewBinding(key.WithKeys("M")),
		Select:      key.NewBinding(key.WithKeys("enter")),
	}
}

// New creates the TUI around restored application state.
func New(app *state.App) *App {
	keyword := textinput.New()
	keyword.Placeholder = "KEYWORD"
	keyword.CharLimit = 64
	category := textinput.New()
	category.Placeholder = "CATEGORY"
	category.CharLimit = 64

	return &App{
		app:           app,
		keys:          defaultKeys(),
		focus:         focusTransactions,
		keywordInput:  keyword,
		categoryInput: category,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.updateModal(msg)
		}
		return a.updateMain(msg)
	case tea.MouseMsg:
		// wheel flips one page per tick; no-op with a single page
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			a.app.Dispatch(state.PageDelta{Delta: 1})
			a.clampCursors()
		case tea.MouseButtonWheelUp:
			a.app.Dispatch(state.PageDelta{Delta: -1})
			a.clampCursors()
		}
	}
	return a, nil
}

func (a *App) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vm := a.app.View()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.NextPage):
		a.app.Dispatch(state.PageDelta{Delta: 1})
		a.clampCursors()
	case key.Matches(msg, a.keys.PrevPage):
		a.app.Dispatch(state.PageDelta{Delta: -1})
		a.clampCursors()
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1, vm)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1, vm)
	case key.Matches(msg, a.keys.Totals):
		if a.focus == focusTotals {
			a.focus = focusTransactions
		} else {
			a.focus = focusTotals
		}
	case key.Matches(msg, a.keys.Collapse):
		a.app.Dispatch(state.ToggleCollapsed{})
	case key.Matches(msg, a.keys.ClearFilter):
		a.app.Dispatch(state.ClearCategoryFilter{})
		a.status = "Category filter cleared"
		a.clampCursors()
	case key.Matches(msg, a.keys.CycleMonth):
		a.cycleMonth(vm)
	case key.Matches(msg, a.keys.ClearMonth):
		a.app.Dispatch(state.ClearMonthFilter{})
		a.status = "Showing all months"
		a.clampCursors()
	case key.Matches(msg, a.keys.Select):
		if a.focus == focusTotals {
			a.selectTotalsRow(vm)
		}
	case key.Matches(msg, a.keys.Rule):
		if a.focus == focusTransactions {
			a.openRuleModal(vm)
		}
	}
	return a, nil
}

func (a *App) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.modal = modalNone
		return a, nil
	case "tab", "shift+tab":
		a.modalField = 1 - a.modalField
		a.syncModalFocus()
		return a, nil
	case "enter":
		keyword := strings.TrimSpace(a.keywordInput.Value())
		category := strings.TrimSpace(a.categoryInput.Value())
		if keyword == "" || category == "" {
			a.status = "Keyword and category are required"
			return a, nil
		}
		a.app.Dispatch(state.UpsertRule{Keyword: keyword, Category: category})
		// reclassification can merge totals rows out from under the cursor
		a.clampCursors()
		a.modal = modalNone
		a.status = fmt.Sprintf("Rule saved: %s %s %s",
			strings.ToUpper(keyword), rules.Separator, strings.ToUpper(category))
		return a, nil
	}

	var cmd tea.Cmd
	if a.modalField == 0 {
		a.keywordInput, cmd = a.keywordInput.Update(msg)
	} else {
		a.categoryInput, cmd = a.categoryInput.Update(msg)
	}
	return a, cmd
}

func (a *App) moveCursor(delta int, vm view.Model) {
	if a.focus == focusTotals {
		a.totalsCursor += delta
		a.clampTotalsCursor(vm)
		return
	}
	a.txCursor += delta
	a.clampTxCursor(vm)
}

func (a *App) clampCursors() {
	vm := a.app.View()
	a.clampTxCursor(vm)
	a.clampTotalsCursor(vm)
}

func (a *App) clampTxCursor(vm view.Model) {
	if a.txCursor >= len(vm.Page.Items) {
		a.txCursor = len(vm.Page.Items) - 1
	}
	if a.txCursor < 0 {
		a.txCursor = 0
	}
}

func (a *App) clampTotalsCursor(vm view.Model) {
	if a.totalsCursor >= len(vm.Totals) {
		a.totalsCursor = len(vm.Totals) - 1
	}
	if a.totalsCursor < 0 {
		a.totalsCursor = 0
	}
}

// cycleMonth steps All months → each month ascending → All months.
func (a *App) cycleMonth(vm view.Model) {
	next := ""
	if len(vm.Months) > 0 {
		if vm.MonthFilter == "" {
			next = vm.Months[0]
		} else {
			for i, m := range vm.Months {
				if m == vm.MonthFilter && i+1 < len(vm.Months) {
					next = vm.Months[i+1]
					break
				}
			}
		}
	}
	a.app.Dispatch(state.SetMonthFilter{Month: next})
	a.status = "Month: " + view.FriendlyMonthOrAll(next)
	a.clampCursors()
}

func (a *App) selectTotalsRow(vm view.Model) {
	if len(vm.Totals) == 0 {
		return
	}
	a.clampTotalsCursor(vm)
	cat := vm.Totals[a.totalsCursor].Category
	a.app.Dispatch(state.SetCategoryFilter{Category: cat})
	a.status = fmt.Sprintf("Filtered by %q", cat)
	a.focus = focusTransactions
	a.clampCursors()
}

func (a *App) openRuleModal(vm view.Model) {
	if len(vm.Page.Items) == 0 {
		return
	}
	a.modalTxn = vm.Page.Items[a.txCursor]
	keyword, category := rules.SuggestRule(a.modalTxn)

	a.keywordInput.SetValue(keyword)
	a.categoryInput.SetValue(category)
	a.modalField = 0
	a.syncModalFocus()
	a.modal = modalRule
}

func (a *App) syncModalFocus() {
	if a.modalField == 0 {
		a.keywordInput.Focus()
		a.categoryInput.Blur()
	} else {
		a.keywordInput.Blur()
		a.categoryInput.Focus()
	}
}

// knownCategories lists the categories currently in play, for the
// nearest-match hint in the rule modal.
func (a *App) knownCategories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range a.app.Rules {
		if _, ok := seen[r.Category]; !ok {
			seen[r.Category] = struct{}{}
			out = append(out, r.Category)
		}
	}
	return out
}
