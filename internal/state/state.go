// Package state owns the process-wide mutable state — transactions, rule
// text, filters — and runs the classify→aggregate→view pipeline on every
// dispatched action.
package state

import (
	"strings"

	"github.com/ChasNicholls/spendlite/internal/model"
	"github.com/ChasNicholls/spendlite/internal/rules"
	"github.com/ChasNicholls/spendlite/internal/store"
	"github.com/ChasNicholls/spendlite/internal/view"
)

// App is the application state consumed and produced by Dispatch. A single
// pipeline is in flight at a time; there are no concurrent mutation paths.
type App struct {
	Transactions []model.Transaction
	RuleText     string
	Rules        []model.Rule
	Filter       model.FilterState
	Collapsed    bool

	pageSize int
	store    store.Store
}

// New builds an App from persisted state. The fallback rule text is used
// when no rules were persisted (typically a rules file or the sample
// block). Restored transactions are reclassified against the active rules.
func New(st store.Store, pageSize int, fallbackRuleText string) *App {
	a := &App{
		Filter:    model.FilterState{Page: 1},
		Collapsed: true,
		pageSize:  pageSize,
		store:     st,
	}
	if a.pageSize < 1 {
		a.pageSize = view.DefaultPageSize
	}

	a.RuleText = fallbackRuleText
	if text, ok := st.Get(store.KeyRules); ok && strings.TrimSpace(text) != "" {
		a.RuleText = text
	}
	a.Rules = rules.Parse(a.RuleText)

	if cat, ok := st.Get(store.KeyCategoryFilter); ok {
		a.Filter.Category = strings.ToUpper(strings.TrimSpace(cat))
	}
	if month, ok := st.Get(store.KeyMonthFilter); ok {
		a.Filter.Month = month
	}
	if collapsed, ok := st.Get(store.KeyCollapsed); ok {
		a.Collapsed = collapsed != "false"
	}
	if snapshot, ok := st.Get(store.KeyTransactions); ok {
		a.Transactions = decodeSnapshot(snapshot)
	}

	rules.Classify(a.Transactions, a.Rules)
	return a
}

// Action is a state transition consumed by Dispatch.
type Action interface{ isAction() }

// LoadTransactions replaces the whole transaction list with a fresh ingest.
type LoadTransactions struct{ Transactions []model.Transaction }

// SetRuleText replaces the rule text blob.
type SetRuleText struct{ Text string }

// UpsertRule replaces or appends one keyword→category rule line.
type UpsertRule struct{ Keyword, Category string }

// SetMonthFilter restricts the view to one calendar month ("" = all).
type SetMonthFilter struct{ Month string }

// SetCategoryFilter restricts the view to one category ("" = none).
type SetCategoryFilter struct{ Category string }

// ClearMonthFilter resets the month filter.
type ClearMonthFilter struct{}

// ClearCategoryFilter resets the category filter.
type ClearCategoryFilter struct{}

// SetPage jumps to a page; it is clamped at view time.
type SetPage struct{ Page int }

// PageDelta moves one wheel tick; ignored when only one page exists.
type PageDelta struct{ Delta int }

// ToggleCollapsed flips the transaction-table visibility flag.
type ToggleCollapsed struct{}

func (LoadTransactions) isAction()    {}
func (SetRuleText) isAction()         {}
func (UpsertRule) isAction()          {}
func (SetMonthFilter) isAction()      {}
func (SetCategoryFilter) isAction()   {}
func (ClearMonthFilter) isAction()    {}
func (ClearCategoryFilter) isAction() {}
func (SetPage) isAction()             {}
func (PageDelta) isAction()           {}
func (ToggleCollapsed) isAction()     {}

// Dispatch applies one action and runs the pipeline to completion. Month,
// category and rule changes reset the page to 1. Every dispatch persists a
// best-effort snapshot.
func (a *App) Dispatch(action Action) {
	switch act := action.(type) {
	case LoadTransactions:
		a.Transactions = act.Transactions
		a.Filter.Page = 1
	case SetRuleText:
		a.RuleText = act.Text
		a.Filter.Page = 1
	case UpsertRule:
		a.RuleText = rules.Upsert(a.RuleText, act.Keyword, act.Category)
		a.Filter.Page = 1
	case SetMonthFilter:
		a.Filter.Month = act.Month
		a.Filter.Page = 1
	case SetCategoryFilter:
		a.Filter.Category = strings.ToUpper(strings.TrimSpace(act.Category))
		a.Filter.Page = 1
	case ClearMonthFilter:
		a.Filter.Month = ""
		a.Filter.Page = 1
	case ClearCategoryFilter:
		a.Filter.Category = ""
		a.Filter.Page = 1
	case SetPage:
		a.Filter.Page = act.Page
	case PageDelta:
		vm := a.View()
		a.Filter.Page = view.PageDelta(vm.Page.Number, vm.Page.TotalPages, act.Delta)
	case ToggleCollapsed:
		a.Collapsed = !a.Collapsed
	}

	a.Rules = rules.Parse(a.RuleText)
	rules.Classify(a.Transactions, a.Rules)
	a.persist()
}

// View projects the current state into a renderable frame.
func (a *App) View() view.Model {
	return view.Build(a.Transactions, a.Filter, a.pageSize, a.Collapsed)
}

// PageSize returns the configured transaction-table page size.
func (a *App) PageSize() int { return a.pageSize }

// persist writes the session to the store. Failures are swallowed: the
// session keeps running in memory.
func (a *App) persist() {
	a.store.Put(store.KeyRules, a.RuleText)
	a.store.Put(store.KeyCategoryFilter, a.Filter.Category)
	a.store.Put(store.KeyMonthFilter, a.Filter.Month)
	if a.Collapsed {
		a.store.Put(store.KeyCollapsed, "true")
	} else {
		a.store.Put(store.KeyCollapsed, "false")
	}
	if data, err := encodeSnapshot(a.Transactions); err == nil {
		a.store.Put(store.KeyTransactions, data)
	}
}
