// Package permission holds the per-page access model: a detailed grid of
// page/action switches owned by a role, and the flat page map derived from it
// and cached on each user.
package permission

import (
	"fmt"
	"sort"
)

type Page string

const (
	PageEmployees      Page = "employees"
	PageTimebooks      Page = "timebooks"
	PageContacts       Page = "contacts"
	PageCustomers      Page = "customers"
	PageItems          Page = "items"
	PageJobs           Page = "jobs"
	PagePurchaseOrders Page = "purchase_orders"
	PageVendors        Page = "vendors"
	PageVessels        Page = "vessels"
)

type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

var crud = []Action{ActionList, ActionCreate, ActionEdit, ActionDelete}

// Catalog is the fixed page set in display order, each with its allowed actions.
var Catalog = []struct {
	Page    Page
	Actions []Action
}{
	{PageEmployees, crud},
	{PageTimebooks, crud},
	{PageContacts, crud},
	{PageCustomers, crud},
	{PageItems, crud},
	{PageJobs, crud},
	{PagePurchaseOrders, crud},
	{PageVendors, crud},
	{PageVessels, crud},
}

func Pages() []Page {
	out := make([]Page, len(Catalog))
	for i, c := range Catalog {
		out[i] = c.Page
	}
	return out
}

// ActionsFor returns the allowed actions for page, or nil if the page is unknown.
func ActionsFor(page Page) []Action {
	for _, c := range Catalog {
		if c.Page == page {
			return c.Actions
		}
	}
	return nil
}

func ParsePage(s string) (Page, error) {
	p := Page(s)
	if ActionsFor(p) == nil {
		return "", fmt.Errorf("unknown page %q", s)
	}
	return p, nil
}

// Grid is the detailed page -> action -> allowed shape owned by a role.
type Grid map[Page]map[Action]bool

// FlatMap is the page -> has-any-access summary cached on a user.
type FlatMap map[Page]bool

// DeriveFlat collapses grid into a flat map covering every catalog page.
func DeriveFlat(grid Grid) FlatMap {
	flat := make(FlatMap, len(Catalog))
	for _, c := range Catalog {
		has := false
		for _, allowed := range grid[c.Page] {
			if allowed {
				has = true
				break
			}
		}
		flat[c.Page] = has
	}
	return flat
}

// ApplyFullAccess returns a copy of grid with every allowed action switched on.
func ApplyFullAccess(grid Grid) Grid {
	out := grid.Clone()
	for _, c := range Catalog {
		actions := out[c.Page]
		if actions == nil {
			actions = make(map[Action]bool, len(c.Actions))
			out[c.Page] = actions
		}
		for _, a := range c.Actions {
			actions[a] = true
		}
	}
	return out
}

func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for page, actions := range g {
		cp := make(map[Action]bool, len(actions))
		for a, v := range actions {
			cp[a] = v
		}
		out[page] = cp
	}
	return out
}

func (g Grid) Allows(page Page, action Action) bool {
	return g[page][action]
}

// IsEmpty reports whether the grid has no page entries at all.
func (g Grid) IsEmpty() bool {
	return len(g) == 0
}

// Validate rejects pages and actions outside the catalog.
func (g Grid) Validate() error {
	pages := make([]string, 0, len(g))
	for p := range g {
		pages = append(pages, string(p))
	}
	sort.Strings(pages)

	for _, ps := range pages {
		page := Page(ps)
		allowed := ActionsFor(page)
		if allowed == nil {
			return fmt.Errorf("unknown page %q", page)
		}
		for action := range g[page] {
			if !containsAction(allowed, action) {
				return fmt.Errorf("action %q is not allowed on page %q", action, page)
			}
		}
	}
	return nil
}

// Normalize fills in every catalog page and action, defaulting to false.
func (g Grid) Normalize() Grid {
	out := make(Grid, len(Catalog))
	for _, c := range Catalog {
		actions := make(map[Action]bool, len(c.Actions))
		for _, a := range c.Actions {
			actions[a] = g[c.Page][a]
		}
		out[c.Page] = actions
	}
	return out
}

func FullFlat() FlatMap {
	flat := make(FlatMap, len(Catalog))
	for _, c := range Catalog {
		flat[c.Page] = true
	}
	return flat
}

func EmptyFlat() FlatMap {
	flat := make(FlatMap, len(Catalog))
	for _, c := range Catalog {
		flat[c.Page] = false
	}
	return flat
}

// Union ORs other into a copy of f.
func (f FlatMap) Union(other FlatMap) FlatMap {
	out := make(FlatMap, len(f)+len(other))
	for p, v := range f {
		out[p] = v
	}
	for p, v := range other {
		out[p] = out[p] || v
	}
	return out
}

func (f FlatMap) Allows(page Page) bool {
	return f[page]
}

// IsFull reports whether every catalog page is granted.
func (f FlatMap) IsFull() bool {
	for _, c := range Catalog {
		if !f[c.Page] {
			return false
		}
	}
	return true
}

func containsAction(list []Action, a Action) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
