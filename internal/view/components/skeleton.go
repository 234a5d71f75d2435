package components

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Loader is the Checking placeholder of a guarded page: it shows the
// skeleton and asks htmx to replace itself with the guarded fragment as
// soon as it is on screen.
func Loader(fragmentPath string, skeleton g.Node) g.Node {
	return h.Div(h.ID("content"),
		hx.Get(fragmentPath),
		hx.Trigger("load"),
		hx.Swap("outerHTML"),
		h.Aria("busy", "true"),
		skeleton,
	)
}

// SkeletonCards is the placeholder for n summary cards.
func SkeletonCards(n int) g.Node {
	cards := make([]g.Node, n)
	for i := range cards {
		cards[i] = h.Div(h.Class("rounded-lg bg-white p-6 shadow animate-pulse"),
			h.Div(h.Class("h-4 w-24 rounded bg-gray-200 mb-4")),
			h.Div(h.Class("h-8 w-16 rounded bg-gray-300")),
		)
	}
	return h.Div(h.Class("grid grid-cols-3 gap-6"), g.Group(cards))
}

// SkeletonTable is the placeholder for a table with the given columns.
func SkeletonTable(columns []string, rows int) g.Node {
	body := make([]g.Node, rows)
	for i := range body {
		cells := make([]g.Node, len(columns))
		for j := range cells {
			cells[j] = h.Td(h.Class("p-3"), h.Div(h.Class("h-4 rounded bg-gray-200 animate-pulse")))
		}
		body[i] = h.Tr(g.Group(cells))
	}
	return h.Table(h.Class("w-full bg-white shadow rounded-lg"),
		tableHead(columns),
		h.TBody(g.Group(body)),
	)
}

func tableHead(columns []string) g.Node {
	return h.THead(h.Tr(g.Map(columns, func(col string) g.Node {
		return h.Th(h.Class("p-3 text-left text-sm font-semibold text-gray-600"), g.Text(col))
	})))
}
