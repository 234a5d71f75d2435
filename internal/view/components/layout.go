// Package components holds the gomponents building blocks of the panel:
// the layout, skeleton placeholders and page bodies.
package components

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/panel/internal/view"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - Panel"
	}
	return "Panel"
}

// Shell is the authenticated layout: sidebar navigation, flash messages
// and the page content.
func Shell(title, active string, flashes view.FlashData, content g.Node) g.Node {
	return document(title,
		h.Div(h.Class("flex min-h-screen"),
			Sidebar(active),
			h.Main(h.Class("flex-1 p-8"),
				h.Div(h.Class("flex items-center justify-between mb-6"),
					h.H1(h.Class("text-2xl font-bold"), g.Text(title)),
					h.A(h.Href("/logout"), h.Class("text-sm text-gray-600 hover:underline"), g.Text("Log out")),
				),
				Flashes(flashes),
				content,
			),
		),
	)
}

// Bare is the layout for pages outside the protected area.
func Bare(title string, flashes view.FlashData, content g.Node) g.Node {
	return document(title,
		h.Main(h.Class("min-h-screen flex items-center justify-center bg-gray-50"),
			h.Div(h.Class("w-full max-w-sm"),
				Flashes(flashes),
				content,
			),
		),
	)
}

func document(title string, body g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
			h.Script(h.Src(htmxSrc), h.Defer()),
		},
		Body: []g.Node{body},
	})
}

// Sidebar renders the navigation with active highlighted.
func Sidebar(active string) g.Node {
	items := []g.Node{navLink("/", "Dashboard", active == "dashboard")}
	for _, r := range view.Resources {
		items = append(items, navLink(r.Path(), r.Title(), active == r.Slug))
	}
	return h.Aside(h.Class("w-56 bg-gray-900 text-gray-100 p-4"),
		h.Div(h.Class("text-lg font-semibold mb-6"), g.Text("Admin Panel")),
		h.Nav(h.Class("flex flex-col gap-1"), g.Group(items)),
	)
}

func navLink(href, label string, active bool) g.Node {
	return h.A(h.Href(href),
		c.Classes{
			"px-3 py-2 rounded":               true,
			"bg-gray-700 font-semibold":       active,
			"hover:bg-gray-800 text-gray-300": !active,
		},
		g.Text(label),
	)
}

// Flashes renders success and error messages.
func Flashes(f view.FlashData) g.Node {
	return g.Group([]g.Node{
		g.Map(f.Success, func(msg string) g.Node {
			return h.Div(h.Class("mb-4 rounded bg-green-100 p-3 text-green-800"), h.Role("status"), g.Text(msg))
		}),
		g.Map(f.Error, func(msg string) g.Node {
			return h.Div(h.Class("mb-4 rounded bg-red-100 p-3 text-red-800"), h.Role("alert"), g.Text(msg))
		}),
	})
}
