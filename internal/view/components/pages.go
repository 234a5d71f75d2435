package components

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/view"
)

var counts = message.NewPrinter(language.English)

// SummaryCardCount is the number of cards on the dashboard.
const SummaryCardCount = 6

// DashboardSummary renders the aggregate counts.
func DashboardSummary(s *authority.Summary) g.Node {
	return h.Div(h.ID("content"), h.Class("grid grid-cols-3 gap-6"),
		summaryCard("Products", s.Products, "/products"),
		summaryCard("Categories", s.Categories, "/categories"),
		summaryCard("Brands", s.Brands, "/brands"),
		summaryCard("Customers", s.Customers, ""),
		summaryCard("Admins", s.Admins, "/admins"),
		summaryCard("Roles", s.Roles, "/roles"),
	)
}

func summaryCard(label string, n int, href string) g.Node {
	return h.Div(h.Class("rounded-lg bg-white p-6 shadow"),
		h.Div(h.Class("text-sm text-gray-500 mb-2"), g.Text(label)),
		h.Div(h.Class("text-3xl font-bold"), g.Text(counts.Sprintf("%d", n))),
		g.If(href != "", h.A(h.Href(href), h.Class("text-sm text-indigo-600"), g.Text("Manage"))),
	)
}

// ResourceTable renders a resource's table. Rows are loaded by the
// resource's own management screens; the panel root shows the empty state.
func ResourceTable(r view.Resource) g.Node {
	return h.Div(h.ID("content"),
		h.Table(h.Class("w-full bg-white shadow rounded-lg"),
			tableHead(r.Columns),
			h.TBody(h.Tr(h.Td(
				h.ColSpan(fmt.Sprint(len(r.Columns))),
				h.Class("p-6 text-center text-gray-500"),
				g.Textf("No %s yet.", r.Slug),
			))),
		),
	)
}

// LoginForm renders the sign-in form. message is shown verbatim.
func LoginForm(email, message string) g.Node {
	return h.Form(h.ID("login"), h.Method("post"), h.Action("/login"),
		hx.Post("/login"), hx.Target("#login"), hx.Swap("outerHTML"),
		h.Class("rounded-lg bg-white p-8 shadow flex flex-col gap-4"),
		h.H1(h.Class("text-xl font-bold"), g.Text("Sign in")),
		g.If(message != "", h.Div(h.Class("rounded bg-red-100 p-3 text-red-800"), h.Role("alert"), g.Text(message))),
		h.Label(h.For("email"), g.Text("Email")),
		h.Input(h.ID("email"), h.Name("email"), h.Type("email"), h.Value(email), h.Required(), h.Class("border rounded p-2")),
		h.Label(h.For("password"), g.Text("Password")),
		h.Input(h.ID("password"), h.Name("password"), h.Type("password"), h.Required(), h.Class("border rounded p-2")),
		h.Button(h.Type("submit"), h.Class("rounded bg-indigo-600 p-2 text-white"), g.Text("Sign in")),
	)
}

// LoginSuccess confirms the login and navigates to root after delay.
// htmx fires the load trigger once, so navigation happens exactly once.
func LoginSuccess(root string, delay time.Duration) g.Node {
	return h.Div(h.ID("login"),
		h.Class("rounded-lg bg-white p-8 shadow"),
		hx.Get(root),
		hx.Trigger(fmt.Sprintf("load delay:%dms", delay.Milliseconds())),
		hx.Target("body"),
		hx.Swap("innerHTML"),
		hx.PushURL("true"),
		h.Div(h.Class("rounded bg-green-100 p-3 text-green-800"), h.Role("status"), g.Text("Logged in successfully! Redirecting...")),
	)
}
