package view

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Resource is one managed collection in the admin panel.
type Resource struct {
	Slug    string
	Columns []string
}

// Title is the display name of the resource, e.g. "Products".
func (r Resource) Title() string {
	return cases.Title(language.English).String(r.Slug)
}

// Path is the shell page URL of the resource.
func (r Resource) Path() string {
	return "/" + r.Slug
}

// FragmentPath is the guarded content URL loaded into the shell.
func (r Resource) FragmentPath() string {
	return "/fragments/" + r.Slug
}

// Resources lists the managed collections in sidebar order.
var Resources = []Resource{
	{Slug: "products", Columns: []string{"Name", "SKU", "Category", "Brand", "Price", "Stock"}},
	{Slug: "categories", Columns: []string{"Name", "Slug", "Products"}},
	{Slug: "brands", Columns: []string{"Name", "Products"}},
	{Slug: "campaigns", Columns: []string{"Name", "Discount", "Starts", "Ends", "Status"}},
	{Slug: "admins", Columns: []string{"Name", "Email", "Role", "Last login"}},
	{Slug: "roles", Columns: []string{"Name", "Permissions", "Admins"}},
}

// FindResource looks a resource up by slug.
func FindResource(slug string) (Resource, bool) {
	for _, r := range Resources {
		if r.Slug == slug {
			return r, true
		}
	}
	return Resource{}, false
}
