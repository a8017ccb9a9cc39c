// Package navigation provides the admin menu state and breadcrumbs.
package navigation

const (
	// SectionDashboard is the overview page.
	SectionDashboard = "dashboard"
	// SectionServices groups the service pages.
	SectionServices = "services"
	// SectionPosts groups the feed post pages.
	SectionPosts = "posts"
	// SectionSettings is the appearance settings page.
	SectionSettings = "settings"
	// SectionAccounts lists the accounts that can sign in.
	SectionAccounts = "accounts"

	dashboardTitle = "Dashboard"
	dashboardURL   = "/admin"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// Admin creates the context of an admin page below the dashboard.
// The dashboard itself gets a single active breadcrumb.
func Admin(pageTitle, section, page, url string) *Context {
	ctx := NewContext(pageTitle, section, page)

	if section == SectionDashboard {
		return ctx.AddBreadcrumb(dashboardTitle, dashboardURL, true)
	}

	return ctx.
		AddBreadcrumb(dashboardTitle, dashboardURL, false).
		AddBreadcrumb(pageTitle, url, true)
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
