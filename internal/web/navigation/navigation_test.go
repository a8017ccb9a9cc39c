package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("New Service", SectionServices, "new")

	assert.Equal(t, "New Service", ctx.PageTitle)
	assert.Equal(t, SectionServices, ctx.ActiveSection)
	assert.Equal(t, "new", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Edit Post", SectionPosts, "edit").
		AddBreadcrumb("Dashboard", "/admin", false).
		AddBreadcrumb("Edit Post", "/admin/posts/1/edit", true)

	assert.Len(t, ctx.Breadcrumbs, 2)
	assert.False(t, ctx.Breadcrumbs[0].Active)
	assert.True(t, ctx.Breadcrumbs[1].Active)
}

func TestAdmin(t *testing.T) {
	t.Run("dashboard", func(t *testing.T) {
		ctx := Admin("Dashboard", SectionDashboard, SectionDashboard, "/admin")

		assert.Equal(t, []BreadcrumbItem{{Title: "Dashboard", URL: "/admin", Active: true}}, ctx.Breadcrumbs)
	})

	t.Run("sub page", func(t *testing.T) {
		ctx := Admin("Settings", SectionSettings, "edit", "/admin/settings")

		assert.Equal(t, []BreadcrumbItem{
			{Title: "Dashboard", URL: "/admin"},
			{Title: "Settings", URL: "/admin/settings", Active: true},
		}, ctx.Breadcrumbs)
	})
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Edit Service", SectionServices, "edit")

	assert.True(t, ctx.IsActive(SectionServices, "edit"))
	assert.False(t, ctx.IsActive(SectionServices, "new"))
	assert.False(t, ctx.IsActive(SectionPosts, "edit"))
	assert.True(t, ctx.IsSectionActive(SectionServices))
	assert.False(t, ctx.IsSectionActive(SectionSettings))
}
