package web

import (
	"embed"
	"io/fs"
)

var (
	//go:embed static
	embeddedStaticFiles embed.FS

	//go:embed templates
	embeddedTemplates embed.FS
)

// templatesFS returns the embedded templates with "templates/" stripped from
// their names, so views are addressed as "home" or "admin/dashboard".
func templatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err) // the directory is embedded at compile time
	}

	return sub
}
