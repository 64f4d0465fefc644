package phoenixgen

import (
	"io/fs"

	"github.com/goliatone/go-phoenixgen/pkg/catalog"
	"github.com/goliatone/go-phoenixgen/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in preview templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// EmbeddedCatalog exposes the built-in device definitions.
func EmbeddedCatalog() fs.FS {
	return catalog.EmbeddedFS()
}
