package phoenixgen

import (
	"io/fs"

	"github.com/goliatone/go-phoenixgen/pkg/renderers/html"
)

// PreviewAssetsFS exposes the stylesheet used by the html preview so Go
// applications can serve it next to rendered pages.
//
// Typical mount:
//
//	mux.Handle("/preview/",
//	  http.StripPrefix("/preview/",
//	    http.FileServerFS(phoenixgen.PreviewAssetsFS()),
//	  ),
//	)
func PreviewAssetsFS() fs.FS {
	return html.AssetsFS()
}
