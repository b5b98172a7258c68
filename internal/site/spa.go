package site

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tournamentpro/backend/pkg/response"
)

// clientRoutes are the front-end routes that resolve to index.html.
var clientRoutes = []string{"/", "/bgmi", "/freefire", "/contact", "/disclaimer", "/admin", "/admin/dashboard"}

// SPA serves files from dir and falls back to index.html for GET and HEAD requests that match
// no file. Unknown /api paths get a JSON 404 instead. Use it as the router's NoRoute handler.
func SPA(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			response.NotFound(c, "route not found")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.NotFound(c, "route not found")
			return
		}
		clean := path.Clean("/" + p)
		if clean != "/" {
			file := filepath.Join(dir, filepath.FromSlash(clean))
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
		}
		c.Header("Cache-Control", "no-cache")
		c.File(index)
	}
}
