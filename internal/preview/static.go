package preview

import (
	"net/http"
	"path"
	"strings"
)

// wellKnown is the only dot-directory served from the site root.
const wellKnown = ".well-known"

// staticFiles serves root as a file tree. Dotfiles and dot-directories
// other than .well-known are hidden, as is every site-relative path in
// hidden.
func staticFiles(root string, hidden []string) http.Handler {
	deny := make([]string, 0, len(hidden))
	for _, h := range hidden {
		if h = cleanRel(h); h != "" {
			deny = append(deny, h)
		}
	}
	files := http.FileServer(http.Dir(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := cleanRel(r.URL.Path)
		if isHidden(rel, deny) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func cleanRel(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func isHidden(rel string, deny []string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") && seg != wellKnown {
			return true
		}
	}
	for _, d := range deny {
		if strings.EqualFold(rel, d) || strings.HasPrefix(strings.ToLower(rel), strings.ToLower(d)+"/") {
			return true
		}
	}
	return false
}
