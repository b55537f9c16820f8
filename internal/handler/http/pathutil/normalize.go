// Package pathutil maps request paths to a bounded set of metric labels.
package pathutil

import "strings"

// OtherPath is the label for paths outside the known route table.
const OtherPath = "/other"

// knownPaths lists every route the dashboard serves.
var knownPaths = map[string]struct{}{
	"/":              {},
	"/updates":       {},
	"/api/feed":      {},
	"/api/companies": {},
	"/api/groups":    {},
	"/api/updates":   {},
	"/health":        {},
	"/ready":         {},
	"/live":          {},
	"/metrics":       {},
}

// prefixPaths are subtrees collapsed into one label each.
var prefixPaths = []string{
	"/swagger/",
}

// NormalizePath returns the route label for path.
//
//	NormalizePath("/api/feed")               // "/api/feed"
//	NormalizePath("/api/feed/")              // "/api/feed"
//	NormalizePath("/swagger/index.html")     // "/swagger/*"
//	NormalizePath("/wp-login.php")           // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if path == "" {
		return "/"
	}

	for _, prefix := range prefixPaths {
		if strings.HasPrefix(path, prefix) {
			return prefix + "*"
		}
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if _, ok := knownPaths[path]; ok {
		return path
	}
	return OtherPath
}

// Cardinality returns the number of distinct labels NormalizePath can return.
func Cardinality() int {
	return len(knownPaths) + len(prefixPaths) + 1
}
