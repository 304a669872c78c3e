package routepath

import "strings"

// Split returns the non-empty "/"-separated components of path. Leading,
// trailing and repeated slashes are ignored, so "", "/" and "//" all split
// to nil (the root). Components are not decoded.
func Split(path string) []string {
	n := 0
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			n++
		}
	}
	if n == 0 {
		return nil
	}

	out := make([]string, 0, n)
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Join is the inverse of Split for the root-relative form: "/" + components.
func Join(components []string) string {
	return "/" + strings.Join(components, "/")
}

// SplitPathAndQuery splits a path into path and query components.
// The query is returned without the leading "?". A fragment is dropped.
func SplitPathAndQuery(input string) (path, query string) {
	input, _, _ = strings.Cut(input, "#")
	path, query, _ = strings.Cut(input, "?")
	return path, query
}
