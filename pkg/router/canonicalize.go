package router

import "github.com/vango-dev/vroute/pkg/routepath"

// CanonicalizeResult contains the result of path canonicalization.
type CanonicalizeResult = routepath.CanonicalizeResult

// Path canonicalization errors.
var (
	ErrInvalidPath          = routepath.ErrInvalidPath
	ErrBackslashInPath      = routepath.ErrBackslashInPath
	ErrNullByteInPath       = routepath.ErrNullByteInPath
	ErrInvalidPercentEscape = routepath.ErrInvalidPercentEscape
	ErrPathEscapesRoot      = routepath.ErrPathEscapesRoot
)

// CanonicalizePath normalizes a URL path the way WithCanonicalPaths does
// before matching.
func CanonicalizePath(input string) (CanonicalizeResult, error) {
	return routepath.CanonicalizePath(input)
}

// SplitPathAndQuery splits a path into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	return routepath.SplitPathAndQuery(input)
}
