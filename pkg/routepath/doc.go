// Package routepath splits and canonicalizes request paths for matching.
//
// Split is what the router matches against: the non-empty components of a
// path, taken verbatim. CanonicalizePath is the opt-in normalization the
// router applies first when built with router.WithCanonicalPaths.
package routepath
