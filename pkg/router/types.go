package router

import "context"

// Handler turns an assembled request context into a declarative page
// description. Handlers run synchronously inside Resolve.
type Handler func(ctx *RequestContext) Page

// LoaderFunc loads the data a page needs. It is returned to the caller
// unexecuted; the caller owns cancellation through ctx.
type LoaderFunc func(ctx context.Context) (any, error)

// MetaFunc produces page metadata from the loaded data.
type MetaFunc func(ctx context.Context, data any) (*PageMeta, error)

// Page is what a handler declares for a matched route. Every field is
// optional and returned to the caller unmodified.
type Page struct {
	// Component is the page component reference.
	Component any

	// Loading is shown while Loader runs.
	Loading any

	// Error is shown when Loader fails.
	Error any

	// Loader fetches page data.
	Loader LoaderFunc

	// Meta generates page metadata.
	Meta MetaFunc

	// Data is free-form extra data.
	Data any
}

// PageMeta contains page metadata for SEO.
type PageMeta struct {
	Title       string
	Description string
	Keywords    []string
	OGImage     string
	OGTitle     string
	OGDesc      string
	Canonical   string
	Robots      string
}

// MatchResult is a successful lookup. Params is built fresh for each call
// and holds every name the winning pattern binds.
type MatchResult struct {
	// Name is the route's name in the collection passed to Build.
	Name string

	// Route is the registered route. It is shared, not copied.
	Route *Route

	// Params maps bound names to captured components, verbatim.
	Params map[string]string

	handler Handler
}

// ResolvedRoute is the result of Resolve: the handler's page plus the
// matched route and the context the handler saw.
type ResolvedRoute struct {
	Page

	Name    string
	Route   *Route
	Params  map[string]string
	Context *RequestContext
}

// RouteInfo describes a registered route without invoking its handler.
type RouteInfo struct {
	Name        string
	Pattern     string
	ParamNames  []string
	Tags        map[string]string
	HasQuery    bool
	Specificity int
}
