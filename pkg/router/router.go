package router

import (
	"fmt"
	"log/slog"
	"net/url"
	"slices"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/routepath"
)

// Router resolves paths against a fixed set of routes. It is built once by
// Build and is safe for concurrent use afterwards.
type Router struct {
	root       *node
	routes     Routes
	shared     any
	logger     *slog.Logger
	canonical  bool
	strict     bool
	middleware []Middleware
}

// Option configures Build.
type Option func(*Router)

// WithShared sets the router-wide value every RequestContext carries.
func WithShared(v any) Option {
	return func(r *Router) {
		r.shared = v
	}
}

// WithLogger sets the logger used for build and resolve diagnostics.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCanonicalPaths canonicalizes paths before matching: "." and ".."
// segments are resolved and repeated slashes collapse. Paths that cannot be
// canonicalized (backslashes, NUL bytes, bad escapes, escaping the root)
// resolve to not found.
func WithCanonicalPaths() Option {
	return func(r *Router) {
		r.canonical = true
	}
}

// WithStrictParams makes param type hints part of matching. A route whose
// ":id:int" param captures a non-integer does not match and lookup moves on
// to the next candidate.
func WithStrictParams() Option {
	return func(r *Router) {
		r.strict = true
	}
}

// Use adds middleware wrapping every route handler, outermost first.
func Use(mw ...Middleware) Option {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// Build registers every route and returns a ready router. Construction is
// all or nothing: if any route is invalid, Build returns a *BuildError
// listing every problem and no router.
func Build(routes Routes, opts ...Option) (*Router, error) {
	r := &Router{
		root:   newNode(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	var errs []error
	valid := make(Routes, 0, len(routes))
	for _, e := range routes {
		switch {
		case e.Route == nil || e.Route.handler == nil:
			var pattern string
			if e.Route != nil {
				pattern = e.Route.pattern.raw
			}
			errs = append(errs, &RouteDefError{
				Name: e.Name,
				Err:  errors.New(codeNoHandler).WithPattern(pattern).WithLocation("", e.Name),
			})
		case e.Route.err != nil:
			errs = append(errs, &RouteDefError{Name: e.Name, Err: e.Route.err})
		default:
			valid = append(valid, e)
		}
	}
	errs = append(errs, validateConstraints(valid)...)
	if len(errs) > 0 {
		return nil, &BuildError{Errors: errs}
	}

	shapes := make(map[string]string)
	for i, e := range routes {
		ent := &entry{
			name:    e.Name,
			route:   e.Route,
			handler: r.compose(e.Route),
			seq:     i,
		}

		if replaced := r.root.insert(ent); replaced != nil {
			r.logger.Warn("route overridden",
				slog.String("pattern", e.Route.pattern.String()),
				slog.String("previous", replaced.name),
				slog.String("route", e.Name),
			)
		} else if first, ok := shapes[e.Route.pattern.Shape()]; ok {
			r.logger.Warn("ambiguous routes, first registration wins",
				slog.String("shape", e.Route.pattern.Shape()),
				slog.String("winner", first),
				slog.String("route", e.Name),
			)
		} else {
			shapes[e.Route.pattern.Shape()] = e.Name
		}

		r.logger.Debug("route registered",
			slog.String("route", e.Name),
			slog.String("pattern", e.Route.pattern.String()),
		)
	}
	r.routes = slices.Clone(routes)

	return r, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(routes Routes, opts ...Option) *Router {
	r, err := Build(routes, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// compose wraps the route handler with router and route middleware.
func (r *Router) compose(route *Route) Handler {
	mw := make([]Middleware, 0, len(r.middleware)+len(route.middleware))
	mw = append(mw, r.middleware...)
	mw = append(mw, route.middleware...)
	return Compose(route.handler, mw...)
}

// Match finds the best route for path without running its handler.
// A miss is reported with ok == false and is not an error.
func (r *Router) Match(path string) (*MatchResult, bool) {
	if r.canonical {
		res, err := routepath.CanonicalizePath(path)
		if err != nil {
			return nil, false
		}
		path = res.Path
	}

	var accept acceptFunc
	if r.strict {
		accept = acceptTyped
	}

	e, values := r.root.lookup(routepath.Split(path), accept)
	if e == nil {
		return nil, false
	}

	return &MatchResult{
		Name:    e.name,
		Route:   e.route,
		Params:  e.route.pattern.bind(values),
		handler: e.handler,
	}, true
}

func acceptTyped(e *entry, values []string) bool {
	return e.route.pattern.checkTypes(values) == nil
}

// Resolve matches path, validates query against the route's schema,
// assembles the request context and runs the handler. It returns false
// when no route matches.
//
// A query the schema rejects does not fail the call: the context carries a
// nil Query and a QueryError, and the handler still runs. A schema that
// returns a deferred outcome panics with *ContractViolation.
func (r *Router) Resolve(path string, query url.Values) (*ResolvedRoute, bool) {
	m, ok := r.Match(path)
	if !ok {
		return nil, false
	}

	ctx := r.assemble(path, m, query)
	page := m.handler(ctx)

	return &ResolvedRoute{
		Page:    page,
		Name:    m.Name,
		Route:   m.Route,
		Params:  m.Params,
		Context: ctx,
	}, true
}

// ResolveURL resolves a "path?query" string. A malformed query string
// resolves with the pairs that could be parsed.
func (r *Router) ResolveURL(rawURL string) (*ResolvedRoute, bool) {
	path, rawQuery := routepath.SplitPathAndQuery(rawURL)

	var query url.Values
	if rawQuery != "" {
		var err error
		query, err = url.ParseQuery(rawQuery)
		if err != nil {
			r.logger.Debug("malformed query string",
				slog.String("url", rawURL),
				slog.String("error", err.Error()),
			)
		}
	}

	return r.Resolve(path, query)
}

// Route returns the route registered under name.
func (r *Router) Route(name string) (*Route, bool) {
	return r.routes.Get(name)
}

// Routes lists the registered routes, most specific first. Overridden
// registrations are not listed.
func (r *Router) Routes() []RouteInfo {
	var infos []RouteInfo
	var seqs []int
	r.root.walk(func(e *entry) {
		infos = append(infos, e.info())
		seqs = append(seqs, e.seq)
	})
	sortInfos(infos, seqs)
	return infos
}

// Filter lists the routes whose tag key equals value, most specific first.
func (r *Router) Filter(key, value string) []RouteInfo {
	var out []RouteInfo
	for _, info := range r.Routes() {
		if v, ok := info.Tags[key]; ok && v == value {
			out = append(out, info)
		}
	}
	return out
}

// Len returns the number of reachable routes.
func (r *Router) Len() int {
	n := 0
	r.root.walk(func(*entry) { n++ })
	return n
}

func (e *entry) info() RouteInfo {
	return RouteInfo{
		Name:        e.name,
		Pattern:     e.route.pattern.String(),
		ParamNames:  e.route.ParamNames(),
		Tags:        e.route.Tags(),
		HasQuery:    e.route.query != nil,
		Specificity: calculateSpecificity(e.route.pattern),
	}
}

// String implements fmt.Stringer for debugging.
func (r *Router) String() string {
	return fmt.Sprintf("Router(%d routes)", r.Len())
}
