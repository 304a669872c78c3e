package router

import (
	"maps"
	"slices"

	"github.com/vango-dev/vroute/pkg/schema"
)

// Route binds a handler to a compiled pattern. Routes are immutable once
// defined and may be shared between routers.
type Route struct {
	pattern    Pattern
	err        error
	handler    Handler
	query      schema.Schema
	tags       map[string]string
	middleware []Middleware
}

// RouteOption configures a route at definition time.
type RouteOption func(*Route)

// Define compiles path and binds handler to it. A malformed path does not
// panic here; the *PatternError is reported by Build (and by Err).
//
// Example:
//
//	show := router.Define("/users/:id", users.Show)
//	search := router.Define("/search", search.Page,
//	    router.WithQuery(schema.MustJSON(searchSchema)),
//	    router.WithTags("section", "search"),
//	)
func Define(path string, handler Handler, opts ...RouteOption) *Route {
	r := &Route{handler: handler}
	r.pattern, r.err = Compile(path)
	if r.err != nil {
		r.pattern = Pattern{raw: path}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithQuery validates the request query with s before the handler runs.
func WithQuery(s schema.Schema) RouteOption {
	return func(r *Route) {
		r.query = s
	}
}

// WithTags attaches static key/value metadata, given as alternating keys
// and values. A trailing key without a value maps to "".
func WithTags(kv ...string) RouteOption {
	return func(r *Route) {
		if r.tags == nil {
			r.tags = make(map[string]string, len(kv)/2+1)
		}
		for i := 0; i < len(kv); i += 2 {
			var value string
			if i+1 < len(kv) {
				value = kv[i+1]
			}
			r.tags[kv[i]] = value
		}
	}
}

// WithMiddleware wraps this route's handler. Route middleware runs inside
// router-wide middleware.
func WithMiddleware(mw ...Middleware) RouteOption {
	return func(r *Route) {
		r.middleware = append(r.middleware, mw...)
	}
}

// Err returns the pattern compilation error, if any.
func (r *Route) Err() error {
	return r.err
}

// Pattern returns the compiled pattern.
func (r *Route) Pattern() Pattern {
	return r.pattern
}

// ParamNames lists the names the pattern binds, in path order.
func (r *Route) ParamNames() []string {
	return r.pattern.ParamNames()
}

// Tags returns a copy of the route's static metadata.
func (r *Route) Tags() map[string]string {
	return maps.Clone(r.tags)
}

// Tag returns a single metadata value.
func (r *Route) Tag(key string) (string, bool) {
	v, ok := r.tags[key]
	return v, ok
}

// Query returns the query schema, or nil.
func (r *Route) Query() schema.Schema {
	return r.query
}

// Entry is a named route in a Routes collection.
type Entry struct {
	Name  string
	Route *Route
}

// Routes is an ordered collection of named routes. Order is registration
// order, which breaks ties between equally specific patterns.
type Routes []Entry

// Add returns a collection with r registered under name. If name is
// already present its route is replaced in place, keeping its position.
// The receiver is never modified.
func (rs Routes) Add(name string, r *Route) Routes {
	if i := rs.index(name); i >= 0 {
		out := slices.Clone(rs)
		out[i].Route = r
		return out
	}
	return append(slices.Clip(rs), Entry{Name: name, Route: r})
}

// Get returns the route registered under name.
func (rs Routes) Get(name string) (*Route, bool) {
	if i := rs.index(name); i >= 0 {
		return rs[i].Route, true
	}
	return nil, false
}

// Names lists route names in order.
func (rs Routes) Names() []string {
	names := make([]string, len(rs))
	for i, e := range rs {
		names[i] = e.Name
	}
	return names
}

func (rs Routes) index(name string) int {
	return slices.IndexFunc(rs, func(e Entry) bool { return e.Name == name })
}

// Merge composes route collections. Later collections override earlier
// ones by name, which is how an imported route is replaced.
func Merge(collections ...Routes) Routes {
	var out Routes
	for _, c := range collections {
		for _, e := range c {
			out = out.Add(e.Name, e.Route)
		}
	}
	return out
}
