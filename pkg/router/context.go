package router

import (
	"log/slog"
	"net/url"
)

// RequestContext is assembled for each resolve call and handed to the
// route handler. It is not retained by the router.
type RequestContext struct {
	// Path is the path passed to Resolve, as given.
	Path string

	// Params holds the bound path parameters. It is nil when the pattern
	// binds none.
	Params map[string]string

	// Query is the validated query value. Without a schema it is the raw
	// url.Values; it is nil when validation failed or no query was given.
	Query any

	// QueryError is set only when the query schema rejected the query.
	QueryError *QueryError

	// Shared is the router-wide value from WithShared, passed by reference.
	// The router never writes to it; concurrent mutation is the owner's
	// responsibility.
	Shared any

	name string
}

// HasParams reports whether the context carries path parameters.
func (c *RequestContext) HasParams() bool {
	return c.Params != nil
}

// HasQuery reports whether the context carries a query value.
func (c *RequestContext) HasQuery() bool {
	return c.Query != nil
}

// Param returns a single path parameter, or "" when absent.
func (c *RequestContext) Param(name string) string {
	return c.Params[name]
}

// RouteName returns the name of the matched route.
func (c *RequestContext) RouteName() string {
	return c.name
}

// Bind parses the path parameters into a struct with `param` tags.
//
// Example:
//
//	var p struct {
//	    ID int `param:"id"`
//	}
//	if err := ctx.Bind(&p); err != nil { ... }
func (c *RequestContext) Bind(target any) error {
	return NewParamParser().Parse(c.Params, target)
}

// assemble builds the request context for a match.
func (r *Router) assemble(path string, m *MatchResult, raw url.Values) *RequestContext {
	ctx := &RequestContext{
		Path:   path,
		Shared: r.shared,
		name:   m.Name,
	}

	if len(m.Route.pattern.names) > 0 {
		ctx.Params = m.Params
	}

	ctx.Query, ctx.QueryError = validateQuery(m.Name, path, m.Route.query, raw)
	if ctx.QueryError != nil {
		r.logger.Debug("query validation failed",
			slog.String("route", m.Name),
			slog.String("path", path),
			slog.Int("issues", len(ctx.QueryError.Issues)),
		)
	}

	return ctx
}
