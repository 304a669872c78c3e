package middleware

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/schema"
)

// =============================================================================
// Test Helpers
// =============================================================================

var errLoad = errors.New("load failed")

// pageOnly rejects any query that carries a key other than page.
var pageOnly = schema.Func(func(raw any) schema.Outcome {
	flat := schema.Flatten(raw)
	for k := range flat {
		if k != "page" {
			return schema.Invalid(schema.Issue{Path: []string{k}, Message: "unknown key"})
		}
	}
	return schema.Valid(flat)
})

// testRouter builds a router with a page-returning route, a failing loader
// route and a plain route, all wrapped by mw.
func testRouter(t *testing.T, mw ...router.Middleware) *router.Router {
	t.Helper()
	routes := router.Routes{}.
		Add("user", router.Define("/users/:id", func(ctx *router.RequestContext) router.Page {
			return router.Page{
				Component: "user",
				Loader: func(context.Context) (any, error) {
					return ctx.Param("id"), nil
				},
				Meta: func(_ context.Context, data any) (*router.PageMeta, error) {
					return &router.PageMeta{Title: data.(string)}, nil
				},
			}
		}, router.WithQuery(pageOnly))).
		Add("broken", router.Define("/broken", func(*router.RequestContext) router.Page {
			return router.Page{
				Loader: func(context.Context) (any, error) { return nil, errLoad },
			}
		})).
		Add("home", router.Define("/", func(*router.RequestContext) router.Page {
			return router.Page{Component: "home"}
		}))

	r, err := router.Build(routes, router.Use(mw...))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return r
}

func resolve(t *testing.T, r *router.Router, path string, query url.Values) *router.ResolvedRoute {
	t.Helper()
	res, ok := r.Resolve(path, query)
	if !ok {
		t.Fatalf("Resolve(%q) did not match", path)
	}
	return res
}

func TestMiddlewareComposeOrder(t *testing.T) {
	r := testRouter(t,
		Prometheus(WithRegistry(newTestRegistry())),
		OpenTelemetry(WithTracerProvider(newTestTracerProvider().tp)),
	)

	res := resolve(t, r, "/users/7", nil)
	if res.Component != "user" {
		t.Fatalf("Component = %v, want user", res.Component)
	}
	data, err := res.Loader(context.Background())
	if err != nil || data != "7" {
		t.Fatalf("Loader() = %v, %v; want 7, nil", data, err)
	}
	meta, err := res.Meta(context.Background(), data)
	if err != nil || meta.Title != "7" {
		t.Fatalf("Meta() = %+v, %v", meta, err)
	}
}
