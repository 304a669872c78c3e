package router

import (
	"net/url"
	"testing"
)

func TestRequestContextPresence(t *testing.T) {
	var last *RequestContext
	capture := func(ctx *RequestContext) Page {
		last = ctx
		return Page{}
	}

	r := mustBuild(t, Routes{}.
		Add("static", Define("/static", capture)).
		Add("param", Define("/p/:id", capture)).
		Add("query", Define("/q", capture, WithQuery(qOnly))))

	tests := []struct {
		path       string
		query      url.Values
		wantParams bool
		wantQuery  bool
	}{
		{"/static", nil, false, false},
		{"/static", url.Values{"x": {"1"}}, false, true},
		{"/p/1", nil, true, false},
		{"/q", url.Values{"q": {"x"}}, false, true},
		{"/q", url.Values{"nope": {"x"}}, false, false},
	}

	for _, tt := range tests {
		if _, ok := r.Resolve(tt.path, tt.query); !ok {
			t.Fatalf("Resolve(%q) no match", tt.path)
		}
		if last.HasParams() != tt.wantParams {
			t.Errorf("%s HasParams() = %v, want %v", tt.path, last.HasParams(), tt.wantParams)
		}
		if last.HasQuery() != tt.wantQuery {
			t.Errorf("%s %v HasQuery() = %v, want %v", tt.path, tt.query, last.HasQuery(), tt.wantQuery)
		}
		if !tt.wantParams && last.Params != nil {
			t.Errorf("%s Params = %v, want nil", tt.path, last.Params)
		}
	}
}

func TestRequestContextAccessors(t *testing.T) {
	var ctx *RequestContext
	r := mustBuild(t, Routes{}.Add("user.show", Define("/users/:id", func(c *RequestContext) Page {
		ctx = c
		return Page{}
	})), WithShared("shared"))

	r.Resolve("/users/42", nil)

	if ctx.Path != "/users/42" {
		t.Errorf("Path = %q", ctx.Path)
	}
	if ctx.Param("id") != "42" {
		t.Errorf("Param(id) = %q", ctx.Param("id"))
	}
	if ctx.Param("missing") != "" {
		t.Errorf("Param(missing) = %q, want empty", ctx.Param("missing"))
	}
	if ctx.RouteName() != "user.show" {
		t.Errorf("RouteName() = %q", ctx.RouteName())
	}
	if ctx.Shared != "shared" {
		t.Errorf("Shared = %v", ctx.Shared)
	}
}

func TestRequestContextBind(t *testing.T) {
	var bound struct {
		Org  string   `param:"org"`
		ID   int      `param:"id"`
		Path []string `param:"rest"`
	}
	var bindErr error

	r := mustBuild(t, Routes{}.Add("file", Define("/orgs/:org/items/:id:int/**:rest", func(ctx *RequestContext) Page {
		bindErr = ctx.Bind(&bound)
		return Page{}
	})))

	if _, ok := r.Resolve("/orgs/acme/items/7/a/b", nil); !ok {
		t.Fatal("expected match")
	}
	if bindErr != nil {
		t.Fatalf("Bind() error: %v", bindErr)
	}
	if bound.Org != "acme" || bound.ID != 7 || len(bound.Path) != 2 || bound.Path[1] != "b" {
		t.Errorf("bound = %+v", bound)
	}

	r.Resolve("/orgs/acme/items/seven/a", nil)
	if bindErr == nil {
		t.Error("Bind() should fail for a non-integer id")
	}
}
