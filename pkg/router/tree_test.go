package router

import (
	"reflect"
	"testing"

	"github.com/vango-dev/vroute/pkg/routepath"
)

// dummyHandler is a test page handler.
func dummyHandler(*RequestContext) Page { return Page{} }

func testEntry(name, path string) *entry {
	return &entry{name: name, route: Define(path, dummyHandler)}
}

func buildTree(t *testing.T, paths ...string) *node {
	t.Helper()
	root := newNode()
	for _, p := range paths {
		e := testEntry(p, p)
		if e.route.Err() != nil {
			t.Fatalf("Define(%q) error: %v", p, e.route.Err())
		}
		root.insert(e)
	}
	return root
}

func TestNodeInsertStructure(t *testing.T) {
	root := buildTree(t, "/users", "/users/:id", "/users/:id/posts", "/files/**")

	users, ok := root.static["users"]
	if !ok {
		t.Fatal("expected static child users")
	}
	if len(users.entries) != 1 {
		t.Errorf("users entries = %d, want 1", len(users.entries))
	}
	if users.dynamic == nil {
		t.Fatal("expected dynamic child under users")
	}
	if _, ok := users.dynamic.static["posts"]; !ok {
		t.Error("expected static child posts under users/:id")
	}

	files := root.static["files"]
	if files == nil || files.catchAll == nil {
		t.Fatal("expected catch-all child under files")
	}
	if len(files.catchAll.entries) != 1 {
		t.Errorf("files catch-all entries = %d, want 1", len(files.catchAll.entries))
	}
}

func TestNodeParamAndWildcardShareChild(t *testing.T) {
	root := buildTree(t, "/a/:id", "/a/*")

	a := root.static["a"]
	if a.dynamic == nil {
		t.Fatal("expected dynamic child")
	}
	if len(a.dynamic.entries) != 2 {
		t.Errorf("dynamic entries = %d, want 2", len(a.dynamic.entries))
	}
}

func TestNodeInsertIdenticalReplaces(t *testing.T) {
	root := newNode()
	first := testEntry("first", "/users/:id")
	second := testEntry("second", "/users/:id")

	if replaced := root.insert(first); replaced != nil {
		t.Fatalf("first insert replaced %v", replaced.name)
	}
	replaced := root.insert(second)
	if replaced != first {
		t.Fatalf("second insert replaced %v, want first", replaced)
	}

	entries := root.static["users"].dynamic.entries
	if len(entries) != 1 || entries[0] != second {
		t.Errorf("entries = %v, want only second", entries)
	}
}

func TestNodeInsertSameShapeAppends(t *testing.T) {
	root := newNode()
	root.insert(testEntry("by-id", "/users/:id"))
	root.insert(testEntry("by-name", "/users/:name"))

	entries := root.static["users"].dynamic.entries
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].name != "by-id" {
		t.Errorf("first entry = %q, want by-id", entries[0].name)
	}
}

func TestNodeLookup(t *testing.T) {
	root := buildTree(t,
		"/",
		"/users",
		"/users/:id",
		"/users/me",
		"/users/:id/posts/:post",
		"/users/:id/**:rest",
		"/files/*path",
		"/a/*/c",
		"/a/b/:x",
		"/docs/**",
		"/docs/intro",
	)

	tests := []struct {
		path       string
		wantName   string
		wantValues []string
	}{
		{"/", "/", nil},
		{"", "/", nil},
		{"/users", "/users", nil},
		{"/users/", "/users", nil},
		{"/users/me", "/users/me", nil},
		{"/users/123", "/users/:id", []string{"123"}},
		{"/users/123/posts/9", "/users/:id/posts/:post", []string{"123", "9"}},
		{"/users/123/posts", "/users/:id/**:rest", []string{"123", "posts"}},
		{"/users/123/a/b/c", "/users/:id/**:rest", []string{"123", "a/b/c"}},
		{"/files/a/b/c", "/files/*path", []string{"a/b/c"}},
		{"/files/a", "/files/*path", []string{"a"}},
		{"/a/x/c", "/a/*/c", []string{"x"}},
		{"/a/b/c", "/a/b/:x", []string{"c"}},
		{"/docs/intro", "/docs/intro", nil},
		{"/docs/guide/setup", "/docs/**", []string{"guide/setup"}},
	}

	for _, tt := range tests {
		e, values := root.lookup(routepath.Split(tt.path), nil)
		if e == nil {
			t.Errorf("lookup(%q) = nil, want %s", tt.path, tt.wantName)
			continue
		}
		if e.name != tt.wantName {
			t.Errorf("lookup(%q) = %s, want %s", tt.path, e.name, tt.wantName)
		}
		if len(values) == 0 && len(tt.wantValues) == 0 {
			continue
		}
		if !reflect.DeepEqual(values, tt.wantValues) {
			t.Errorf("lookup(%q) values = %v, want %v", tt.path, values, tt.wantValues)
		}
	}
}

func TestNodeLookupMiss(t *testing.T) {
	root := buildTree(t, "/users/:id", "/files/**")

	for _, path := range []string{"/nope", "/users", "/users/1/2", "/files"} {
		if e, _ := root.lookup(routepath.Split(path), nil); e != nil {
			t.Errorf("lookup(%q) = %s, want miss", path, e.name)
		}
	}
}

func TestNodeLookupBacktracks(t *testing.T) {
	// /a/b/x only exists under the dynamic branch.
	root := buildTree(t, "/a/b/c", "/a/:p/x")

	e, values := root.lookup(routepath.Split("/a/b/x"), nil)
	if e == nil || e.name != "/a/:p/x" {
		t.Fatalf("lookup = %v, want /a/:p/x", e)
	}
	if !reflect.DeepEqual(values, []string{"b"}) {
		t.Errorf("values = %v, want [b]", values)
	}
}

func TestNodeLookupCatchAllLast(t *testing.T) {
	// The catch-all is closer to the root but must lose to the deeper
	// fixed-depth match.
	root := buildTree(t, "/**", "/:section/:page")

	e, _ := root.lookup(routepath.Split("/blog/hello"), nil)
	if e == nil || e.name != "/:section/:page" {
		t.Fatalf("lookup = %v, want /:section/:page", e)
	}

	e, values := root.lookup(routepath.Split("/blog/hello/world"), nil)
	if e == nil || e.name != "/**" {
		t.Fatalf("lookup = %v, want /**", e)
	}
	if !reflect.DeepEqual(values, []string{"blog/hello/world"}) {
		t.Errorf("values = %v", values)
	}
}

func TestNodeLookupAccept(t *testing.T) {
	root := newNode()
	root.insert(testEntry("numeric", "/items/:id:int"))
	root.insert(testEntry("slug", "/items/:slug"))

	e, _ := root.lookup(routepath.Split("/items/abc"), acceptTyped)
	if e == nil || e.name != "slug" {
		t.Errorf("lookup(/items/abc) = %v, want slug", e)
	}

	e, _ = root.lookup(routepath.Split("/items/42"), acceptTyped)
	if e == nil || e.name != "numeric" {
		t.Errorf("lookup(/items/42) = %v, want numeric", e)
	}

	e, _ = root.lookup(routepath.Split("/items/abc"), nil)
	if e == nil || e.name != "numeric" {
		t.Errorf("lookup without accept = %v, want numeric (first registered)", e)
	}
}

func TestNodeWalk(t *testing.T) {
	root := buildTree(t, "/", "/a", "/a/:b", "/c/**")

	var names []string
	root.walk(func(e *entry) { names = append(names, e.name) })

	if len(names) != 4 {
		t.Errorf("walk visited %d entries, want 4: %v", len(names), names)
	}
}
