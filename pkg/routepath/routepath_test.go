package routepath

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"/", nil},
		{"//", nil},
		{"/users", []string{"users"}},
		{"users/", []string{"users"}},
		{"/users//42/", []string{"users", "42"}},
		{"/files/a%2Fb/c", []string{"files", "a%2Fb", "c"}},
	}

	for _, tt := range tests {
		got := Split(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join(nil); got != "/" {
		t.Errorf("Join(nil) = %q, want /", got)
	}
	if got := Join([]string{"a", "b"}); got != "/a/b" {
		t.Errorf("Join([a b]) = %q, want /a/b", got)
	}
}

func TestSplitPathAndQuery(t *testing.T) {
	tests := []struct {
		input     string
		wantPath  string
		wantQuery string
	}{
		{"/search", "/search", ""},
		{"/search?q=go", "/search", "q=go"},
		{"/search?q=go&tag=a&tag=b", "/search", "q=go&tag=a&tag=b"},
		{"/search?", "/search", ""},
		{"/docs#intro", "/docs", ""},
		{"/docs?v=2#intro", "/docs", "v=2"},
	}

	for _, tt := range tests {
		path, query := SplitPathAndQuery(tt.input)
		if path != tt.wantPath || query != tt.wantQuery {
			t.Errorf("SplitPathAndQuery(%q) = (%q, %q), want (%q, %q)",
				tt.input, path, query, tt.wantPath, tt.wantQuery)
		}
	}
}

func TestCanonicalizePath(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPath    string
		wantQuery   string
		wantChanged bool
	}{
		{name: "root", input: "/", wantPath: "/"},
		{name: "empty", input: "", wantPath: "/", wantChanged: true},
		{name: "no leading slash", input: "about", wantPath: "/about", wantChanged: true},
		{name: "trailing slash", input: "/about/", wantPath: "/about", wantChanged: true},
		{name: "collapse slashes", input: "/blog//post", wantPath: "/blog/post", wantChanged: true},
		{name: "single dot", input: "/blog/./post", wantPath: "/blog/post", wantChanged: true},
		{name: "double dot", input: "/blog/posts/../other", wantPath: "/blog/other", wantChanged: true},
		{name: "double dot to root", input: "/blog/../", wantPath: "/", wantChanged: true},
		{name: "query preserved", input: "/search?q=a//b", wantPath: "/search", wantQuery: "q=a//b"},
		{name: "escapes kept", input: "/files/a%20b", wantPath: "/files/a%20b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalizePath(tt.input)
			if err != nil {
				t.Fatalf("CanonicalizePath(%q) error: %v", tt.input, err)
			}
			if got.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", got.Path, tt.wantPath)
			}
			if got.Query != tt.wantQuery {
				t.Errorf("Query = %q, want %q", got.Query, tt.wantQuery)
			}
			if got.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v", got.Changed, tt.wantChanged)
			}
		})
	}
}

func TestCanonicalizePathErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"absolute url", "https://example.com/x", ErrInvalidPath},
		{"backslash", "/a\\b", ErrBackslashInPath},
		{"literal nul", "/a\x00b", ErrNullByteInPath},
		{"encoded nul", "/a%00b", ErrNullByteInPath},
		{"bad escape", "/a%GGb", ErrInvalidPercentEscape},
		{"truncated escape", "/a%2", ErrInvalidPercentEscape},
		{"escapes root", "/../secret", ErrPathEscapesRoot},
		{"escapes root later", "/a/../../b", ErrPathEscapesRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CanonicalizePath(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanonicalizePath(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
