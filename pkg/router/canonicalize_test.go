package router

import (
	stderrors "errors"
	"testing"
)

func TestCanonicalizePathReexport(t *testing.T) {
	res, err := CanonicalizePath("/a/./b/../c?x=1")
	if err != nil {
		t.Fatalf("CanonicalizePath() error: %v", err)
	}
	if res.Path != "/a/c" || res.Query != "x=1" || !res.Changed {
		t.Errorf("CanonicalizePath() = %+v", res)
	}

	if _, err := CanonicalizePath("/../x"); !stderrors.Is(err, ErrPathEscapesRoot) {
		t.Errorf("error = %v, want ErrPathEscapesRoot", err)
	}
	if _, err := CanonicalizePath("/a\\b"); !stderrors.Is(err, ErrBackslashInPath) {
		t.Errorf("error = %v, want ErrBackslashInPath", err)
	}
}

func TestSplitPathAndQueryReexport(t *testing.T) {
	path, query := SplitPathAndQuery("/search?q=go")
	if path != "/search" || query != "q=go" {
		t.Errorf("SplitPathAndQuery() = %q, %q", path, query)
	}
}
