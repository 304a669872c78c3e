package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "pattern error",
			code:    "E101",
			wantMsg: "Catch-all segment must be the last segment",
			wantCat: CategoryPattern,
		},
		{
			name:    "build error",
			code:    "E120",
			wantMsg: "Router construction failed",
			wantCat: CategoryBuild,
		},
		{
			name:    "query error",
			code:    "E141",
			wantMsg: "Query schema returned a deferred result",
			wantCat: CategoryQuery,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryConfig, "manifest %q not found", "vroute.json")
	if err.Message != `manifest "vroute.json" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `manifest "vroute.json" not found`)
	}
	if err.Category != CategoryConfig {
		t.Errorf("Category = %q, want %q", err.Category, CategoryConfig)
	}
}

func TestRouteError_Error(t *testing.T) {
	err := New("E102")
	if got, want := err.Error(), "E102: Duplicate parameter name"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.WithPattern("/a/:id/:id")
	if got, want := err.Error(), "E102: Duplicate parameter name (/a/:id/:id)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &RouteError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestRouteError_Builders(t *testing.T) {
	err := New("E101").
		WithPattern("/files/**:rest/edit").
		WithLocation("vroute.yaml", "files.edit").
		WithSuggestion("Move the catch-all to the end").
		WithExample("/files/edit/**:rest").
		WithDetail("Custom detail")

	if err.Pattern != "/files/**:rest/edit" {
		t.Errorf("Pattern = %q", err.Pattern)
	}
	if err.Location == nil || err.Location.File != "vroute.yaml" || err.Location.Route != "files.edit" {
		t.Errorf("Location = %+v", err.Location)
	}
	if err.Suggestion != "Move the catch-all to the end" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if err.Example != "/files/edit/**:rest" {
		t.Errorf("Example = %q", err.Example)
	}
	if err.Detail != "Custom detail" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestRouteError_Wrap(t *testing.T) {
	inner := New("E102")
	outer := New("E120").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}

	var re *RouteError
	if !stderrors.As(fmt.Errorf("build: %w", outer), &re) || re != outer {
		t.Error("errors.As should find the outer RouteError")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	re := New("E101")
	if FromError(re, "E120") != re {
		t.Error("FromError should return RouteError as-is")
	}

	stdErr := &testError{msg: "test error"}
	result := FromError(stdErr, "E161")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if result.Code != "E161" {
		t.Errorf("Code = %q, want E161", result.Code)
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{name: "nil location", loc: nil, want: ""},
		{name: "with route", loc: &Location{File: "vroute.json", Route: "users.show"}, want: "vroute.json#users.show"},
		{name: "file only", loc: &Location{File: "vroute.json"}, want: "vroute.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer func() { colorEnabled = true }()

	err := New("E101").
		WithPattern("/files/**:rest/edit").
		WithLocation("vroute.yaml", "files.edit").
		WithSuggestion("Move the catch-all to the end").
		WithExample("/files/edit/**:rest").
		Wrap(stderrors.New("segment 3"))

	formatted := err.Format()

	for _, want := range []string{
		"E101",
		"Catch-all segment must be the last segment",
		"/files/**:rest/edit",
		"vroute.yaml#files.edit",
		"Cause: segment 3",
		"Hint:",
		"Example:",
		"Learn more:",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E102").WithPattern("/a/:id/:id").WithLocation("vroute.json", "")

	want := "vroute.json: E102: Duplicate parameter name (/a/:id/:id)"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("GetAllCodes() should return codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("E140")
	if !ok {
		t.Fatal("E140 should exist")
	}
	if template.Message != "Invalid query parameters" {
		t.Errorf("Template message = %q", template.Message)
	}

	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryBuild,
		Message:  "Custom test error",
		Detail:   "This is a test error",
		DocURL:   "https://test.dev/E999",
	})
	defer delete(registry, "E999")

	err := New("E999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColors(t *testing.T) {
	defer func() { colorEnabled = true }()

	colorEnabled = true
	if got := paint(styleError, "test"); !strings.HasPrefix(got, "\033[") || !strings.HasSuffix(got, styleReset) {
		t.Errorf("paint() with colors = %q", got)
	}
	if !strings.Contains(New("E101").Format(), "\033[") {
		t.Error("Format() should contain ANSI codes when colors are enabled")
	}

	DisableColors()
	if got := paint(styleError, "test"); got != "test" {
		t.Errorf("paint() without colors = %q, want %q", got, "test")
	}
	if strings.Contains(New("E101").Format(), "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}
