package schema

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchSchema = `{
	"type": "object",
	"properties": {
		"q": {"type": "string", "minLength": 1},
		"page": {"type": "integer", "minimum": 1},
		"ratio": {"type": "number"},
		"draft": {"type": "boolean"},
		"tag": {"type": "array", "items": {"type": "string"}},
		"ids": {"type": "array", "items": {"type": "integer"}}
	},
	"required": ["q"],
	"additionalProperties": false
}`

func TestJSON_CompileErrors(t *testing.T) {
	t.Parallel()

	_, err := JSON(`{not json`)
	require.Error(t, err)

	_, err = JSON(`{"type": 12}`)
	require.Error(t, err)

	assert.Panics(t, func() { MustJSON(`{"type": 12}`) })
}

func TestJSON_Validate(t *testing.T) {
	t.Parallel()

	s := MustJSON(searchSchema)
	assert.Equal(t, searchSchema, s.Source())

	tests := []struct {
		name      string
		query     url.Values
		wantOK    bool
		wantValue map[string]any
	}{
		{
			name:      "string only",
			query:     url.Values{"q": {"x"}},
			wantOK:    true,
			wantValue: map[string]any{"q": "x"},
		},
		{
			name:   "coerces scalars",
			query:  url.Values{"q": {"x"}, "page": {"2"}, "ratio": {"0.5"}, "draft": {"true"}},
			wantOK: true,
			wantValue: map[string]any{
				"q": "x", "page": int64(2), "ratio": 0.5, "draft": true,
			},
		},
		{
			name:   "single value promoted to array",
			query:  url.Values{"q": {"x"}, "tag": {"go"}},
			wantOK: true,
			wantValue: map[string]any{
				"q": "x", "tag": []any{"go"},
			},
		},
		{
			name:   "repeated values coerced per item",
			query:  url.Values{"q": {"x"}, "ids": {"1", "2"}},
			wantOK: true,
			wantValue: map[string]any{
				"q": "x", "ids": []any{int64(1), int64(2)},
			},
		},
		{name: "missing required", query: url.Values{}, wantOK: false},
		{name: "nil query", query: nil, wantOK: false},
		{name: "unknown key", query: url.Values{"q": {"x"}, "bad": {"1"}}, wantOK: false},
		{name: "uncoercible integer", query: url.Values{"q": {"x"}, "page": {"two"}}, wantOK: false},
		{name: "below minimum", query: url.Values{"q": {"x"}, "page": {"0"}}, wantOK: false},
		{name: "repeated scalar", query: url.Values{"q": {"x", "y"}}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := s.Validate(tt.query)
			assert.Equal(t, tt.wantOK, out.OK(), "issues: %v", out.Messages())
			if tt.wantOK {
				assert.Equal(t, tt.wantValue, out.Value)
				assert.Empty(t, out.Issues)
			} else {
				assert.Nil(t, out.Value)
				assert.NotEmpty(t, out.Issues)
			}
		})
	}
}

func TestJSON_IssuePaths(t *testing.T) {
	t.Parallel()

	s := MustJSON(searchSchema)
	out := s.Validate(url.Values{"q": {"x"}, "page": {"0"}})
	require.False(t, out.OK())

	var found bool
	for _, issue := range out.Issues {
		if len(issue.Path) == 1 && issue.Path[0] == "page" {
			found = true
			assert.NotEmpty(t, issue.Message)
		}
	}
	assert.True(t, found, "expected an issue located at page, got %v", out.Issues)
}

func TestJSON_RefProperties(t *testing.T) {
	t.Parallel()

	s := MustJSON(`{
		"type": "object",
		"$defs": {"count": {"type": "integer"}},
		"properties": {"limit": {"$ref": "#/$defs/count"}}
	}`)

	out := s.Validate(url.Values{"limit": {"10"}})
	require.True(t, out.OK(), "issues: %v", out.Messages())
	assert.Equal(t, map[string]any{"limit": int64(10)}, out.Value)
}

func TestJSON_NumericCoercionIsDecimal(t *testing.T) {
	t.Parallel()

	s := MustJSON(`{
		"type": "object",
		"properties": {
			"n": {"type": "integer"},
			"f": {"type": "number"}
		}
	}`)

	tests := []struct {
		name   string
		query  url.Values
		wantOK bool
		want   any
	}{
		{name: "leading zero is decimal", query: url.Values{"n": {"010"}}, wantOK: true, want: int64(10)},
		{name: "signed", query: url.Values{"n": {"-7"}}, wantOK: true, want: int64(-7)},
		{name: "hex prefix", query: url.Values{"n": {"0x10"}}},
		{name: "binary prefix", query: url.Values{"n": {"0b11"}}},
		{name: "octal prefix", query: url.Values{"n": {"0o17"}}},
		{name: "digit separator", query: url.Values{"n": {"1_000"}}},
		{name: "float exponent", query: url.Values{"f": {"1e3"}}, wantOK: true, want: float64(1000)},
		{name: "float leading zero", query: url.Values{"f": {"007.5"}}, wantOK: true, want: 7.5},
		{name: "hex float", query: url.Values{"f": {"0x1p4"}}},
		{name: "float separator", query: url.Values{"f": {"1_0.5"}}},
		{name: "infinity", query: url.Values{"f": {"Inf"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := s.Validate(tt.query)
			require.Equal(t, tt.wantOK, out.OK(), "issues: %v", out.Messages())
			if !tt.wantOK {
				assert.NotEmpty(t, out.Issues)
				return
			}
			value := out.Value.(map[string]any)
			for key := range tt.query {
				assert.Equal(t, tt.want, value[key])
			}
		})
	}
}

func TestJSON_RootRef(t *testing.T) {
	t.Parallel()

	s := MustJSON(`{
		"$ref": "#/$defs/Q",
		"$defs": {
			"Q": {"type": "object", "properties": {"page": {"type": "integer", "minimum": 1}}}
		}
	}`)

	out := s.Validate(url.Values{"page": {"3"}})
	require.True(t, out.OK(), "issues: %v", out.Messages())
	assert.Equal(t, map[string]any{"page": int64(3)}, out.Value)

	out = s.Validate(url.Values{"page": {"0"}})
	assert.False(t, out.OK())
}

func TestJSON_AllOfProperties(t *testing.T) {
	t.Parallel()

	s := MustJSON(`{
		"$defs": {
			"paging": {"properties": {"page": {"type": "integer"}}}
		},
		"allOf": [
			{"$ref": "#/$defs/paging"},
			{"properties": {"draft": {"type": "boolean"}}}
		]
	}`)

	out := s.Validate(url.Values{"page": {"2"}, "draft": {"false"}})
	require.True(t, out.OK(), "issues: %v", out.Messages())
	assert.Equal(t, map[string]any{"page": int64(2), "draft": false}, out.Value)
}
