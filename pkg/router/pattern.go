package router

import (
	"fmt"
	"strings"
	"unicode"
)

// SegmentKind identifies how a pattern segment matches a path component.
type SegmentKind uint8

const (
	// Literal matches one component with exactly the same text.
	Literal SegmentKind = iota

	// Param matches one non-empty component and binds it by name.
	Param

	// Wildcard matches one non-empty component. Unnamed wildcards bind as
	// "_0", "_1", ... in order of appearance.
	Wildcard

	// CatchAll matches one or more trailing components, joined by "/".
	// An unnamed catch-all binds as "_".
	CatchAll
)

func (k SegmentKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Param:
		return "param"
	case Wildcard:
		return "wildcard"
	case CatchAll:
		return "catch-all"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Segment is one compiled component of a Pattern.
type Segment struct {
	Kind SegmentKind

	// Text is the literal text. Empty for dynamic segments.
	Text string

	// Name is the binding name for Param, Wildcard and CatchAll.
	Name string

	// Type is the optional hint from ":id:int". It never affects matching
	// unless the router is built WithStrictParams.
	Type string
}

// String renders the segment in canonical pattern syntax.
func (s Segment) String() string {
	switch s.Kind {
	case Param:
		if s.Type != "" {
			return ":" + s.Name + ":" + s.Type
		}
		return ":" + s.Name
	case Wildcard:
		if isGeneratedWildcardName(s.Name) {
			return "*"
		}
		return "*:" + s.Name
	case CatchAll:
		if s.Name == catchAllDefaultName {
			return "**"
		}
		return "**:" + s.Name
	default:
		return s.Text
	}
}

// dynamic reports whether the segment binds a value.
func (s Segment) dynamic() bool {
	return s.Kind != Literal
}

const catchAllDefaultName = "_"

// Pattern is a compiled route path. The zero value matches the root path.
// Patterns are immutable and safe to share.
type Pattern struct {
	raw      string
	segments []Segment
	names    []string
}

// Compile parses a route path into a Pattern.
//
// Syntax, per "/"-separated component (empty components are ignored):
//
//	users        literal
//	:id          named parameter, ":id:int" adds a type hint
//	*            unnamed wildcard (one component)
//	*:name       named wildcard
//	**           unnamed catch-all (remaining components)
//	**:name      named catch-all
//	*name        named catch-all
//
// Compile fails with a *PatternError when a catch-all is not the final
// segment, when a name is bound twice, or when a name is empty or malformed.
// Names of the form "_0", "_1", ... are reserved for unnamed wildcards.
func Compile(path string) (Pattern, error) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return Pattern{}, newPatternError(path, path[i:], codeInvalidPattern,
			"patterns match paths only and may not contain a query or fragment")
	}

	p := Pattern{raw: path}
	seen := make(map[string]bool)
	unnamed := 0

	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}

		if n := len(p.segments); n > 0 && p.segments[n-1].Kind == CatchAll {
			return Pattern{}, newPatternError(path, part, codeCatchAllNotLast,
				fmt.Sprintf("segment %q follows catch-all %q", part, p.segments[n-1].String()))
		}

		seg, err := parseSegment(part, &unnamed)
		if err != nil {
			return Pattern{}, newPatternError(path, part, err.code, err.reason)
		}

		if seg.dynamic() {
			if seen[seg.Name] {
				return Pattern{}, newPatternError(path, part, codeDuplicateName,
					fmt.Sprintf("name %q is bound more than once", seg.Name))
			}
			seen[seg.Name] = true
			p.names = append(p.names, seg.Name)
		}

		p.segments = append(p.segments, seg)
	}

	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(path string) Pattern {
	p, err := Compile(path)
	if err != nil {
		panic(err)
	}
	return p
}

type segmentError struct {
	code   string
	reason string
}

func parseSegment(part string, unnamed *int) (Segment, *segmentError) {
	switch {
	case part == "**":
		return Segment{Kind: CatchAll, Name: catchAllDefaultName}, nil

	case strings.HasPrefix(part, "**:"):
		return namedSegment(CatchAll, part[3:])

	case part == "*":
		name := fmt.Sprintf("_%d", *unnamed)
		*unnamed++
		return Segment{Kind: Wildcard, Name: name}, nil

	case strings.HasPrefix(part, "*:"):
		return namedSegment(Wildcard, part[2:])

	case strings.HasPrefix(part, "*"):
		return namedSegment(CatchAll, part[1:])

	case strings.HasPrefix(part, ":"):
		name, typ := parseParamSegment(part)
		seg, err := namedSegment(Param, name)
		seg.Type = typ
		return seg, err

	default:
		return Segment{Kind: Literal, Text: part}, nil
	}
}

func namedSegment(kind SegmentKind, name string) (Segment, *segmentError) {
	if name == "" {
		return Segment{}, &segmentError{code: codeEmptyName, reason: kind.String() + " has no name"}
	}
	if !validName(name) {
		return Segment{}, &segmentError{
			code:   codeInvalidName,
			reason: fmt.Sprintf("name %q may only contain letters, digits, '_' and '-'", name),
		}
	}
	if isGeneratedWildcardName(name) {
		return Segment{}, &segmentError{
			code:   codeInvalidName,
			reason: fmt.Sprintf("name %q is reserved for unnamed wildcards", name),
		}
	}
	return Segment{Kind: kind, Name: name}, nil
}

// parseParamSegment extracts name and type from a parameter segment.
// Input: ":id" or ":id:int" -> name="id", type="" or "int"
func parseParamSegment(seg string) (name, paramType string) {
	seg = seg[1:]
	if idx := strings.Index(seg, ":"); idx != -1 {
		return seg[:idx], seg[idx+1:]
	}
	return seg, ""
}

func validName(name string) bool {
	for _, r := range name {
		if r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isGeneratedWildcardName(name string) bool {
	if len(name) < 2 || name[0] != '_' {
		return false
	}
	for _, r := range name[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Raw returns the path the pattern was compiled from.
func (p Pattern) Raw() string {
	return p.raw
}

// Segments returns a copy of the compiled segments.
func (p Pattern) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// ParamNames returns the bound names in path order.
func (p Pattern) ParamNames() []string {
	return append([]string(nil), p.names...)
}

// HasCatchAll reports whether the final segment is a catch-all.
func (p Pattern) HasCatchAll() bool {
	n := len(p.segments)
	return n > 0 && p.segments[n-1].Kind == CatchAll
}

// String renders the canonical form. Two patterns with equal String values
// are identical registrations.
func (p Pattern) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// Shape renders the structure without names or type hints, e.g.
// "/users/:/posts/**". Patterns with the same shape compete for the same
// paths.
func (p Pattern) Shape() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		switch seg.Kind {
		case Literal:
			sb.WriteString(seg.Text)
		case Param, Wildcard:
			sb.WriteByte(':')
		case CatchAll:
			sb.WriteString("**")
		}
	}
	return sb.String()
}

// bind zips captured values with the pattern's names.
func (p Pattern) bind(values []string) map[string]string {
	params := make(map[string]string, len(p.names))
	for i, name := range p.names {
		if i < len(values) {
			params[name] = values[i]
		}
	}
	return params
}

// checkTypes validates captured values against the param type hints.
func (p Pattern) checkTypes(values []string) error {
	i := 0
	for _, seg := range p.segments {
		if !seg.dynamic() {
			continue
		}
		if i >= len(values) {
			break
		}
		if seg.Kind == Param && seg.Type != "" {
			if err := ValidateParam(values[i], seg.Type); err != nil {
				return fmt.Errorf("param %q: %w", seg.Name, err)
			}
		}
		i++
	}
	return nil
}
