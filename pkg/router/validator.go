package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/vroute/internal/errors"
)

// =============================================================================
// Route Validation
// =============================================================================

// validateConstraints reports params that share a position and a name but
// declare different type hints, e.g. "/users/:id:int" and
// "/users/:id:uuid/edit". Untyped params never conflict.
func validateConstraints(routes Routes) []error {
	type paramKey struct {
		prefix string
		name   string
	}
	type use struct {
		typ   string
		route string
	}

	byKey := make(map[paramKey][]use)
	var order []paramKey

	for _, e := range routes {
		var prefix strings.Builder
		for _, seg := range e.Route.pattern.segments {
			if seg.Kind == Param && seg.Type != "" {
				key := paramKey{prefix: prefix.String(), name: seg.Name}
				if _, ok := byKey[key]; !ok {
					order = append(order, key)
				}
				byKey[key] = append(byKey[key], use{typ: seg.Type, route: e.Name})
			}
			prefix.WriteByte('/')
			switch seg.Kind {
			case Literal:
				prefix.WriteString(seg.Text)
			case CatchAll:
				prefix.WriteString("**")
			default:
				prefix.WriteByte(':')
			}
		}
	}

	var errs []error
	for _, key := range order {
		uses := byKey[key]

		types := make([]string, 0, len(uses))
		names := make([]string, 0, len(uses))
		conflict := false
		for _, u := range uses {
			if u.typ != uses[0].typ {
				conflict = true
			}
			types = append(types, u.typ)
			names = append(names, u.route)
		}
		if !conflict {
			continue
		}

		prefix := key.prefix
		if prefix == "" {
			prefix = "/"
		}
		errs = append(errs, errors.New(codeConflictingTypes).
			WithPattern(prefix).
			WithDetail(fmt.Sprintf("Param %q is declared as %s by routes %s.",
				key.name, strings.Join(types, " vs "), strings.Join(names, ", "))).
			WithSuggestion("Use the same type hint for the param in every route, or rename one of them."))
	}
	return errs
}

// =============================================================================
// Route Specificity Sorting
// =============================================================================

// SortBySpecificity sorts route infos, most specific first. Ties keep their
// relative order.
//
// Order (most specific first):
//  1. Static routes (/users/profile)
//  2. Routes with typed params (/users/:id:int)
//  3. Routes with plain params or wildcards (/users/:id)
//  4. Catch-all routes (/users/**)
func SortBySpecificity(infos []RouteInfo) {
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Specificity > infos[j].Specificity
	})
}

// sortInfos puts infos in registration order and then applies
// SortBySpecificity, so equally specific routes stay in registration order.
func sortInfos(infos []RouteInfo, seqs []int) {
	idx := make([]int, len(infos))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return seqs[idx[a]] < seqs[idx[b]]
	})

	sorted := make([]RouteInfo, len(infos))
	for i, j := range idx {
		sorted[i] = infos[j]
	}
	copy(infos, sorted)
	SortBySpecificity(infos)
}

// calculateSpecificity returns a numeric score for route specificity.
// Higher scores = more specific = matched first.
func calculateSpecificity(p Pattern) int {
	if p.HasCatchAll() {
		score := 0
		for _, seg := range p.segments {
			if seg.Kind == Literal {
				score++
			}
		}
		return score
	}

	score := 1000 + len(p.segments)*100
	for _, seg := range p.segments {
		switch {
		case seg.Kind == Literal:
			score += 50
		case seg.Kind == Param && seg.Type != "" && seg.Type != "string":
			score += 20
		default:
			score += 10
		}
	}
	return score
}
