package classify

import (
	"regexp"
	"strings"

	"github.com/verdictlab/verdict/hierarchy"
)

// Rule is one configured matcher: a target kind, an optional SQLSTATE code,
// an optional message pattern, and the action to report on a match. Rules are
// immutable once built.
type Rule struct {
	action  Action
	target  *hierarchy.Kind
	code    string
	pattern *regexp.Regexp
}

// Action returns the configured outcome, always Retry or Throw.
func (r Rule) Action() Action { return r.action }

// Target returns the kind the rule applies to.
func (r Rule) Target() *hierarchy.Kind { return r.target }

// Code returns the required SQLSTATE code, or "" when none is configured.
func (r Rule) Code() string { return r.code }

// Pattern returns the compiled message pattern, or nil when none is configured.
func (r Rule) Pattern() *regexp.Regexp { return r.pattern }

// AppliesTo reports whether the rule covers kind, i.e. kind is the rule's
// target or a descendant of it.
func (r Rule) AppliesTo(kind *hierarchy.Kind) bool {
	return kind.Is(r.target)
}

// Decide matches the rule against one error of the given kind and message.
// It returns Ignore unless every configured constraint holds: the kind must
// be covered by the target, a configured code must equal the error's SQLSTATE
// case-insensitively, and a configured pattern must find a match in msg. An
// error without the code capability, or an empty message where a pattern is
// configured, falls through to Ignore rather than failing.
func (r Rule) Decide(kind *hierarchy.Kind, err error, msg string) Action {
	if !r.AppliesTo(kind) {
		return Ignore
	}
	if r.code != "" {
		st, ok := err.(hierarchy.SQLStater)
		if !ok || !strings.EqualFold(r.code, st.SQLState()) {
			return Ignore
		}
	}
	if r.pattern != nil {
		if msg == "" || !r.pattern.MatchString(msg) {
			return Ignore
		}
	}
	return r.action
}

// String renders the rule in its configuration form, e.g.
// "sqlState.40001;deadline=RETRY" or "net.timeout=THROW".
func (r Rule) String() string {
	var sb strings.Builder
	if r.code != "" {
		sb.WriteString(sqlStatePrefix)
		sb.WriteString(r.code)
	} else {
		sb.WriteString(r.target.Name())
	}
	if r.pattern != nil {
		sb.WriteByte(';')
		sb.WriteString(r.pattern.String())
	}
	sb.WriteByte('=')
	sb.WriteString(r.action.String())
	return sb.String()
}

// compareRules defines rule precedence. Earlier rules win:
//
//  1. a more specific target sorts before a less specific one, with
//     unrelated targets ordered deterministically by name;
//  2. then on code, rules without a code sorting last;
//  3. then on pattern source, rules without a pattern sorting last;
//  4. then on action name.
//
// This lets a broad rule ("retry anything under sql") be overridden by a
// narrower one ("but throw on this particular code") regardless of the order
// entries appear in the configuration.
func compareRules(a, b Rule) int {
	if c := compareKinds(a.target, b.target); c != 0 {
		return c
	}
	if c := compareOptional(a.code, b.code); c != 0 {
		return c
	}
	if c := compareOptional(patternSource(a), patternSource(b)); c != 0 {
		return c
	}
	return strings.Compare(a.action.String(), b.action.String())
}

// compareKinds is a total order over kinds that sorts every descendant
// before its ancestors. It compares root-to-kind name paths element-wise:
// unrelated kinds order by the name of the first ancestor where their
// paths diverge, and when one path prefixes the other the deeper kind
// sorts first. Comparing the kinds' own names instead would not be
// transitive together with the descendant-first constraint (a child named
// "z" of a parent named "a" must still precede it), so sorting could then
// leave a broad rule ahead of a narrower one.
func compareKinds(a, b *hierarchy.Kind) int {
	if a == b {
		return 0
	}
	pa, pb := kindPath(a), kindPath(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := strings.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(pa) > len(pb):
		return -1
	case len(pa) < len(pb):
		return 1
	default:
		return 0
	}
}

// kindPath returns the names along the path from the root down to k.
func kindPath(k *hierarchy.Kind) []string {
	var path []string
	for n := k; n != nil; n = n.Parent() {
		path = append(path, n.Name())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// compareOptional orders present values naturally and absent ("") values last.
func compareOptional(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	default:
		return strings.Compare(a, b)
	}
}

func patternSource(r Rule) string {
	if r.pattern == nil {
		return ""
	}
	return r.pattern.String()
}
