package router

import (
	"regexp"
	"strings"
)

// Route is a compiled path template. Routes are immutable.
type Route struct {
	path    string
	pattern *regexp.Regexp
	keys    []string
	parts   []part
}

// part is one piece of a template: literal text, a parameter or "*".
type part struct {
	text  string
	key   string
	isKey bool
}

// Compile turns a path template into a Route.
//
// The grammar is small: "*" matches any remaining characters, ":name"
// captures one path segment (everything up to the next "/"), and everything
// else matches literally. The whole path must match.
//
// Parameter names are not deduplicated; when a name repeats, the last
// capture wins.
func Compile(template string) *Route {
	var (
		sb    strings.Builder
		keys  []string
		parts []part
		lit   int
	)
	flush := func(end int) {
		if end > lit {
			sb.WriteString(regexp.QuoteMeta(template[lit:end]))
			parts = append(parts, part{text: template[lit:end]})
		}
	}

	sb.WriteByte('^')
	for i := 0; i < len(template); {
		switch template[i] {
		case '*':
			flush(i)
			sb.WriteString(".*")
			parts = append(parts, part{text: "*"})
			i++
			lit = i
		case ':':
			j := i + 1
			for j < len(template) && template[j] != '/' {
				j++
			}
			if j == i+1 {
				// A bare ":" is literal.
				i++
				continue
			}
			flush(i)
			key := template[i+1 : j]
			keys = append(keys, key)
			parts = append(parts, part{key: key, isKey: true})
			sb.WriteString("([^/]+)")
			i = j
			lit = i
		default:
			i++
		}
	}
	flush(len(template))
	sb.WriteByte('$')

	return &Route{
		path:    template,
		pattern: regexp.MustCompile(sb.String()),
		keys:    keys,
		parts:   parts,
	}
}

// Path returns the template the route was compiled from.
func (r *Route) Path() string { return r.path }

// Keys returns the parameter names in template order.
func (r *Route) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r *Route) String() string { return r.path }

// Match tests path against the route. On success the captured segments are
// returned by parameter name.
func (r *Route) Match(path string) (Params, bool) {
	m := r.pattern.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make(Params, len(r.keys))
	for i, key := range r.keys {
		params[key] = m[i+1]
	}
	return params, true
}

// Matches reports whether path matches the route.
func (r *Route) Matches(path string) bool {
	return r.pattern.MatchString(path)
}

// Build substitutes params into the template. Each ":name" token is
// replaced by the raw value, without escaping. Tokens with no value are
// left in place.
func (r *Route) Build(params Params) string {
	var sb strings.Builder
	for _, p := range r.parts {
		if !p.isKey {
			sb.WriteString(p.text)
			continue
		}
		if v, ok := params[p.key]; ok {
			sb.WriteString(v)
		} else {
			sb.WriteString(":" + p.key)
		}
	}
	return sb.String()
}
