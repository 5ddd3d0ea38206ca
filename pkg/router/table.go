package router

import "strings"

// Match is the result of testing a path against a route table.
// A match with a nil Route is the not-found state: it is a valid value,
// not an error.
type Match struct {
	// Path is the matched path, without query string.
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Params holds the captured parameters. It is never nil.
	Params Params

	// Route is the route that matched, or nil.
	Route *Route

	// Name is the table name of Route.
	Name string
}

// Found reports whether a route matched.
func (m Match) Found() bool { return m.Route != nil }

// Is reports whether m matched the named route.
func (m Match) Is(name string) bool { return m.Route != nil && m.Name == name }

// Entry is a named route in a Table.
type Entry struct {
	Name  string
	Route *Route
}

// Define compiles template into a named table entry.
func Define(name, template string) Entry {
	return Entry{Name: name, Route: Compile(template)}
}

// Table is an ordered set of named routes. Matching tests the routes in
// declaration order and the first one to accept the path wins, so a
// catch-all declared early shadows everything after it.
type Table struct {
	entries []Entry
	byName  map[string]*Route
}

// NewTable creates a table from entries in declaration order. When a name
// repeats, Lookup returns the first route with that name.
func NewTable(entries ...Entry) *Table {
	t := &Table{
		entries: append([]Entry(nil), entries...),
		byName:  make(map[string]*Route, len(entries)),
	}
	for _, e := range entries {
		if _, dup := t.byName[e.Name]; !dup {
			t.byName[e.Name] = e.Route
		}
	}
	return t
}

// Entries returns the entries in declaration order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Lookup returns the route with the given name.
func (t *Table) Lookup(name string) (*Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Match tests path against every route in order. The query string, if any,
// is split off before matching.
func (t *Table) Match(path string) Match {
	path, query := splitQuery(path)
	for _, e := range t.entries {
		if params, ok := e.Route.Match(path); ok {
			return Match{Path: path, Query: query, Params: params, Route: e.Route, Name: e.Name}
		}
	}
	return Match{Path: path, Query: query, Params: Params{}}
}

// splitQuery splits "path?query" into its parts.
func splitQuery(p string) (path, query string) {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		return p[:i], p[i+1:]
	}
	return p, ""
}
