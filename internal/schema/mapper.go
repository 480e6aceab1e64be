package schema

import (
	"strings"
)

// Column is a source column chosen for a signal
type Column struct {
	Index int
	Name  string
}

// Mapping records which source column, if any, backs each signal in one file
type Mapping struct {
	columns map[Signal]Column
}

// Detect maps the header of a raw file using DefaultAliases.
func Detect(header []string) Mapping {
	return DefaultAliases.Detect(header)
}

// Detect maps the header of a raw file against the table.
// For each rule the first alias present (case-insensitive) wins. Among
// names that differ only in case the last one is used; a repeated exact
// name keeps its first occurrence.
func (t AliasTable) Detect(header []string) Mapping {
	exact := make(map[string]struct{}, len(header))
	byName := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := exact[name]; dup {
			continue
		}
		exact[name] = struct{}{}
		byName[strings.ToLower(name)] = i
	}

	m := Mapping{columns: make(map[Signal]Column, len(t))}
	for _, rule := range t {
		for _, alias := range rule.Aliases {
			if idx, ok := byName[strings.ToLower(alias)]; ok {
				m.columns[rule.Signal] = Column{Index: idx, Name: header[idx]}
				break
			}
		}
	}
	return m
}

// Column returns the source column mapped to s.
func (m Mapping) Column(s Signal) (Column, bool) {
	c, ok := m.columns[s]
	return c, ok
}

// Has reports whether s was detected.
func (m Mapping) Has(s Signal) bool {
	_, ok := m.columns[s]
	return ok
}

// Detected returns the detected signals in Signals order.
func (m Mapping) Detected() []Signal {
	var out []Signal
	for _, s := range Signals {
		if m.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Absent returns the signals with no matching column, in Signals order.
func (m Mapping) Absent() []Signal {
	var out []Signal
	for _, s := range Signals {
		if !m.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// SourceNames returns signal -> source column name for every detected signal.
func (m Mapping) SourceNames() map[string]string {
	out := make(map[string]string, len(m.columns))
	for s, c := range m.columns {
		out[string(s)] = c.Name
	}
	return out
}
