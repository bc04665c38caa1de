// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate keeps user content readable in every supported locale.
// Writes fan out machine translations of the source text; reads resolve the
// stored translation for the viewer's locale and fall back to the source
// text when none exists.
package translate

// Field is one named piece of translatable text.
type Field struct {
	Name  string
	Value string
}

// FieldSet is an ordered list of an entity's translatable fields. Events and
// forums carry three fields, comments and chat messages a single one; the
// order is fixed per entity kind and preserved through translation.
type FieldSet []Field

// Values returns the field values in declaration order.
func (fs FieldSet) Values() []string {
	vals := make([]string, len(fs))
	for i, f := range fs {
		vals[i] = f.Value
	}
	return vals
}

// WithValues returns a copy of fs with the values replaced in order.
// The lengths must match.
func (fs FieldSet) WithValues(vals []string) FieldSet {
	out := make(FieldSet, len(fs))
	for i, f := range fs {
		out[i] = Field{Name: f.Name, Value: vals[i]}
	}
	return out
}
