// Package models loads model declarations into canonical schemas and
// derives their validation schemas.
//
// Loading is a one-shot, synchronous transformation performed once per
// model at registration time: mixin fields are collected first, then the
// model's own fields and relations, then the validation schema is built
// and ancestor exclusions are applied.
package models

import (
	"github.com/AirbornePM/ormar"
	"github.com/AirbornePM/ormar/schema/field"
	"github.com/AirbornePM/ormar/schema/relation"
)

// A Namespace is an ordered declaration set, the attribute-name-to-value
// mapping a model definition evaluates to. Non-declaration entries
// (constants, helper values) are carried through untouched; field and
// relation declarations are extracted and rewritten by PopulateDefaults.
type Namespace struct {
	names  []string
	values map[string]any
	legacy map[string]bool
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{values: make(map[string]any), legacy: make(map[string]bool)}
}

// Assign sets a namespace entry. Re-assigning an existing name replaces
// the value but keeps the original declaration position.
func (ns *Namespace) Assign(name string, v any) *Namespace {
	if _, ok := ns.values[name]; !ok {
		ns.names = append(ns.names, name)
	}
	ns.values[name] = v
	delete(ns.legacy, name)
	return ns
}

// Annotate declares a field through the legacy annotation style. The
// entry is folded into the same registry as Assign and only differs in
// being reported by Legacy.
//
// Deprecated: declare fields with Assign.
func (ns *Namespace) Annotate(name string, f ormar.Field) *Namespace {
	ns.Assign(name, f)
	ns.legacy[name] = true
	return ns
}

// Get returns the named entry.
func (ns *Namespace) Get(name string) (any, bool) {
	v, ok := ns.values[name]
	return v, ok
}

// Names returns the entry names in declaration order.
func (ns *Namespace) Names() []string {
	return ns.names
}

// Len returns the number of entries.
func (ns *Namespace) Len() int {
	return len(ns.names)
}

// Legacy reports whether the named entry was declared through the
// deprecated annotation style.
func (ns *Namespace) Legacy(name string) bool {
	return ns.legacy[name]
}

// A Declared pairs a namespace entry name with the extracted declaration
// descriptor. Exactly one of Field and Relation is set.
type Declared struct {
	Name     string
	Field    *field.Descriptor
	Relation *relation.Descriptor
}
