// Package relation provides fluent builders for declaring relations
// between models.
//
// Two relation kinds are supported:
//
//	// Many-to-One: each Post belongs to one User.
//	relation.ForeignKey("author", User{})
//
//	// Many-to-Many through an explicit junction model.
//	relation.ManyToMany("groups", Group{}).Through("memberships", Membership{})
//
// A many-to-many relation without an explicit Through gets a synthesized
// junction model at load time, named after the two related models.
//
// The reverse accessor on the target model is derived from the declaring
// model name unless overridden:
//
//	relation.ForeignKey("author", User{}).RelatedName("posts")
package relation

import "reflect"

// A Kind distinguishes relation declarations.
type Kind uint8

// Relation kinds.
const (
	KindForeignKey Kind = iota + 1
	KindManyToMany
)

// String returns the kind name used in serialized schemas.
func (k Kind) String() string {
	switch k {
	case KindForeignKey:
		return "foreign_key"
	case KindManyToMany:
		return "many_to_many"
	default:
		return "invalid"
	}
}

// Referential actions for foreign keys.
const (
	NoAction   = "NO ACTION"
	Restrict   = "RESTRICT"
	Cascade    = "CASCADE"
	SetNull    = "SET NULL"
	SetDefault = "SET DEFAULT"
)

// Through identifies the junction model of a many-to-many relation.
type Through struct {
	// Name is the relation accessor exposed for the junction rows.
	Name string `json:"name,omitempty"`

	// Type is the junction model type name.
	Type string `json:"type,omitempty"`
}

// A Descriptor for relation configuration.
type Descriptor struct {
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type,omitempty"`
	Kind        Kind     `json:"kind,omitempty"`
	Nullable    bool     `json:"nullable,omitempty"`
	RelatedName string   `json:"related_name,omitempty"`
	Through     *Through `json:"through,omitempty"`
	OnDelete    string   `json:"on_delete,omitempty"`
	OnUpdate    string   `json:"on_update,omitempty"`
	SkipReverse bool     `json:"skip_reverse,omitempty"`
	Comment     string   `json:"comment,omitempty"`
	Err         error    `json:"-"`
}

// ForeignKey returns a new many-to-one relation with the given accessor
// name, targeting the model declared by target.
func ForeignKey(name string, target any) *fkBuilder {
	return &fkBuilder{desc: &Descriptor{
		Name: name,
		Type: typeName(target),
		Kind: KindForeignKey,
	}}
}

// fkBuilder is the builder for foreign key relations.
type fkBuilder struct {
	desc *Descriptor
}

// Nullable makes the relation optional; the foreign key column is nullable.
func (b *fkBuilder) Nullable() *fkBuilder {
	b.desc.Nullable = true
	return b
}

// RelatedName overrides the reverse accessor name on the target model.
func (b *fkBuilder) RelatedName(name string) *fkBuilder {
	b.desc.RelatedName = name
	return b
}

// SkipReverse suppresses the reverse accessor on the target model.
func (b *fkBuilder) SkipReverse() *fkBuilder {
	b.desc.SkipReverse = true
	return b
}

// OnDelete sets the referential action applied on target row deletion.
func (b *fkBuilder) OnDelete(action string) *fkBuilder {
	b.desc.OnDelete = action
	return b
}

// OnUpdate sets the referential action applied on target key update.
func (b *fkBuilder) OnUpdate(action string) *fkBuilder {
	b.desc.OnUpdate = action
	return b
}

// Comment sets the relation comment.
func (b *fkBuilder) Comment(c string) *fkBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the ormar.Relation interface by returning its
// descriptor.
func (b *fkBuilder) Descriptor() *Descriptor {
	return b.desc
}

// ManyToMany returns a new many-to-many relation with the given accessor
// name, targeting the model declared by target.
func ManyToMany(name string, target any) *m2mBuilder {
	return &m2mBuilder{desc: &Descriptor{
		Name: name,
		Type: typeName(target),
		Kind: KindManyToMany,
	}}
}

// m2mBuilder is the builder for many-to-many relations.
type m2mBuilder struct {
	desc *Descriptor
}

// Through sets the junction model of the relation, exposed under the
// given accessor name.
func (b *m2mBuilder) Through(name string, model any) *m2mBuilder {
	b.desc.Through = &Through{Name: name, Type: typeName(model)}
	return b
}

// RelatedName overrides the reverse accessor name on the target model.
func (b *m2mBuilder) RelatedName(name string) *m2mBuilder {
	b.desc.RelatedName = name
	return b
}

// SkipReverse suppresses the reverse accessor on the target model.
func (b *m2mBuilder) SkipReverse() *m2mBuilder {
	b.desc.SkipReverse = true
	return b
}

// Comment sets the relation comment.
func (b *m2mBuilder) Comment(c string) *m2mBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the ormar.Relation interface by returning its
// descriptor.
func (b *m2mBuilder) Descriptor() *Descriptor {
	return b.desc
}

// typeName returns the model type name behind v, unwrapping pointers.
func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
