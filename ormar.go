// Package ormar provides the building blocks for declaring database-backed
// models whose validation schemas are derived from the declarations.
//
// A model is a Go type that embeds ormar.Schema and overrides the methods
// it needs:
//
//	type User struct{ ormar.Schema }
//
//	func (User) Fields() []ormar.Field {
//	    return []ormar.Field{
//	        field.Int("id").PrimaryKey(),
//	        field.String("email").MaxLen(255).Unique(),
//	        field.String("name").MaxLen(100).Nullable(),
//	    }
//	}
//
//	func (User) Relations() []ormar.Relation {
//	    return []ormar.Relation{
//	        relation.ManyToMany("groups", Group{}).Through("memberships", Membership{}),
//	    }
//	}
//
// The models package loads a declared model into its canonical schema and
// builds the matching validation schema. See models.Load.
package ormar

import (
	"github.com/AirbornePM/ormar/schema/field"
	"github.com/AirbornePM/ormar/schema/relation"
)

type (
	// Model is the interface that all model definitions implement.
	// Embedding ormar.Schema picks up the default implementations.
	Model interface {
		// Fields returns the column field declarations of the model.
		Fields() []Field

		// Relations returns the relation declarations of the model.
		Relations() []Relation

		// Mixin returns the reusable field sets mixed into the model.
		// Mixed-in fields precede the model's own fields.
		Mixin() []Mixin

		// Config returns an optional per-model configuration.
		Config() Config
	}

	// Field is a declared column field. The builders in schema/field
	// implement this interface.
	Field interface {
		Descriptor() *field.Descriptor
	}

	// Relation is a declared relation to another model. The builders in
	// schema/relation implement this interface.
	Relation interface {
		Descriptor() *relation.Descriptor
	}

	// Mixin is a reusable set of fields and relations that can be embedded
	// in multiple model definitions.
	Mixin interface {
		Fields() []Field
		Relations() []Relation
	}
)

// Config holds per-model configuration returned from Model.Config.
type Config struct {
	// Table overrides the derived table name.
	Table string `json:"table,omitempty"`

	// ExcludeParentFields lists mixed-in field names that must be removed
	// from the model's validation schema after loading.
	ExcludeParentFields []string `json:"exclude_parent_fields,omitempty"`

	// Abstract marks the model as a base definition that is never loaded
	// on its own.
	Abstract bool `json:"abstract,omitempty"`
}

// Schema is the default implementation of the Model interface.
// It should be embedded in all model definitions.
type Schema struct{}

// Fields of the schema. Overridden by models that declare fields.
func (Schema) Fields() []Field { return nil }

// Relations of the schema.
func (Schema) Relations() []Relation { return nil }

// Mixin of the schema.
func (Schema) Mixin() []Mixin { return nil }

// Config of the schema.
func (Schema) Config() Config { return Config{} }

// schema must implement the Model interface.
var _ Model = (*Schema)(nil)
