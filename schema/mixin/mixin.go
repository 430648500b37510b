// Package mixin provides the base mixin implementation for model schemas.
//
// A mixin is a reusable set of fields and relations that can be embedded
// in multiple model definitions. Mixed-in fields precede the model's own
// fields, and a model's configuration can exclude individual mixed-in
// fields from its validation schema.
//
// To create a custom mixin, embed Schema and override the methods you
// need:
//
//	type AuditMixin struct {
//	    mixin.Schema
//	}
//
//	func (AuditMixin) Fields() []ormar.Field {
//	    return []ormar.Field{
//	        field.String("created_by").MaxLen(64).Nullable(),
//	        field.String("updated_by").MaxLen(64).Nullable(),
//	    }
//	}
package mixin

import (
	"time"

	"github.com/google/uuid"

	"github.com/AirbornePM/ormar"
	"github.com/AirbornePM/ormar/schema/field"
)

// Schema is the default implementation of the ormar.Mixin interface.
// It should be embedded in all custom mixin definitions.
type Schema struct{}

// Fields of the mixin.
func (Schema) Fields() []ormar.Field { return nil }

// Relations of the mixin.
func (Schema) Relations() []ormar.Relation { return nil }

// schema must implement the Mixin interface.
var _ ormar.Mixin = (*Schema)(nil)

// ID provides an autoincrementing big integer primary key named "id".
type ID struct{ Schema }

// Fields of the ID mixin.
func (ID) Fields() []ormar.Field {
	return []ormar.Field{
		field.BigInt("id").PrimaryKey(),
	}
}

// UUIDID provides a UUID primary key named "id", generated client-side.
type UUIDID struct{ Schema }

// Fields of the UUIDID mixin.
func (UUIDID) Fields() []ormar.Field {
	return []ormar.Field{
		field.UUID("id").PrimaryKey().DefaultFunc(uuid.New),
	}
}

// Timestamps provides created_at and updated_at fields.
type Timestamps struct{ Schema }

// Fields of the Timestamps mixin.
func (Timestamps) Fields() []ormar.Field {
	return []ormar.Field{
		field.DateTime("created_at").DefaultFunc(time.Now).NotNull(),
		field.DateTime("updated_at").DefaultFunc(time.Now).NotNull(),
	}
}

// SoftDelete provides a nullable deleted_at field.
type SoftDelete struct{ Schema }

// Fields of the SoftDelete mixin.
func (SoftDelete) Fields() []ormar.Field {
	return []ormar.Field{
		field.DateTime("deleted_at").Nullable().Index(),
	}
}

var (
	_ ormar.Mixin = (*ID)(nil)
	_ ormar.Mixin = (*UUIDID)(nil)
	_ ormar.Mixin = (*Timestamps)(nil)
	_ ormar.Mixin = (*SoftDelete)(nil)
)
