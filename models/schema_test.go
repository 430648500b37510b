package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AirbornePM/ormar"
	"github.com/AirbornePM/ormar/models"
	"github.com/AirbornePM/ormar/schema/field"
	"github.com/AirbornePM/ormar/schema/mixin"
	"github.com/AirbornePM/ormar/schema/relation"
)

// Test model definitions.
type (
	User         struct{ ormar.Schema }
	Post         struct{ ormar.Schema }
	Category     struct{ ormar.Schema }
	PostCategory struct{ ormar.Schema }
	NoKey        struct{ ormar.Schema }
	Trimmed      struct{ ormar.Schema }
)

func (User) Mixin() []ormar.Mixin {
	return []ormar.Mixin{mixin.Timestamps{}}
}

func (User) Fields() []ormar.Field {
	return []ormar.Field{
		field.BigInt("id").PrimaryKey(),
		field.String("email").MaxLen(255).Unique().Rules("email"),
		field.String("name").MaxLen(100).Nullable(),
	}
}

func (Post) Fields() []ormar.Field {
	return []ormar.Field{
		field.BigInt("id").PrimaryKey(),
		field.String("title").MaxLen(200),
	}
}

func (Post) Relations() []ormar.Relation {
	return []ormar.Relation{
		relation.ForeignKey("author", User{}),
		relation.ManyToMany("categories", Category{}).Through("post_categories", PostCategory{}),
	}
}

func (Category) Fields() []ormar.Field {
	return []ormar.Field{
		field.BigInt("id").PrimaryKey(),
		field.String("name").MaxLen(100),
	}
}

func (NoKey) Fields() []ormar.Field {
	return []ormar.Field{
		field.String("name").MaxLen(10),
	}
}

// Trimmed excludes a mixed-in field from its validation schema.
func (Trimmed) Mixin() []ormar.Mixin {
	return []ormar.Mixin{mixin.Timestamps{}}
}

func (Trimmed) Fields() []ormar.Field {
	return []ormar.Field{
		field.BigInt("id").PrimaryKey(),
	}
}

func (Trimmed) Config() ormar.Config {
	return ormar.Config{ExcludeParentFields: []string{"updated_at"}}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	s, err := models.Load(User{})
	require.NoError(t, err)
	assert.Equal(t, "User", s.Name)
	assert.Equal(t, "users", s.Table)

	// Mixed-in fields precede the model's own fields.
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"created_at", "updated_at", "id", "email", "name"}, names)

	created, ok := s.Field("created_at")
	require.True(t, ok)
	require.NotNil(t, created.Position)
	assert.True(t, created.Position.MixedIn)
	assert.Equal(t, 0, created.Position.MixinIndex)

	id, ok := s.Field("id")
	require.True(t, ok)
	assert.False(t, id.Position.MixedIn)
	assert.True(t, id.Autoincrement)
}

func TestLoadValidationSchema(t *testing.T) {
	t.Parallel()

	s, err := models.Load(User{})
	require.NoError(t, err)
	require.NotNil(t, s.Validation)
	assert.True(t, s.Validation.Config.FromAttributes)

	email, ok := s.Validation.Field("email")
	require.True(t, ok)
	assert.True(t, email.Required)
	// The declared rule string is extended with the size constraint.
	assert.Equal(t, "email,max=255", email.Rules)

	// Nullable fields and defaulted fields are optional.
	name, _ := s.Validation.Field("name")
	assert.False(t, name.Required)
	created, _ := s.Validation.Field("created_at")
	assert.False(t, created.Required)
	assert.True(t, created.MixedIn)

	// Autoincrementing primary keys are optional on input.
	id, _ := s.Validation.Field("id")
	assert.False(t, id.Required)
}

func TestLoadRelations(t *testing.T) {
	t.Parallel()

	s, err := models.Load(Post{})
	require.NoError(t, err)
	require.Len(t, s.Relations, 2)

	author := s.Relations[0]
	assert.Equal(t, relation.KindForeignKey, author.Kind)
	assert.Equal(t, "User", author.Type)
	assert.Equal(t, "posts", author.RelatedName)

	categories := s.Relations[1]
	require.NotNil(t, categories.Through)
	assert.Equal(t, "PostCategory", categories.Through.Type)

	// Relation validation fields: the foreign key is required, the
	// many-to-many field targets the junction model.
	vf, ok := s.Validation.Field("author")
	require.True(t, ok)
	assert.True(t, vf.Required)
	assert.Equal(t, "User", vf.Ref)

	vf, ok = s.Validation.Field("categories")
	require.True(t, ok)
	assert.True(t, vf.List)
	assert.Equal(t, "PostCategory", vf.Ref)
}

func TestLoadSynthesizedThrough(t *testing.T) {
	t.Parallel()

	s, err := models.Load(teamModel{})
	require.NoError(t, err)

	require.Len(t, s.Relations, 1)
	through := s.Relations[0].Through
	require.NotNil(t, through)
	assert.Equal(t, "TeamModelUser", through.Type)

	vf, ok := s.Validation.Field("members")
	require.True(t, ok)
	assert.Equal(t, "TeamModelUser", vf.Ref)
}

func TestLoadMissingPrimaryKey(t *testing.T) {
	t.Parallel()

	_, err := models.Load(NoKey{})
	require.Error(t, err)
	assert.True(t, ormar.IsModelDefinitionError(err))

	// Abstract models may omit the primary key.
	_, err = models.Load(abstractModel{})
	assert.NoError(t, err)
}

func TestLoadDeclarationError(t *testing.T) {
	t.Parallel()

	_, err := models.Load(badModel{})
	require.Error(t, err)
	assert.True(t, ormar.IsModelDefinitionError(err))
}

func TestExcludeInheritedFields(t *testing.T) {
	t.Parallel()

	s, err := models.Load(Trimmed{})
	require.NoError(t, err)

	// The excluded ancestor field is gone from the validation schema but
	// still present in the canonical field list.
	_, ok := s.Validation.Field("updated_at")
	assert.False(t, ok)
	_, ok = s.Field("updated_at")
	assert.True(t, ok)

	// The sibling ancestor field survives.
	_, ok = s.Validation.Field("created_at")
	assert.True(t, ok)
}

func TestExcludeInheritedFieldsNoop(t *testing.T) {
	t.Parallel()

	// Without exclusions the operation leaves the schema untouched.
	s, err := models.Load(User{})
	require.NoError(t, err)
	n := s.Validation.Len()
	models.ExcludeInheritedFields(s)
	assert.Equal(t, n, s.Validation.Len())

	// Exclusions never remove the model's own fields.
	s, err = models.Load(ownFieldExclusion{})
	require.NoError(t, err)
	_, ok := s.Validation.Field("email")
	assert.True(t, ok)
}

func TestDeriveValidationField(t *testing.T) {
	t.Parallel()

	s, err := models.Load(User{})
	require.NoError(t, err)

	vf, err := models.DeriveValidationField("email", s)
	require.NoError(t, err)
	assert.Equal(t, "email", vf.Name)
	assert.Equal(t, field.TypeString, vf.Type.Type)
	assert.True(t, vf.Required)

	vf, err = models.DeriveValidationField("name", s)
	require.NoError(t, err)
	assert.False(t, vf.Required)

	_, err = models.DeriveValidationField("missing", s)
	require.Error(t, err)
	assert.True(t, ormar.IsFieldNotFound(err))
}

func TestRegisterRelationField(t *testing.T) {
	t.Parallel()

	s, err := models.Load(Post{})
	require.NoError(t, err)

	rel, ok := s.Relation("categories")
	require.True(t, ok)
	require.NoError(t, models.RegisterRelationField("tags", s, rel))
	vf, ok := s.Validation.Field("tags")
	require.True(t, ok)
	assert.Equal(t, "PostCategory", vf.Ref)
	assert.True(t, vf.List)

	// Foreign keys and relations without a junction model are rejected.
	author, _ := s.Relation("author")
	err = models.RegisterRelationField("author", s, author)
	require.Error(t, err)
	assert.True(t, ormar.IsThroughModelError(err))

	err = models.RegisterRelationField("broken", s, &models.Relation{
		Name: "broken",
		Kind: relation.KindManyToMany,
	})
	require.Error(t, err)
	assert.True(t, ormar.IsThroughModelError(err))
}

func TestSchemaRoundtrip(t *testing.T) {
	t.Parallel()

	buf, err := models.MarshalModel(defaultedModel{})
	require.NoError(t, err)

	s, err := models.UnmarshalSchema(buf)
	require.NoError(t, err)
	assert.Equal(t, "defaultedModel", s.Name)

	// Numeric defaults survive the JSON roundtrip with their type
	// restored; function defaults are not serialized.
	count, ok := s.Field("count")
	require.True(t, ok)
	assert.True(t, count.Default)
	assert.Equal(t, int64(3), count.DefaultValue)

	stamp, ok := s.Field("created_at")
	require.True(t, ok)
	assert.True(t, stamp.Default)
	assert.Nil(t, stamp.DefaultValue)

	// The validation schema is rebuilt after decoding.
	require.NotNil(t, s.Validation)
	vf, ok := s.Validation.Field("count")
	require.True(t, ok)
	assert.False(t, vf.Required)
}

// Auxiliary model definitions used by single tests.

type teamModel struct{ ormar.Schema }

func (teamModel) Fields() []ormar.Field {
	return []ormar.Field{field.BigInt("id").PrimaryKey()}
}

func (teamModel) Relations() []ormar.Relation {
	return []ormar.Relation{relation.ManyToMany("members", User{})}
}

type abstractModel struct{ ormar.Schema }

func (abstractModel) Config() ormar.Config {
	return ormar.Config{Abstract: true}
}

type badModel struct{ ormar.Schema }

func (badModel) Fields() []ormar.Field {
	return []ormar.Field{
		field.BigInt("id").PrimaryKey(),
		field.String("name"), // missing max length
	}
}

type ownFieldExclusion struct{ ormar.Schema }

func (ownFieldExclusion) Fields() []ormar.Field {
	return []ormar.Field{
		field.BigInt("id").PrimaryKey(),
		field.String("email").MaxLen(255),
	}
}

func (ownFieldExclusion) Config() ormar.Config {
	return ormar.Config{ExcludeParentFields: []string{"email"}}
}

type defaultedModel struct{ ormar.Schema }

func (defaultedModel) Fields() []ormar.Field {
	return []ormar.Field{
		field.BigInt("id").PrimaryKey(),
		field.Int("count").Default(3),
		field.DateTime("created_at").DefaultFunc(time.Now),
	}
}

func BenchmarkLoad(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := models.Load(Post{}); err != nil {
			b.Fatal(err)
		}
	}
}

func TestValidateDeclaredConstraints(t *testing.T) {
	t.Parallel()

	s, err := models.Load(Post{})
	require.NoError(t, err)

	// Declared length constraints are enforced on input.
	err = s.Validation.Validate(map[string]any{
		"title":  strings.Repeat("x", 5000),
		"author": 1,
	})
	require.Error(t, err)
	assert.True(t, ormar.IsValidationError(err))
	assert.Contains(t, err.Error(), "title")

	require.NoError(t, s.Validation.Validate(map[string]any{
		"title":  "within bounds",
		"author": 1,
	}))

	// Required foreign keys must be present.
	err = s.Validation.Validate(map[string]any{"title": "no author"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "author")
}

func TestRoundtripValidation(t *testing.T) {
	t.Parallel()

	buf, err := models.MarshalModel(Post{})
	require.NoError(t, err)
	s, err := models.UnmarshalSchema(buf)
	require.NoError(t, err)

	// Serialized constraints keep validating after the roundtrip even
	// though the declared validator functions are gone.
	title, ok := s.Validation.Field("title")
	require.True(t, ok)
	assert.Empty(t, title.Validators)
	assert.Equal(t, "max=200", title.Rules)

	err = s.Validation.Validate(map[string]any{
		"title":  strings.Repeat("x", 201),
		"author": 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}
