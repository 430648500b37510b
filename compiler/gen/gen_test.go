package gen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AirbornePM/ormar"
	"github.com/AirbornePM/ormar/compiler/gen"
	"github.com/AirbornePM/ormar/models"
	"github.com/AirbornePM/ormar/schema/field"
	"github.com/AirbornePM/ormar/schema/relation"
)

// Test model definitions.
type (
	User     struct{ ormar.Schema }
	Post     struct{ ormar.Schema }
	BaseOnly struct{ ormar.Schema }
)

func (User) Fields() []ormar.Field {
	return []ormar.Field{
		field.BigInt("id").PrimaryKey(),
		field.String("email").MaxLen(255).Rules("email"),
		field.String("name").MaxLen(100).Nullable(),
		field.JSON("meta").Nullable(),
		field.DateTime("created_at").Nullable(),
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
		relation.ManyToMany("likes", User{}),
	}
}

func (BaseOnly) Config() ormar.Config {
	return ormar.Config{Abstract: true}
}

func TestNewGraph(t *testing.T) {
	t.Parallel()

	g, err := gen.NewGraph(User{}, Post{})
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Post"}, g.Names())

	s, ok := g.Schema("User")
	require.True(t, ok)
	assert.Equal(t, "users", s.Table)

	_, ok = g.Schema("Missing")
	assert.False(t, ok)

	// Adding a schema with an existing name replaces it in place.
	g.Add(&models.Schema{Name: "User", Table: "people"})
	s, ok = g.Schema("User")
	require.True(t, ok)
	assert.Equal(t, "people", s.Table)
	assert.Equal(t, []string{"User", "Post"}, g.Names())
}

func TestNewGraphInvalidModel(t *testing.T) {
	t.Parallel()

	type noKey struct{ ormar.Schema }
	_, err := gen.NewGraph(noKey{})
	require.Error(t, err)
	assert.True(t, ormar.IsModelDefinitionError(err))
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	g, err := gen.NewGraph(User{}, Post{}, BaseOnly{})
	require.NoError(t, err)

	out := t.TempDir()
	err = gen.NewGenerator(g, out).WithPackage("app").WithWorkers(2).Generate(context.Background())
	require.NoError(t, err)

	buf, err := os.ReadFile(filepath.Join(out, "user_model.go"))
	require.NoError(t, err)
	src := string(buf)

	assert.Contains(t, src, "Code generated by ormar, DO NOT EDIT.")
	assert.Contains(t, src, "package app")
	assert.Contains(t, src, "type User struct")
	assert.Contains(t, src, `return "users"`)
	assert.Contains(t, src, "UserColumns")

	// Required fields carry their compiled validator rule; optional
	// fields of non-nillable types become pointers.
	assert.Contains(t, src, `validate:"required,email,max=255"`)
	assert.Contains(t, src, "*string")
	assert.Contains(t, src, `json:"name,omitempty"`)
	assert.Contains(t, src, "json.RawMessage")
	assert.Contains(t, src, "time.Time")

	buf, err = os.ReadFile(filepath.Join(out, "post_model.go"))
	require.NoError(t, err)
	src = string(buf)
	assert.Contains(t, src, "Author *User")
	assert.Contains(t, src, "Likes []User")
	assert.Contains(t, src, `json:"author,omitempty"`)

	// Abstract definitions produce no file.
	_, err = os.Stat(filepath.Join(out, "base_only_model.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	buf, err := models.MarshalModel(User{})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), buf, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skipped"), 0o644))

	g, err := gen.LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"User"}, g.Names())

	s, _ := g.Schema("User")
	assert.Equal(t, "users", s.Table)
	require.NotNil(t, s.Validation)
	email, ok := s.Validation.Field("email")
	require.True(t, ok)
	assert.True(t, email.Required)
}

func TestLoadDirMissing(t *testing.T) {
	t.Parallel()

	_, err := gen.LoadDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
