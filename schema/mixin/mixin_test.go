package mixin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AirbornePM/ormar/schema/field"
	"github.com/AirbornePM/ormar/schema/mixin"
)

func TestSchemaDefaults(t *testing.T) {
	t.Parallel()

	type custom struct{ mixin.Schema }
	m := custom{}
	assert.Nil(t, m.Fields())
	assert.Nil(t, m.Relations())
}

func TestID(t *testing.T) {
	t.Parallel()

	fields := mixin.ID{}.Fields()
	require.Len(t, fields, 1)
	fd := fields[0].Descriptor()
	assert.Equal(t, "id", fd.Name)
	assert.Equal(t, field.TypeInt64, fd.Info.Type)
	assert.True(t, fd.PrimaryKey)
	assert.True(t, fd.Autoincrement)
}

func TestUUIDID(t *testing.T) {
	t.Parallel()

	fields := mixin.UUIDID{}.Fields()
	require.Len(t, fields, 1)
	fd := fields[0].Descriptor()
	assert.Equal(t, field.TypeUUID, fd.Info.Type)
	assert.True(t, fd.PrimaryKey)
	assert.False(t, fd.Autoincrement)
	assert.NotNil(t, fd.Default)
}

func TestTimestamps(t *testing.T) {
	t.Parallel()

	fields := mixin.Timestamps{}.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "created_at", fields[0].Descriptor().Name)
	assert.Equal(t, "updated_at", fields[1].Descriptor().Name)
	for _, f := range fields {
		fd := f.Descriptor()
		assert.False(t, fd.Nullable)
		assert.NotNil(t, fd.Default)
	}
}

func TestSoftDelete(t *testing.T) {
	t.Parallel()

	fields := mixin.SoftDelete{}.Fields()
	require.Len(t, fields, 1)
	fd := fields[0].Descriptor()
	assert.Equal(t, "deleted_at", fd.Name)
	assert.True(t, fd.Nullable)
	assert.True(t, fd.Index)
}
