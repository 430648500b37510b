package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AirbornePM/ormar/naming"
)

func TestSnake(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user_profile", naming.Snake("UserProfile"))
	assert.Equal(t, "name", naming.Snake("Name"))
}

func TestPascal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "UserID", naming.Pascal("user_id"))
	assert.Equal(t, "Email", naming.Pascal("email"))
	assert.Equal(t, "CreatedAt", naming.Pascal("created_at"))
	assert.Equal(t, "UUID", naming.Pascal("uuid"))
	assert.Equal(t, "APIKey", naming.Pascal("api_key"))
}

func TestTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "users", naming.Table("User"))
	assert.Equal(t, "user_profiles", naming.Table("UserProfile"))
	assert.Equal(t, "categories", naming.Table("Category"))
}

func TestJoinTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "users_groups", naming.JoinTable("User", "Group"))
}

func TestThroughModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "UserGroup", naming.ThroughModel("User", "Group"))
	assert.Equal(t, "PostCategory", naming.ThroughModel("Post", "Category"))
}

func TestRelatedName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "posts", naming.RelatedName("Post"))
}
