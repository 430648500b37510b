package field_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AirbornePM/ormar/schema/field"
)

func TestString(t *testing.T) {
	fd := field.String("name").
		MaxLen(100).
		Comment("comment").
		Descriptor()
	assert.NoError(t, fd.Err)
	assert.Equal(t, "name", fd.Name)
	assert.Equal(t, field.TypeString, fd.Info.Type)
	assert.Equal(t, 100, fd.Size)
	assert.Equal(t, "comment", fd.Comment)
	assert.Len(t, fd.Validators, 1)
	assert.False(t, fd.Nullable)

	fd = field.String("email").
		MaxLen(255).
		MinLen(3).
		Match(regexp.MustCompile(`.+@.+`)).
		Unique().
		Descriptor()
	assert.NoError(t, fd.Err)
	assert.True(t, fd.Unique)
	assert.Len(t, fd.Validators, 3)

	// Max length is mandatory for bounded strings.
	fd = field.String("name").Descriptor()
	assert.EqualError(t, fd.Err, "max length is required for string fields")

	// Text fields are unbounded.
	fd = field.Text("bio").Descriptor()
	assert.NoError(t, fd.Err)
	assert.Zero(t, fd.Size)
}

func TestString_NullabilityInference(t *testing.T) {
	// No default, no explicit nullability: not nullable.
	fd := field.String("name").MaxLen(10).Descriptor()
	assert.False(t, fd.Nullable)

	// A default makes the field nullable unless told otherwise.
	fd = field.String("status").MaxLen(10).Default("active").Descriptor()
	assert.True(t, fd.Nullable)
	assert.Equal(t, "active", fd.Default)

	// Server defaults infer nullability the same way.
	fd = field.String("code").MaxLen(10).ServerDefault("gen_code()").Descriptor()
	assert.True(t, fd.Nullable)

	// Explicit NotNull wins over the inference.
	fd = field.String("status").MaxLen(10).Default("active").NotNull().Descriptor()
	assert.False(t, fd.Nullable)

	// Explicit Nullable without a default.
	fd = field.String("nickname").MaxLen(50).Nullable().Descriptor()
	assert.True(t, fd.Nullable)
}

func TestString_DefaultFunc(t *testing.T) {
	fn := func() string { return "generated" }
	fd := field.String("slug").MaxLen(64).DefaultFunc(fn).Descriptor()
	require.NoError(t, fd.Err)
	require.NotNil(t, fd.Default)
	assert.Equal(t, "generated", fd.Default.(func() string)())
	assert.True(t, fd.HasDefault())
}

func TestBool(t *testing.T) {
	fd := field.Bool("active").Default(true).Comment("comment").Descriptor()
	assert.Equal(t, "active", fd.Name)
	assert.Equal(t, field.TypeBool, fd.Info.Type)
	assert.Equal(t, true, fd.Default)
	assert.Equal(t, "comment", fd.Comment)
	assert.True(t, fd.Nullable)
}

func TestTemporal(t *testing.T) {
	fd := field.DateTime("created_at").DefaultFunc(time.Now).Descriptor()
	assert.Equal(t, field.TypeTime, fd.Info.Type)
	assert.Equal(t, field.TemporalDateTime, fd.Temporal)
	assert.NotNil(t, fd.Default)
	assert.NotZero(t, fd.Default.(func() time.Time)())

	fd = field.Date("birthday").Nullable().Descriptor()
	assert.Equal(t, field.TemporalDate, fd.Temporal)
	assert.True(t, fd.Nullable)

	fd = field.Time("opens_at").ServerDefault("now()").Descriptor()
	assert.Equal(t, field.TemporalTime, fd.Temporal)
	assert.Equal(t, "now()", fd.ServerDefault)
}

func TestJSON(t *testing.T) {
	fd := field.JSON("metadata").Default([]byte("{}")).Descriptor()
	assert.NoError(t, fd.Err)
	assert.Equal(t, field.TypeJSON, fd.Info.Type)
	assert.Equal(t, []byte("{}"), fd.Default)
}

func TestBytes(t *testing.T) {
	fd := field.Bytes("data").
		MaxLen(1024).
		Validate(func([]byte) error { return nil }).
		Descriptor()
	assert.NoError(t, fd.Err)
	assert.Equal(t, field.TypeBytes, fd.Info.Type)
	assert.Equal(t, 1024, fd.Size)
	assert.Len(t, fd.Validators, 2)
}

func TestUUID(t *testing.T) {
	fd := field.UUID("id").PrimaryKey().DefaultFunc(uuid.New).Descriptor()
	assert.NoError(t, fd.Err)
	assert.Equal(t, field.TypeUUID, fd.Info.Type)
	assert.Equal(t, "uuid.UUID", fd.Info.Ident)
	assert.Equal(t, "github.com/google/uuid", fd.Info.PkgPath)
	assert.True(t, fd.PrimaryKey)
	// UUID primary keys never autoincrement.
	assert.False(t, fd.Autoincrement)
	assert.NotEmpty(t, fd.Default.(func() uuid.UUID)())
}

func TestDecimal(t *testing.T) {
	fd := field.Decimal("amount").Precision(10).Scale(2).Descriptor()
	assert.NoError(t, fd.Err)
	assert.Equal(t, field.TypeDecimal, fd.Info.Type)
	assert.Equal(t, "decimal.Decimal", fd.Info.Ident)
	assert.Equal(t, 10, fd.Precision)
	assert.Equal(t, 2, fd.Scale)

	// Precision and scale are mandatory.
	fd = field.Decimal("amount").Descriptor()
	assert.EqualError(t, fd.Err, "precision and scale are required for decimal fields")
	fd = field.Decimal("amount").Precision(10).Descriptor()
	assert.Error(t, fd.Err)

	// Scale of zero is valid.
	fd = field.Decimal("units").Precision(6).Scale(0).Descriptor()
	assert.NoError(t, fd.Err)

	fd = field.Decimal("price").Precision(10).Scale(2).
		Min(decimal.Zero).
		Max(decimal.NewFromInt(1000)).
		Descriptor()
	assert.Len(t, fd.Validators, 2)
}

func TestEnum(t *testing.T) {
	fd := field.Enum("status").Values("pending", "active", "inactive").Descriptor()
	assert.NoError(t, fd.Err)
	assert.Equal(t, field.TypeEnum, fd.Info.Type)
	assert.Equal(t, []string{"pending", "active", "inactive"}, fd.Enums)

	fd = field.Enum("status").Descriptor()
	assert.EqualError(t, fd.Err, "values are required for enum fields")
}

func TestValidationOnly(t *testing.T) {
	fd := field.String("display_name").MaxLen(200).ValidationOnly().Descriptor()
	assert.NoError(t, fd.Err)
	assert.True(t, fd.ValidationOnly)
}

func TestRules(t *testing.T) {
	fd := field.String("email").MaxLen(255).Rules("required,email").Descriptor()
	assert.Equal(t, "required,email", fd.Rules)
}

func TestColumnOverride(t *testing.T) {
	fd := field.String("name").MaxLen(50).Column("full_name").Descriptor()
	assert.Equal(t, "name", fd.Name)
	assert.Equal(t, "full_name", fd.Column)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "string", field.TypeString.String())
	assert.Equal(t, "time.Time", field.TypeTime.String())
	assert.Equal(t, "decimal.Decimal", field.TypeDecimal.String())
	assert.Equal(t, "invalid", field.TypeInvalid.String())
	assert.True(t, field.TypeInt.Numeric())
	assert.True(t, field.TypeInt64.Integer())
	assert.False(t, field.TypeString.Numeric())
	assert.True(t, field.TypeFloat64.Float())
	assert.False(t, field.TypeInvalid.Valid())
}
