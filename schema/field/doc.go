// Package field provides fluent builders for declaring model fields.
//
// Field names follow database conventions (snake_case), while generated Go
// struct field names are converted to PascalCase:
//
//	field.Int64("user_id")    // DB: user_id, Go: UserID
//	field.String("email")     // DB: email, Go: Email
//
// # Field Types
//
// The package supports the field types of the model layer:
//
//	// String fields (MaxLen is required)
//	field.String("name").MaxLen(100)
//	field.Text("description")
//
//	// Numeric fields
//	field.Int("count")
//	field.SmallInt("rank")
//	field.BigInt("big_number")
//	field.Float("price")
//
//	// Boolean fields
//	field.Bool("is_active")
//
//	// Temporal fields
//	field.DateTime("created_at")
//	field.Date("birthday")
//	field.Time("opens_at")
//
//	// UUID fields
//	field.UUID("id")
//
//	// Enum fields (choices)
//	field.Enum("status").Values("pending", "active", "inactive")
//
//	// JSON fields
//	field.JSON("metadata")
//
//	// Binary fields
//	field.Bytes("data")
//
//	// Fixed-point decimals (Precision and Scale are required)
//	field.Decimal("amount").Precision(10).Scale(2)
//
// # Field Options
//
//	field.String("email").
//	    MaxLen(255).
//	    Unique().              // Unique constraint
//	    Nullable().            // Nullable column, not required on input
//	    Default("unknown").    // Default value
//	    Comment("User email")  // Column comment
//
// # Nullability
//
// When Nullable or NotNull is not called explicitly, nullability is
// inferred from the declaration: a field with a default or a server
// default is nullable, any other field is not.
//
// # Primary Keys
//
// Integer primary keys autoincrement unless disabled:
//
//	field.Int("id").PrimaryKey()                    // autoincrements
//	field.Int("code").PrimaryKey().NoAutoincrement()
//
// # Validation
//
// Fields support built-in validators, custom validator functions, and
// go-playground/validator rule strings carried into the derived
// validation schema:
//
//	field.String("name").MaxLen(100).NotEmpty().MinLen(2)
//	field.Int("age").NonNegative().Max(150)
//	field.String("email").Rules("required,email")
//	field.String("slug").Validate(func(s string) error { ... })
//
// # Defaults
//
// Fields support both literal and function defaults:
//
//	field.String("status").MaxLen(20).Default("active")
//	field.DateTime("created_at").DefaultFunc(time.Now)
//	field.UUID("id").DefaultFunc(uuid.New)
//
// Server-side defaults are declared separately and never populated by the
// validation layer:
//
//	field.DateTime("updated_at").ServerDefault("now()")
//
// # Validation-Only Fields
//
// A field can live only on the derived validation schema, with no backing
// column:
//
//	field.String("display_name").MaxLen(200).ValidationOnly()
package field
