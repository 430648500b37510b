package field

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Temporal kinds for time fields. They select the column type;
// the Go representation is time.Time for all three.
const (
	TemporalDateTime = "datetime"
	TemporalDate     = "date"
	TemporalTime     = "time"
)

// A Descriptor for field configuration. Builders record everything here,
// including declaration errors, which are surfaced at load time.
type Descriptor struct {
	Name             string    `json:"name,omitempty"`
	Info             *TypeInfo `json:"type,omitempty"`
	Column           string    `json:"column,omitempty"`
	Temporal         string    `json:"temporal,omitempty"`
	Nullable         bool      `json:"nullable,omitempty"`
	PrimaryKey       bool      `json:"primary_key,omitempty"`
	Autoincrement    bool      `json:"autoincrement,omitempty"`
	Unique           bool      `json:"unique,omitempty"`
	Index            bool      `json:"index,omitempty"`
	Default          any       `json:"-"`
	ServerDefault    string    `json:"server_default,omitempty"`
	ValidationOnly   bool      `json:"validation_only,omitempty"`
	Size             int       `json:"size,omitempty"`
	Min              *float64  `json:"min,omitempty"`
	Max              *float64  `json:"max,omitempty"`
	Precision        int       `json:"precision,omitempty"`
	Scale            int       `json:"scale,omitempty"`
	Enums            []string  `json:"enums,omitempty"`
	Rules            string    `json:"rules,omitempty"`
	Validators       []any     `json:"-"`
	Comment          string    `json:"comment,omitempty"`
	Deprecated       bool      `json:"deprecated,omitempty"`
	DeprecatedReason string    `json:"deprecated_reason,omitempty"`
	Err              error     `json:"-"`

	nullable      *bool
	autoincrement *bool
}

// HasDefault reports if the field declares a client-side default.
func (d *Descriptor) HasDefault() bool {
	return d.Default != nil
}

// err records the first error that occurred during declaration.
func (d *Descriptor) err(err error) {
	if d.Err == nil {
		d.Err = err
	}
}

// finalize resolves the inferred parts of the descriptor. When nullability
// was not set explicitly, a field with a default (client or server side) is
// nullable. Integer primary keys autoincrement unless disabled.
func (d *Descriptor) finalize() *Descriptor {
	switch {
	case d.nullable != nil:
		d.Nullable = *d.nullable
	default:
		d.Nullable = d.Default != nil || d.ServerDefault != ""
	}
	switch {
	case d.autoincrement != nil:
		d.Autoincrement = *d.autoincrement
	default:
		d.Autoincrement = d.PrimaryKey && d.Info != nil && d.Info.Type.Integer()
	}
	return d
}

func newDescriptor(name string, t Type) *Descriptor {
	return &Descriptor{Name: name, Info: &TypeInfo{Type: t}}
}

func boolptr(b bool) *bool { return &b }

func floatptr(f float64) *float64 { return &f }

// String returns a new string field with the given name. String fields
// require a maximum length; use Text for unbounded strings.
func String(name string) *stringBuilder {
	return &stringBuilder{desc: newDescriptor(name, TypeString)}
}

// Text returns a new unbounded string field with the given name.
func Text(name string) *stringBuilder {
	return &stringBuilder{desc: newDescriptor(name, TypeString), text: true}
}

// stringBuilder is the builder for string fields.
type stringBuilder struct {
	desc *Descriptor
	text bool
}

// MaxLen sets the maximum length of the string and adds a length validator.
func (b *stringBuilder) MaxLen(i int) *stringBuilder {
	b.desc.Size = i
	b.desc.Validators = append(b.desc.Validators, func(v string) error {
		if len(v) > i {
			return errors.New("value is greater than the required length")
		}
		return nil
	})
	return b
}

// MinLen adds a minimum length validator.
func (b *stringBuilder) MinLen(i int) *stringBuilder {
	b.desc.Min = floatptr(float64(i))
	b.desc.Validators = append(b.desc.Validators, func(v string) error {
		if len(v) < i {
			return errors.New("value is less than the required length")
		}
		return nil
	})
	return b
}

// NotEmpty adds a validator that rejects empty strings.
func (b *stringBuilder) NotEmpty() *stringBuilder {
	return b.MinLen(1)
}

// Match adds a regular expression validator.
func (b *stringBuilder) Match(re *regexp.Regexp) *stringBuilder {
	b.desc.Validators = append(b.desc.Validators, func(v string) error {
		if !re.MatchString(v) {
			return fmt.Errorf("value does not match validation %q", re)
		}
		return nil
	})
	return b
}

// Validate adds a custom validator function.
func (b *stringBuilder) Validate(fn func(string) error) *stringBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// Default sets the default value of the field.
func (b *stringBuilder) Default(s string) *stringBuilder {
	b.desc.Default = s
	return b
}

// DefaultFunc sets a function default, called on population.
func (b *stringBuilder) DefaultFunc(fn func() string) *stringBuilder {
	b.desc.Default = fn
	return b
}

// ServerDefault sets a server-side default expression.
func (b *stringBuilder) ServerDefault(expr string) *stringBuilder {
	b.desc.ServerDefault = expr
	return b
}

// Nullable makes the column nullable and the field optional on input.
func (b *stringBuilder) Nullable() *stringBuilder {
	b.desc.nullable = boolptr(true)
	return b
}

// NotNull forces the column to be non-nullable even when a default is set.
func (b *stringBuilder) NotNull() *stringBuilder {
	b.desc.nullable = boolptr(false)
	return b
}

// PrimaryKey marks the field as the model's primary key.
func (b *stringBuilder) PrimaryKey() *stringBuilder {
	b.desc.PrimaryKey = true
	return b
}

// Unique adds a unique constraint on the column.
func (b *stringBuilder) Unique() *stringBuilder {
	b.desc.Unique = true
	return b
}

// Index adds an index on the column.
func (b *stringBuilder) Index() *stringBuilder {
	b.desc.Index = true
	return b
}

// Column overrides the column name derived from the field name.
func (b *stringBuilder) Column(name string) *stringBuilder {
	b.desc.Column = name
	return b
}

// ValidationOnly declares the field on the validation schema only,
// with no backing column.
func (b *stringBuilder) ValidationOnly() *stringBuilder {
	b.desc.ValidationOnly = true
	return b
}

// Rules sets a go-playground/validator rule string carried into the
// derived validation field.
func (b *stringBuilder) Rules(rules string) *stringBuilder {
	b.desc.Rules = rules
	return b
}

// Comment sets the column comment.
func (b *stringBuilder) Comment(c string) *stringBuilder {
	b.desc.Comment = c
	return b
}

// Deprecated marks the field as deprecated.
func (b *stringBuilder) Deprecated(reason string) *stringBuilder {
	b.desc.Deprecated = true
	b.desc.DeprecatedReason = reason
	return b
}

// Descriptor implements the ormar.Field interface by returning its descriptor.
func (b *stringBuilder) Descriptor() *Descriptor {
	if !b.text && b.desc.Size <= 0 {
		b.desc.err(errors.New("max length is required for string fields"))
	}
	return b.desc.finalize()
}

// Bool returns a new bool field with the given name.
func Bool(name string) *boolBuilder {
	return &boolBuilder{desc: newDescriptor(name, TypeBool)}
}

// boolBuilder is the builder for bool fields.
type boolBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *boolBuilder) Default(v bool) *boolBuilder {
	b.desc.Default = v
	return b
}

// Nullable makes the column nullable and the field optional on input.
func (b *boolBuilder) Nullable() *boolBuilder {
	b.desc.nullable = boolptr(true)
	return b
}

// NotNull forces the column to be non-nullable even when a default is set.
func (b *boolBuilder) NotNull() *boolBuilder {
	b.desc.nullable = boolptr(false)
	return b
}

// Index adds an index on the column.
func (b *boolBuilder) Index() *boolBuilder {
	b.desc.Index = true
	return b
}

// Column overrides the column name derived from the field name.
func (b *boolBuilder) Column(name string) *boolBuilder {
	b.desc.Column = name
	return b
}

// ValidationOnly declares the field on the validation schema only.
func (b *boolBuilder) ValidationOnly() *boolBuilder {
	b.desc.ValidationOnly = true
	return b
}

// Rules sets a go-playground/validator rule string.
func (b *boolBuilder) Rules(rules string) *boolBuilder {
	b.desc.Rules = rules
	return b
}

// Comment sets the column comment.
func (b *boolBuilder) Comment(c string) *boolBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the ormar.Field interface by returning its descriptor.
func (b *boolBuilder) Descriptor() *Descriptor {
	return b.desc.finalize()
}

// DateTime returns a new timestamp field with the given name.
func DateTime(name string) *timeBuilder {
	d := newDescriptor(name, TypeTime)
	d.Temporal = TemporalDateTime
	return &timeBuilder{desc: d}
}

// Date returns a new date field with the given name.
func Date(name string) *timeBuilder {
	d := newDescriptor(name, TypeTime)
	d.Temporal = TemporalDate
	return &timeBuilder{desc: d}
}

// Time returns a new time-of-day field with the given name.
func Time(name string) *timeBuilder {
	d := newDescriptor(name, TypeTime)
	d.Temporal = TemporalTime
	return &timeBuilder{desc: d}
}

// timeBuilder is the builder for temporal fields.
type timeBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *timeBuilder) Default(v time.Time) *timeBuilder {
	b.desc.Default = v
	return b
}

// DefaultFunc sets a function default, called on population.
// Common usage is setting creation time:
//
//	field.DateTime("created_at").DefaultFunc(time.Now)
func (b *timeBuilder) DefaultFunc(fn func() time.Time) *timeBuilder {
	b.desc.Default = fn
	return b
}

// ServerDefault sets a server-side default expression, e.g. "now()".
func (b *timeBuilder) ServerDefault(expr string) *timeBuilder {
	b.desc.ServerDefault = expr
	return b
}

// Nullable makes the column nullable and the field optional on input.
func (b *timeBuilder) Nullable() *timeBuilder {
	b.desc.nullable = boolptr(true)
	return b
}

// NotNull forces the column to be non-nullable even when a default is set.
func (b *timeBuilder) NotNull() *timeBuilder {
	b.desc.nullable = boolptr(false)
	return b
}

// Index adds an index on the column.
func (b *timeBuilder) Index() *timeBuilder {
	b.desc.Index = true
	return b
}

// Column overrides the column name derived from the field name.
func (b *timeBuilder) Column(name string) *timeBuilder {
	b.desc.Column = name
	return b
}

// ValidationOnly declares the field on the validation schema only.
func (b *timeBuilder) ValidationOnly() *timeBuilder {
	b.desc.ValidationOnly = true
	return b
}

// Rules sets a go-playground/validator rule string.
func (b *timeBuilder) Rules(rules string) *timeBuilder {
	b.desc.Rules = rules
	return b
}

// Comment sets the column comment.
func (b *timeBuilder) Comment(c string) *timeBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the ormar.Field interface by returning its descriptor.
func (b *timeBuilder) Descriptor() *Descriptor {
	return b.desc.finalize()
}

// JSON returns a new JSON field with the given name.
func JSON(name string) *jsonBuilder {
	d := newDescriptor(name, TypeJSON)
	d.Info.Nillable = true
	return &jsonBuilder{desc: d}
}

// jsonBuilder is the builder for JSON fields.
type jsonBuilder struct {
	desc *Descriptor
}

// Default sets the default document of the field, e.g. []byte("{}").
func (b *jsonBuilder) Default(raw []byte) *jsonBuilder {
	b.desc.Default = raw
	return b
}

// Nullable makes the column nullable and the field optional on input.
func (b *jsonBuilder) Nullable() *jsonBuilder {
	b.desc.nullable = boolptr(true)
	return b
}

// NotNull forces the column to be non-nullable even when a default is set.
func (b *jsonBuilder) NotNull() *jsonBuilder {
	b.desc.nullable = boolptr(false)
	return b
}

// Column overrides the column name derived from the field name.
func (b *jsonBuilder) Column(name string) *jsonBuilder {
	b.desc.Column = name
	return b
}

// ValidationOnly declares the field on the validation schema only.
func (b *jsonBuilder) ValidationOnly() *jsonBuilder {
	b.desc.ValidationOnly = true
	return b
}

// Rules sets a go-playground/validator rule string.
func (b *jsonBuilder) Rules(rules string) *jsonBuilder {
	b.desc.Rules = rules
	return b
}

// Comment sets the column comment.
func (b *jsonBuilder) Comment(c string) *jsonBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the ormar.Field interface by returning its descriptor.
func (b *jsonBuilder) Descriptor() *Descriptor {
	return b.desc.finalize()
}

// Bytes returns a new binary field with the given name.
func Bytes(name string) *bytesBuilder {
	d := newDescriptor(name, TypeBytes)
	d.Info.Nillable = true
	return &bytesBuilder{desc: d}
}

// bytesBuilder is the builder for binary fields.
type bytesBuilder struct {
	desc *Descriptor
}

// MaxLen sets the maximum length of the value and adds a length validator.
func (b *bytesBuilder) MaxLen(i int) *bytesBuilder {
	b.desc.Size = i
	b.desc.Validators = append(b.desc.Validators, func(v []byte) error {
		if len(v) > i {
			return errors.New("value is greater than the required length")
		}
		return nil
	})
	return b
}

// Validate adds a custom validator function.
func (b *bytesBuilder) Validate(fn func([]byte) error) *bytesBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// Default sets the default value of the field.
func (b *bytesBuilder) Default(v []byte) *bytesBuilder {
	b.desc.Default = v
	return b
}

// Nullable makes the column nullable and the field optional on input.
func (b *bytesBuilder) Nullable() *bytesBuilder {
	b.desc.nullable = boolptr(true)
	return b
}

// NotNull forces the column to be non-nullable even when a default is set.
func (b *bytesBuilder) NotNull() *bytesBuilder {
	b.desc.nullable = boolptr(false)
	return b
}

// Unique adds a unique constraint on the column.
func (b *bytesBuilder) Unique() *bytesBuilder {
	b.desc.Unique = true
	return b
}

// Column overrides the column name derived from the field name.
func (b *bytesBuilder) Column(name string) *bytesBuilder {
	b.desc.Column = name
	return b
}

// ValidationOnly declares the field on the validation schema only.
func (b *bytesBuilder) ValidationOnly() *bytesBuilder {
	b.desc.ValidationOnly = true
	return b
}

// Comment sets the column comment.
func (b *bytesBuilder) Comment(c string) *bytesBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the ormar.Field interface by returning its descriptor.
func (b *bytesBuilder) Descriptor() *Descriptor {
	return b.desc.finalize()
}

// UUID returns a new UUID field with the given name.
func UUID(name string) *uuidBuilder {
	d := newDescriptor(name, TypeUUID)
	d.Info.Ident = "uuid.UUID"
	d.Info.PkgPath = "github.com/google/uuid"
	return &uuidBuilder{desc: d}
}

// uuidBuilder is the builder for uuid.UUID fields.
type uuidBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *uuidBuilder) Default(v uuid.UUID) *uuidBuilder {
	b.desc.Default = v
	return b
}

// DefaultFunc sets a function default. Common usage:
//
//	field.UUID("id").DefaultFunc(uuid.New)
func (b *uuidBuilder) DefaultFunc(fn func() uuid.UUID) *uuidBuilder {
	b.desc.Default = fn
	return b
}

// Nullable makes the column nullable and the field optional on input.
func (b *uuidBuilder) Nullable() *uuidBuilder {
	b.desc.nullable = boolptr(true)
	return b
}

// NotNull forces the column to be non-nullable even when a default is set.
func (b *uuidBuilder) NotNull() *uuidBuilder {
	b.desc.nullable = boolptr(false)
	return b
}

// PrimaryKey marks the field as the model's primary key.
func (b *uuidBuilder) PrimaryKey() *uuidBuilder {
	b.desc.PrimaryKey = true
	return b
}

// Unique adds a unique constraint on the column.
func (b *uuidBuilder) Unique() *uuidBuilder {
	b.desc.Unique = true
	return b
}

// Index adds an index on the column.
func (b *uuidBuilder) Index() *uuidBuilder {
	b.desc.Index = true
	return b
}

// Column overrides the column name derived from the field name.
func (b *uuidBuilder) Column(name string) *uuidBuilder {
	b.desc.Column = name
	return b
}

// Rules sets a go-playground/validator rule string.
func (b *uuidBuilder) Rules(rules string) *uuidBuilder {
	b.desc.Rules = rules
	return b
}

// Comment sets the column comment.
func (b *uuidBuilder) Comment(c string) *uuidBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the ormar.Field interface by returning its descriptor.
func (b *uuidBuilder) Descriptor() *Descriptor {
	return b.desc.finalize()
}

// Decimal returns a new fixed-point decimal field with the given name.
// Precision and Scale are required.
func Decimal(name string) *decimalBuilder {
	d := newDescriptor(name, TypeDecimal)
	d.Info.Ident = "decimal.Decimal"
	d.Info.PkgPath = "github.com/shopspring/decimal"
	return &decimalBuilder{desc: d, scale: -1}
}

// decimalBuilder is the builder for decimal.Decimal fields.
type decimalBuilder struct {
	desc  *Descriptor
	scale int
}

// Precision sets the total number of digits.
func (b *decimalBuilder) Precision(p int) *decimalBuilder {
	b.desc.Precision = p
	return b
}

// Scale sets the number of digits after the decimal point.
func (b *decimalBuilder) Scale(s int) *decimalBuilder {
	b.desc.Scale = s
	b.scale = s
	return b
}

// Min adds a minimum value validator.
func (b *decimalBuilder) Min(v decimal.Decimal) *decimalBuilder {
	b.desc.Validators = append(b.desc.Validators, func(d decimal.Decimal) error {
		if d.LessThan(v) {
			return errors.New("value out of range")
		}
		return nil
	})
	return b
}

// Max adds a maximum value validator.
func (b *decimalBuilder) Max(v decimal.Decimal) *decimalBuilder {
	b.desc.Validators = append(b.desc.Validators, func(d decimal.Decimal) error {
		if d.GreaterThan(v) {
			return errors.New("value out of range")
		}
		return nil
	})
	return b
}

// Positive adds a validator that requires the value to be positive.
func (b *decimalBuilder) Positive() *decimalBuilder {
	return b.Min(decimal.New(1, -int32(max(b.desc.Scale, 0))))
}

// Default sets the default value of the field.
func (b *decimalBuilder) Default(v decimal.Decimal) *decimalBuilder {
	b.desc.Default = v
	return b
}

// Nullable makes the column nullable and the field optional on input.
func (b *decimalBuilder) Nullable() *decimalBuilder {
	b.desc.nullable = boolptr(true)
	return b
}

// NotNull forces the column to be non-nullable even when a default is set.
func (b *decimalBuilder) NotNull() *decimalBuilder {
	b.desc.nullable = boolptr(false)
	return b
}

// Column overrides the column name derived from the field name.
func (b *decimalBuilder) Column(name string) *decimalBuilder {
	b.desc.Column = name
	return b
}

// Rules sets a go-playground/validator rule string.
func (b *decimalBuilder) Rules(rules string) *decimalBuilder {
	b.desc.Rules = rules
	return b
}

// Comment sets the column comment.
func (b *decimalBuilder) Comment(c string) *decimalBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the ormar.Field interface by returning its descriptor.
func (b *decimalBuilder) Descriptor() *Descriptor {
	if b.desc.Precision <= 0 || b.scale < 0 {
		b.desc.err(errors.New("precision and scale are required for decimal fields"))
	}
	return b.desc.finalize()
}

// Enum returns a new enum field with the given name. The allowed values
// are declared with Values.
func Enum(name string) *enumBuilder {
	return &enumBuilder{desc: newDescriptor(name, TypeEnum)}
}

// enumBuilder is the builder for enum fields.
type enumBuilder struct {
	desc *Descriptor
}

// Values adds the given values to the allowed enum values.
func (b *enumBuilder) Values(values ...string) *enumBuilder {
	b.desc.Enums = append(b.desc.Enums, values...)
	return b
}

// Default sets the default value of the field.
func (b *enumBuilder) Default(v string) *enumBuilder {
	b.desc.Default = v
	return b
}

// Nullable makes the column nullable and the field optional on input.
func (b *enumBuilder) Nullable() *enumBuilder {
	b.desc.nullable = boolptr(true)
	return b
}

// NotNull forces the column to be non-nullable even when a default is set.
func (b *enumBuilder) NotNull() *enumBuilder {
	b.desc.nullable = boolptr(false)
	return b
}

// Index adds an index on the column.
func (b *enumBuilder) Index() *enumBuilder {
	b.desc.Index = true
	return b
}

// Column overrides the column name derived from the field name.
func (b *enumBuilder) Column(name string) *enumBuilder {
	b.desc.Column = name
	return b
}

// Rules sets a go-playground/validator rule string.
func (b *enumBuilder) Rules(rules string) *enumBuilder {
	b.desc.Rules = rules
	return b
}

// Comment sets the column comment.
func (b *enumBuilder) Comment(c string) *enumBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the ormar.Field interface by returning its descriptor.
func (b *enumBuilder) Descriptor() *Descriptor {
	if len(b.desc.Enums) == 0 {
		b.desc.err(errors.New("values are required for enum fields"))
	}
	return b.desc.finalize()
}
