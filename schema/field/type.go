//go:generate go run internal/gen.go

package field

// A Type represents a field value type.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeJSON
	TypeUUID
	TypeBytes
	TypeEnum
	TypeString
	TypeInt16
	TypeInt
	TypeInt64
	TypeFloat64
	TypeDecimal
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeTime:    "time.Time",
	TypeJSON:    "json.RawMessage",
	TypeUUID:    "uuid.UUID",
	TypeBytes:   "[]byte",
	TypeEnum:    "string",
	TypeString:  "string",
	TypeInt16:   "int16",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeFloat64: "float64",
	TypeDecimal: "decimal.Decimal",
}

// String returns the Go type spelling of the field type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a valid field type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt16 && t <= TypeFloat64
}

// Integer reports if the given type is an integral type.
func (t Type) Integer() bool {
	return t >= TypeInt16 && t <= TypeInt64
}

// Float reports if the given type is a float type.
func (t Type) Float() bool {
	return t == TypeFloat64
}

// TypeInfo holds the type information of a field.
type TypeInfo struct {
	Type     Type   `json:"type,omitempty"`
	Ident    string `json:"ident,omitempty"`
	PkgPath  string `json:"pkg_path,omitempty"`
	Nillable bool   `json:"nillable,omitempty"`
}

// String returns the string representation of the type.
func (t TypeInfo) String() string {
	if t.Ident != "" {
		return t.Ident
	}
	return t.Type.String()
}

// Valid reports if the type info holds a valid field type.
func (t TypeInfo) Valid() bool {
	return t.Type.Valid()
}

// Numeric reports if the underlying field type is numeric.
func (t TypeInfo) Numeric() bool {
	return t.Type.Numeric()
}
