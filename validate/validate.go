// Package validate holds the validation-schema surface derived from model
// declarations: per-field validation descriptors, ordered model schemas,
// and the base configuration of generated schemas.
//
// Rule strings use go-playground/validator syntax. A schema compiles its
// field rules once and validates either attribute maps or, when
// FromAttributes is enabled, plain structs whose exported fields are read
// by snake_case name:
//
//	s := validate.NewSchema("User", validate.DefaultConfig())
//	s.Register(&validate.Field{Name: "email", Required: true, Rules: "email"})
//	err := s.Validate(map[string]any{"email": "a@b.co"})
package validate

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/AirbornePM/ormar"
	"github.com/AirbornePM/ormar/naming"
	"github.com/AirbornePM/ormar/schema/field"
)

// Config is the base configuration of a validation schema.
type Config struct {
	// FromAttributes enables constructing and validating instances from
	// the attributes of arbitrary objects instead of attribute maps.
	FromAttributes bool `json:"from_attributes" yaml:"from_attributes"`
}

// DefaultConfig returns the base configuration for generated validation
// schemas. It returns a fresh object on every call; callers may mutate
// the result without affecting other schemas.
func DefaultConfig() *Config {
	return &Config{FromAttributes: true}
}

// A Field describes one field of a validation schema: its value type,
// required-ness and validation rules.
type Field struct {
	// Name is the field name, snake_case.
	Name string `json:"name" yaml:"name"`

	// Type is the value type of the field. Nil for relation fields.
	Type *field.TypeInfo `json:"type,omitempty" yaml:"type,omitempty"`

	// Required reports whether the field must be present on input.
	Required bool `json:"required" yaml:"required"`

	// Default is the value or niladic function populated for absent input.
	Default any `json:"-" yaml:"-"`

	// Rules is a go-playground/validator rule string.
	Rules string `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Validators holds the declared validator functions of the field,
	// each a func(T) error. They run after the rule checks on present
	// values and do not survive serialization.
	Validators []any `json:"-" yaml:"-"`

	// MixedIn marks fields contributed by an ancestor definition.
	MixedIn bool `json:"mixed_in,omitempty" yaml:"mixed_in,omitempty"`

	// Exclude marks the field for removal from the final schema.
	Exclude bool `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Ref names the target model for relation fields.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`

	// List reports whether the field holds a list of referenced models.
	List bool `json:"list,omitempty" yaml:"list,omitempty"`
}

// DefaultValue resolves the field default. Function defaults are invoked
// on every call. The second return value reports whether a default exists.
func (f *Field) DefaultValue() (any, bool) {
	if f.Default == nil {
		return nil, false
	}
	v := reflect.ValueOf(f.Default)
	if v.Kind() != reflect.Func {
		return f.Default, true
	}
	if v.Type().NumIn() != 0 || v.Type().NumOut() != 1 {
		return nil, false
	}
	return v.Call(nil)[0].Interface(), true
}

// A Schema is the ordered validation field set of one model.
type Schema struct {
	Name   string
	Config *Config

	fields []*Field
	index  map[string]int

	compiled *validator.Validate
	rules    map[string]any
}

// NewSchema returns an empty validation schema for the named model.
// A nil config is replaced with DefaultConfig.
func NewSchema(name string, cfg *Config) *Schema {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Schema{
		Name:   name,
		Config: cfg,
		index:  make(map[string]int),
	}
}

// Register adds the field to the schema. A field with an existing name
// replaces the previous one, keeping its position.
func (s *Schema) Register(f *Field) {
	if i, ok := s.index[f.Name]; ok {
		s.fields[i] = f
	} else {
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	s.compiled = nil
}

// Field returns the named field, if registered.
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Fields returns the registered fields in registration order.
func (s *Schema) Fields() []*Field {
	return s.fields
}

// Names returns the registered field names in registration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of registered fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Remove deletes the named field from the schema and reports whether it
// was registered. Positions of the remaining fields are preserved.
func (s *Schema) Remove(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.fields = append(s.fields[:i], s.fields[i+1:]...)
	delete(s.index, name)
	for n, j := range s.index {
		if j > i {
			s.index[n] = j - 1
		}
	}
	s.compiled = nil
	return true
}

// Compile builds the validator and the per-field rule set. It is called
// lazily by Validate; explicit calls surface rule composition eagerly.
func (s *Schema) Compile() {
	s.rules = make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		if f.Ref != "" {
			// Nested validation is delegated to the target schema; only
			// the presence of required references is enforced here.
			if f.Required {
				s.rules[f.Name] = "required"
			}
			continue
		}
		rule := f.Rules
		switch {
		case f.Required && rule == "":
			rule = "required"
		case f.Required:
			rule = "required," + rule
		case rule != "":
			rule = "omitempty," + rule
		}
		if rule != "" {
			s.rules[f.Name] = rule
		}
	}
	s.compiled = validator.New(validator.WithRequiredStructEnabled())
}

// Validate checks the given input against the schema. Attribute maps are
// validated directly. Any other value requires FromAttributes and is read
// through its exported struct fields, keyed by snake_case name.
//
// Rule checks run first; the declared validator functions of a field run
// afterwards on present values, and are skipped when a rule already
// failed for the field.
func (s *Schema) Validate(v any) error {
	m, err := s.attributes(v)
	if err != nil {
		return err
	}
	if s.compiled == nil {
		s.Compile()
	}
	res := s.compiled.ValidateMap(m, s.rules)
	failed := make(map[string]error, len(res))
	for name, r := range res {
		if err, ok := r.(error); ok {
			failed[name] = ormar.NewValidationError(name, err)
		}
	}
	for _, f := range s.fields {
		if len(f.Validators) == 0 {
			continue
		}
		if _, ok := failed[f.Name]; ok {
			continue
		}
		value, ok := m[f.Name]
		if !ok {
			continue
		}
		if err := runValidators(f, value); err != nil {
			failed[f.Name] = err
		}
	}
	if len(failed) == 0 {
		return nil
	}
	names := make([]string, 0, len(failed))
	for name := range failed {
		names = append(names, name)
	}
	sort.Strings(names)
	errs := make([]error, 0, len(names))
	for _, name := range names {
		errs = append(errs, failed[name])
	}
	return ormar.NewAggregateError(errs...)
}

// runValidators calls the field's declared validator functions on the
// value, stopping at the first failure.
func runValidators(f *Field, value any) error {
	for _, fn := range f.Validators {
		fv := reflect.ValueOf(fn)
		if fv.Kind() != reflect.Func || fv.Type().NumIn() != 1 || fv.Type().NumOut() != 1 {
			continue
		}
		arg, ok := coerce(reflect.ValueOf(value), fv.Type().In(0))
		if !ok {
			return ormar.NewValidationError(f.Name, fmt.Errorf("invalid value type %T", value))
		}
		if err, _ := fv.Call([]reflect.Value{arg})[0].Interface().(error); err != nil {
			return ormar.NewValidationError(f.Name, err)
		}
	}
	return nil
}

// coerce converts the value to the validator argument type. Numeric
// values convert across kinds; everything else must be assignable.
func coerce(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	if v.Type().AssignableTo(t) {
		return v, true
	}
	if numericKind(v.Kind()) && numericKind(t.Kind()) {
		return v.Convert(t), true
	}
	return reflect.Value{}, false
}

func numericKind(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}

// ApplyDefaults populates absent keys of the attribute map with the field
// defaults, resolving function defaults. The map is mutated and returned;
// a nil map is allocated first.
func (s *Schema) ApplyDefaults(m map[string]any) map[string]any {
	if m == nil {
		m = make(map[string]any, len(s.fields))
	}
	for _, f := range s.fields {
		if _, ok := m[f.Name]; ok {
			continue
		}
		if v, ok := f.DefaultValue(); ok {
			m[f.Name] = v
		}
	}
	return m
}

// attributes converts the input to an attribute map.
func (s *Schema) attributes(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	if !s.Config.FromAttributes {
		return nil, fmt.Errorf("validate: schema %s: non-map input requires FromAttributes", s.Name)
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("validate: schema %s: cannot read attributes of %T", s.Name, v)
	}
	m := make(map[string]any, rv.NumField())
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		ft := rt.Field(i)
		if !ft.IsExported() || ft.Anonymous {
			continue
		}
		m[naming.Snake(ft.Name)] = rv.Field(i).Interface()
	}
	return m, nil
}
