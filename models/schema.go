package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/AirbornePM/ormar"
	"github.com/AirbornePM/ormar/naming"
	"github.com/AirbornePM/ormar/schema/field"
	"github.com/AirbornePM/ormar/schema/relation"
	"github.com/AirbornePM/ormar/validate"
)

// Schema is the canonical, serializable form of a loaded model.
type Schema struct {
	Name      string       `json:"name,omitempty"`
	Table     string       `json:"table,omitempty"`
	Config    ormar.Config `json:"config,omitempty"`
	Fields    []*Field     `json:"fields,omitempty"`
	Relations []*Relation  `json:"relations,omitempty"`

	// Validation is the derived validation schema. It is rebuilt on
	// unmarshal rather than serialized.
	Validation *validate.Schema `json:"-"`
}

// Position describes where a declaration came from.
type Position struct {
	Index      int  `json:"index,omitempty"`       // Index in the declaring field list.
	MixedIn    bool `json:"mixed_in,omitempty"`    // Declared by a mixin.
	MixinIndex int  `json:"mixin_index,omitempty"` // Mixin index in the mixin list.
}

// Field is the loaded form of a field declaration.
type Field struct {
	Name           string          `json:"name,omitempty"`
	Info           *field.TypeInfo `json:"type,omitempty"`
	Column         string          `json:"column,omitempty"`
	Temporal       string          `json:"temporal,omitempty"`
	Nullable       bool            `json:"nullable,omitempty"`
	PrimaryKey     bool            `json:"primary_key,omitempty"`
	Autoincrement  bool            `json:"autoincrement,omitempty"`
	Unique         bool            `json:"unique,omitempty"`
	Index          bool            `json:"index,omitempty"`
	Default        bool            `json:"default,omitempty"`
	DefaultValue   any             `json:"default_value,omitempty"`
	DefaultKind    reflect.Kind    `json:"default_kind,omitempty"`
	ServerDefault  string          `json:"server_default,omitempty"`
	ValidationOnly bool            `json:"validation_only,omitempty"`
	Size           int             `json:"size,omitempty"`
	Min            *float64        `json:"min,omitempty"`
	Max            *float64        `json:"max,omitempty"`
	Precision      int             `json:"precision,omitempty"`
	Scale          int             `json:"scale,omitempty"`
	Enums          []string        `json:"enums,omitempty"`
	Rules          string          `json:"rules,omitempty"`

	// Validators counts the declared validator functions. The functions
	// live only in memory (validators); after a snapshot roundtrip the
	// derived validation relies on the serialized constraints: Rules,
	// Size, Min, Max and Enums.
	Validators       int       `json:"validators,omitempty"`
	Comment          string    `json:"comment,omitempty"`
	Deprecated       bool      `json:"deprecated,omitempty"`
	DeprecatedReason string    `json:"deprecated_reason,omitempty"`
	Position         *Position `json:"position,omitempty"`

	// def holds the runtime default (value or function). It is not
	// serialized; DefaultValue carries the encodable part.
	def any

	// validators holds the declared validator functions.
	validators []any
}

// NewField creates a loaded field from a field descriptor.
// It returns an error if the descriptor recorded a declaration error.
func NewField(fd *field.Descriptor) (*Field, error) {
	if fd.Err != nil {
		return nil, ormar.NewModelDefinitionError("", fd.Name, fd.Err)
	}
	sf := &Field{
		Name:             fd.Name,
		Info:             fd.Info,
		Column:           fd.Column,
		Temporal:         fd.Temporal,
		Nullable:         fd.Nullable,
		PrimaryKey:       fd.PrimaryKey,
		Autoincrement:    fd.Autoincrement,
		Unique:           fd.Unique,
		Index:            fd.Index,
		Default:          fd.Default != nil,
		ServerDefault:    fd.ServerDefault,
		ValidationOnly:   fd.ValidationOnly,
		Size:             fd.Size,
		Min:              fd.Min,
		Max:              fd.Max,
		Precision:        fd.Precision,
		Scale:            fd.Scale,
		Enums:            fd.Enums,
		Rules:            fd.Rules,
		Validators:       len(fd.Validators),
		validators:       fd.Validators,
		Comment:          fd.Comment,
		Deprecated:       fd.Deprecated,
		DeprecatedReason: fd.DeprecatedReason,
		def:              fd.Default,
	}
	if sf.Info == nil {
		return nil, ormar.NewModelDefinitionError("", sf.Name, errors.New("missing type info"))
	}
	if sf.Default {
		sf.DefaultKind = reflect.TypeOf(fd.Default).Kind()
	}
	// Keep the default value only when it can be encoded, i.e. it is not
	// a function like time.Now.
	if _, err := json.Marshal(fd.Default); err == nil {
		sf.DefaultValue = fd.Default
	}
	return sf, nil
}

// DefaultAny returns the runtime default of the field: the declared value
// or function when available, otherwise the deserialized default value.
func (f *Field) DefaultAny() any {
	if f.def != nil {
		return f.def
	}
	return f.DefaultValue
}

// defaults restores the numeric type of deserialized default values;
// JSON decodes all numbers as float64.
func (f *Field) defaults() error {
	if !f.Default || f.Info == nil || !f.Info.Numeric() || f.DefaultKind == reflect.Func {
		return nil
	}
	n, ok := f.DefaultValue.(float64)
	if !ok {
		return fmt.Errorf("models: unexpected default value type for field %q", f.Name)
	}
	if f.Info.Type.Integer() {
		f.DefaultValue = int64(n)
	}
	return nil
}

// Relation is the loaded form of a relation declaration.
type Relation struct {
	Name        string            `json:"name,omitempty"`
	Type        string            `json:"type,omitempty"`
	Kind        relation.Kind     `json:"kind,omitempty"`
	Nullable    bool              `json:"nullable,omitempty"`
	RelatedName string            `json:"related_name,omitempty"`
	Through     *relation.Through `json:"through,omitempty"`
	OnDelete    string            `json:"on_delete,omitempty"`
	OnUpdate    string            `json:"on_update,omitempty"`
	SkipReverse bool              `json:"skip_reverse,omitempty"`
	Comment     string            `json:"comment,omitempty"`
	Position    *Position         `json:"position,omitempty"`
}

// NewRelation creates a loaded relation from a relation descriptor.
func NewRelation(rd *relation.Descriptor) (*Relation, error) {
	if rd.Err != nil {
		return nil, ormar.NewModelDefinitionError("", rd.Name, rd.Err)
	}
	return &Relation{
		Name:        rd.Name,
		Type:        rd.Type,
		Kind:        rd.Kind,
		Nullable:    rd.Nullable,
		RelatedName: rd.RelatedName,
		Through:     rd.Through,
		OnDelete:    rd.OnDelete,
		OnUpdate:    rd.OnUpdate,
		SkipReverse: rd.SkipReverse,
		Comment:     rd.Comment,
	}, nil
}

// Field returns the named loaded field.
func (s *Schema) Field(name string) (*Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Relation returns the named loaded relation.
func (s *Schema) Relation(name string) (*Relation, bool) {
	for _, r := range s.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// addField appends a loaded field. A model field that shares its name
// with a mixed-in field overrides it in place.
func (s *Schema) addField(f *Field) {
	for i, prev := range s.Fields {
		if prev.Name == f.Name {
			s.Fields[i] = f
			return
		}
	}
	s.Fields = append(s.Fields, f)
}

// Load collects a model's declarations into its canonical schema and
// derives the validation schema: mixin fields first, then own fields,
// then relations, with ancestor exclusions applied last.
func Load(m ormar.Model) (*Schema, error) {
	name := indirect(reflect.TypeOf(m)).Name()
	cfg, err := safeConfig(m)
	if err != nil {
		return nil, fmt.Errorf("models: schema %q: %w", name, err)
	}
	s := &Schema{Name: name, Config: cfg, Table: cfg.Table}
	if s.Table == "" {
		s.Table = naming.Table(name)
	}
	if err := s.loadMixin(m); err != nil {
		return nil, fmt.Errorf("models: schema %q: %w", s.Name, err)
	}
	if err := s.loadFields(m); err != nil {
		return nil, fmt.Errorf("models: schema %q: %w", s.Name, err)
	}
	if err := s.loadRelations(m); err != nil {
		return nil, fmt.Errorf("models: schema %q: %w", s.Name, err)
	}
	if !cfg.Abstract && s.primaryKey() == nil {
		return nil, ormar.NewModelDefinitionError(s.Name, "", errors.New("model has no primary key"))
	}
	if err := s.buildValidation(); err != nil {
		return nil, fmt.Errorf("models: schema %q: %w", s.Name, err)
	}
	return s, nil
}

// primaryKey returns the primary key field, if declared.
func (s *Schema) primaryKey() *Field {
	for _, f := range s.Fields {
		if f.PrimaryKey {
			return f
		}
	}
	return nil
}

// loadMixin loads the mixed-in declarations of the model.
func (s *Schema) loadMixin(m ormar.Model) error {
	mixin, err := safeMixin(m)
	if err != nil {
		return err
	}
	for i, mx := range mixin {
		name := indirect(reflect.TypeOf(mx)).Name()
		fields, ferr := safeFields(mx)
		if ferr != nil {
			return fmt.Errorf("mixin %q: %w", name, ferr)
		}
		for j, f := range fields {
			sf, ferr := NewField(f.Descriptor())
			if ferr != nil {
				return fmt.Errorf("mixin %q: %w", name, ferr)
			}
			sf.Position = &Position{Index: j, MixedIn: true, MixinIndex: i}
			s.addField(sf)
		}
		relations, rerr := safeRelations(mx)
		if rerr != nil {
			return fmt.Errorf("mixin %q: %w", name, rerr)
		}
		for _, r := range relations {
			nr, rerr := NewRelation(r.Descriptor())
			if rerr != nil {
				return fmt.Errorf("mixin %q: %w", name, rerr)
			}
			nr.Position = &Position{MixedIn: true, MixinIndex: i}
			s.resolveThrough(nr)
			s.Relations = append(s.Relations, nr)
		}
	}
	return nil
}

// loadFields loads the model's own field declarations.
func (s *Schema) loadFields(m ormar.Model) error {
	fields, err := safeFields(m)
	if err != nil {
		return err
	}
	for i, f := range fields {
		sf, err := NewField(f.Descriptor())
		if err != nil {
			return err
		}
		sf.Position = &Position{Index: i}
		s.addField(sf)
	}
	return nil
}

// loadRelations loads the model's own relation declarations.
func (s *Schema) loadRelations(m ormar.Model) error {
	relations, err := safeRelations(m)
	if err != nil {
		return err
	}
	for i, r := range relations {
		nr, err := NewRelation(r.Descriptor())
		if err != nil {
			return err
		}
		nr.Position = &Position{Index: i}
		if nr.RelatedName == "" && !nr.SkipReverse {
			nr.RelatedName = naming.RelatedName(s.Name)
		}
		s.resolveThrough(nr)
		s.Relations = append(s.Relations, nr)
	}
	return nil
}

// resolveThrough synthesizes the junction model of a many-to-many
// relation declared without an explicit through model.
func (s *Schema) resolveThrough(r *Relation) {
	if r.Kind != relation.KindManyToMany || r.Through != nil {
		return
	}
	model := naming.ThroughModel(s.Name, r.Type)
	r.Through = &relation.Through{
		Name: naming.Table(model),
		Type: model,
	}
}

// buildValidation derives the validation schema of the loaded model.
func (s *Schema) buildValidation() error {
	s.Validation = validate.NewSchema(s.Name, validate.DefaultConfig())
	for _, f := range s.Fields {
		vf, err := DeriveValidationField(f.Name, s)
		if err != nil {
			return err
		}
		s.Validation.Register(vf)
	}
	for _, r := range s.Relations {
		if r.Kind == relation.KindManyToMany {
			if err := RegisterRelationField(r.Name, s, r); err != nil {
				return err
			}
			continue
		}
		s.Validation.Register(&validate.Field{
			Name:     r.Name,
			Required: !r.Nullable,
			Ref:      r.Type,
		})
	}
	ExcludeInheritedFields(s)
	return nil
}

// MarshalModel loads the model and encodes its canonical schema as JSON.
func MarshalModel(m ormar.Model) ([]byte, error) {
	s, err := Load(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalSchema decodes a serialized schema and rebuilds its derived
// validation schema.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(buf, s); err != nil {
		return nil, err
	}
	for _, f := range s.Fields {
		if err := f.defaults(); err != nil {
			return nil, err
		}
	}
	if err := s.buildValidation(); err != nil {
		return nil, fmt.Errorf("models: schema %q: %w", s.Name, err)
	}
	return s, nil
}

// safeFields wraps the Fields method with recover to ensure no panics
// during loading.
func safeFields(fd interface{ Fields() []ormar.Field }) (fields []ormar.Field, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Fields panics: %v", fd, v)
			fields = nil
		}
	}()
	return fd.Fields(), nil
}

// safeRelations wraps the Relations method with recover to ensure no
// panics during loading.
func safeRelations(rd interface{ Relations() []ormar.Relation }) (relations []ormar.Relation, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Relations panics: %v", rd, v)
			relations = nil
		}
	}()
	return rd.Relations(), nil
}

// safeMixin wraps the Mixin method with recover to ensure no panics
// during loading.
func safeMixin(m ormar.Model) (mixin []ormar.Mixin, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("model.Mixin panics: %v", v)
			mixin = nil
		}
	}()
	return m.Mixin(), nil
}

// safeConfig wraps the Config method with recover to ensure no panics
// during loading.
func safeConfig(m ormar.Model) (cfg ormar.Config, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("model.Config panics: %v", v)
		}
	}()
	return m.Config(), nil
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
