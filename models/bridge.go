package models

import (
	"strconv"
	"strings"

	"github.com/AirbornePM/ormar"
	"github.com/AirbornePM/ormar/schema/relation"
	"github.com/AirbornePM/ormar/validate"
)

// CollectDeclaredFields filters the namespace down to its field
// declarations, in declaration order. The namespace is not mutated.
func CollectDeclaredFields(ns *Namespace) []Declared {
	var declared []Declared
	for _, name := range ns.Names() {
		v, _ := ns.Get(name)
		f, ok := v.(ormar.Field)
		if !ok {
			continue
		}
		declared = append(declared, Declared{Name: name, Field: f.Descriptor()})
	}
	return declared
}

// PopulateDefaults scans the namespace for field and relation
// declarations (both declaration styles), converts each into a validation
// field descriptor carrying its default, and rewrites the namespace entry
// to that descriptor so the validation layer can consume the namespace
// directly. Relation entries get synthesized reference bindings.
//
// It returns the mutated namespace and the extracted declarations.
// A namespace without declarations is returned unchanged.
func PopulateDefaults(ns *Namespace) (*Namespace, []Declared, error) {
	var declared []Declared
	for _, name := range ns.Names() {
		v, _ := ns.Get(name)
		switch d := v.(type) {
		case ormar.Field:
			fd := d.Descriptor()
			if fd.Err != nil {
				return nil, nil, ormar.NewModelDefinitionError("", name, fd.Err)
			}
			ns.Assign(name, &validate.Field{
				Name:       fd.Name,
				Type:       fd.Info,
				Required:   requiredField(fd.Nullable, fd.Default != nil, fd.ServerDefault != "", fd.Autoincrement),
				Default:    fd.Default,
				Rules:      composeRules(fd.Rules, fd.Size, fd.Min, fd.Max, fd.Enums),
				Validators: fd.Validators,
			})
			declared = append(declared, Declared{Name: name, Field: fd})
		case ormar.Relation:
			rd := d.Descriptor()
			if rd.Err != nil {
				return nil, nil, ormar.NewModelDefinitionError("", name, rd.Err)
			}
			ns.Assign(name, &validate.Field{
				Name:     rd.Name,
				Required: rd.Kind == relation.KindForeignKey && !rd.Nullable,
				Ref:      rd.Type,
				List:     rd.Kind == relation.KindManyToMany,
			})
			declared = append(declared, Declared{Name: name, Relation: rd})
		}
	}
	return ns, declared, nil
}

// DeriveValidationField looks up the named field in the model's field
// collection and constructs a validation field descriptor of the same
// type, whose required-ness matches the declaration: a field is required
// unless it is nullable, has a default (client or server side), or is an
// autoincrementing primary key.
func DeriveValidationField(name string, s *Schema) (*validate.Field, error) {
	f, ok := s.Field(name)
	if !ok {
		return nil, ormar.NewFieldNotFoundError(s.Name, name)
	}
	vf := &validate.Field{
		Name:       f.Name,
		Type:       f.Info,
		Required:   requiredField(f.Nullable, f.Default, f.ServerDefault != "", f.Autoincrement),
		Default:    f.DefaultAny(),
		Rules:      composeRules(f.Rules, f.Size, f.Min, f.Max, f.Enums),
		Validators: f.validators,
	}
	if f.Position != nil {
		vf.MixedIn = f.Position.MixedIn
	}
	return vf, nil
}

// RegisterRelationField resolves the junction model of a many-to-many
// relation and registers a validation field under the given name that
// targets it. The model's validation schema is mutated in place.
//
// A relation that is not many-to-many, or whose junction model cannot be
// resolved, is a ThroughModelError rather than a silent no-op.
func RegisterRelationField(name string, s *Schema, rel *Relation) error {
	if rel.Kind != relation.KindManyToMany || rel.Through == nil || rel.Through.Type == "" {
		return ormar.NewThroughModelError(s.Name, rel.Name)
	}
	s.Validation.Register(&validate.Field{
		Name: name,
		Ref:  rel.Through.Type,
		List: true,
	})
	return nil
}

// ExcludeInheritedFields removes the validation fields that the model's
// configuration marks for exclusion from ancestor definitions. Only
// mixed-in fields are removed; an empty exclusion list, or a name that is
// not a mixed-in field, is a no-op.
func ExcludeInheritedFields(s *Schema) {
	for _, name := range s.Config.ExcludeParentFields {
		vf, ok := s.Validation.Field(name)
		if !ok || !vf.MixedIn {
			continue
		}
		vf.Exclude = true
		s.Validation.Remove(name)
	}
}

// requiredField reports whether a declaration is required on input.
func requiredField(nullable, hasDefault, hasServerDefault, autoincrement bool) bool {
	return !nullable && !hasDefault && !hasServerDefault && !autoincrement
}

// composeRules extends the declared rule string with the serializable
// declaration constraints: size for strings and bytes, numeric bounds,
// and enum values. The result survives a schema snapshot roundtrip,
// unlike the declared validator functions.
func composeRules(rules string, size int, min, max *float64, enums []string) string {
	parts := make([]string, 0, 4)
	if rules != "" {
		parts = append(parts, rules)
	}
	if min != nil {
		parts = append(parts, "min="+formatBound(*min))
	}
	switch {
	case max != nil:
		parts = append(parts, "max="+formatBound(*max))
	case size > 0:
		parts = append(parts, "max="+strconv.Itoa(size))
	}
	if len(enums) > 0 {
		parts = append(parts, "oneof="+strings.Join(enums, " "))
	}
	return strings.Join(parts, ",")
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
