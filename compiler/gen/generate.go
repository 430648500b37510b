package gen

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/rs/zerolog"

	"github.com/AirbornePM/ormar/models"
	"github.com/AirbornePM/ormar/naming"
	"github.com/AirbornePM/ormar/schema/field"
	"github.com/AirbornePM/ormar/schema/relation"
)

// Generator emits one Go source file per schema using Jennifer.
// Import tracking is handled by Jennifer; the writer still runs the
// output through goimports to normalize grouping.
type Generator struct {
	graph   *Graph
	outDir  string
	pkg     string
	workers int
	log     zerolog.Logger
}

// NewGenerator creates a generator writing into outDir. The package name
// defaults to the base name of the output directory.
func NewGenerator(g *Graph, outDir string) *Generator {
	return &Generator{
		graph:   g,
		outDir:  outDir,
		pkg:     pkgName(outDir),
		workers: runtime.GOMAXPROCS(0),
		log:     zerolog.Nop(),
	}
}

// WithPackage sets the output package name.
func (g *Generator) WithPackage(pkg string) *Generator {
	if pkg != "" {
		g.pkg = pkg
	}
	return g
}

// WithWorkers sets the number of parallel writer workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithLogger sets the logger used for per-file progress.
func (g *Generator) WithLogger(log zerolog.Logger) *Generator {
	g.log = log
	return g
}

// Generate renders and writes all schema files in parallel.
func (g *Generator) Generate(ctx context.Context) error {
	w := newWriter(g.outDir, g.workers, g.log)
	for _, s := range g.graph.Schemas {
		if s.Config.Abstract {
			continue
		}
		f, err := g.schemaFile(s)
		if err != nil {
			return err
		}
		w.add(fileName(s), f)
	}
	return w.flush(ctx)
}

// schemaFile builds the source file of one schema: the model struct, its
// table metadata and the column list.
func (g *Generator) schemaFile(s *models.Schema) (*jen.File, error) {
	ident := naming.Pascal(s.Name)
	f := jen.NewFile(g.pkg)
	f.HeaderComment("Code generated by ormar, DO NOT EDIT.")

	fields, err := g.structFields(s)
	if err != nil {
		return nil, err
	}
	f.Commentf("%s is the generated model of the %s schema.", ident, s.Name)
	f.Type().Id(ident).Struct(fields...)

	f.Commentf("TableName returns the table the %s model is stored in.", ident)
	f.Func().Params(jen.Id(ident)).Id("TableName").Params().String().Block(
		jen.Return(jen.Lit(s.Table)),
	)

	columns := make([]jen.Code, 0, len(s.Fields))
	for _, sf := range s.Fields {
		if sf.ValidationOnly {
			continue
		}
		columns = append(columns, jen.Lit(columnName(sf)))
	}
	f.Commentf("%sColumns holds the column names of the %s table.", ident, s.Table)
	f.Var().Id(ident + "Columns").Op("=").Index().String().Values(columns...)
	return f, nil
}

// structFields renders the struct fields of the schema: declared columns
// first, then relation accessors.
func (g *Generator) structFields(s *models.Schema) ([]jen.Code, error) {
	codes := make([]jen.Code, 0, len(s.Fields)+len(s.Relations))
	for _, sf := range s.Fields {
		typ, err := typeRef(sf)
		if err != nil {
			return nil, fmt.Errorf("gen: schema %q: field %q: %w", s.Name, sf.Name, err)
		}
		stmt := jen.Id(naming.Pascal(sf.Name)).Add(typ).Tag(fieldTags(s, sf))
		if sf.Comment != "" {
			stmt = stmt.Comment(sf.Comment)
		}
		codes = append(codes, stmt)
	}
	for _, r := range s.Relations {
		target := naming.Pascal(r.Type)
		stmt := jen.Id(naming.Pascal(r.Name))
		if r.Kind == relation.KindManyToMany {
			stmt = stmt.Index().Id(target)
		} else {
			stmt = stmt.Op("*").Id(target)
		}
		codes = append(codes, stmt.Tag(map[string]string{"json": r.Name + ",omitempty"}))
	}
	return codes, nil
}

// fieldTags composes the struct tags of a field: the json/db names and
// the validator rule compiled for the validation schema.
func fieldTags(s *models.Schema, sf *models.Field) map[string]string {
	required := false
	if s.Validation != nil {
		if vf, ok := s.Validation.Field(sf.Name); ok {
			required = vf.Required
		}
	}
	name := sf.Name
	if !required {
		name += ",omitempty"
	}
	tags := map[string]string{"json": name}
	if !sf.ValidationOnly {
		tags["db"] = columnName(sf)
	}
	if rule := validateTag(s, sf.Name); rule != "" {
		tags["validate"] = rule
	}
	return tags
}

// validateTag returns the composed validator rule of the named field.
func validateTag(s *models.Schema, name string) string {
	if s.Validation == nil {
		return ""
	}
	vf, ok := s.Validation.Field(name)
	if !ok {
		return ""
	}
	switch {
	case vf.Required && vf.Rules == "":
		return "required"
	case vf.Required:
		return "required," + vf.Rules
	case vf.Rules != "":
		return "omitempty," + vf.Rules
	}
	return ""
}

// typeRef maps the field type to its Go spelling. Nullable fields of
// non-nillable types are rendered as pointers.
func typeRef(sf *models.Field) (jen.Code, error) {
	base, err := baseType(sf.Info)
	if err != nil {
		return nil, err
	}
	if sf.Nullable && !sf.Info.Nillable {
		return jen.Op("*").Add(base), nil
	}
	return base, nil
}

func baseType(info *field.TypeInfo) (*jen.Statement, error) {
	if info.PkgPath != "" {
		name := info.Ident
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		return jen.Qual(info.PkgPath, name), nil
	}
	switch info.Type {
	case field.TypeBool:
		return jen.Bool(), nil
	case field.TypeTime:
		return jen.Qual("time", "Time"), nil
	case field.TypeJSON:
		return jen.Qual("encoding/json", "RawMessage"), nil
	case field.TypeBytes:
		return jen.Index().Byte(), nil
	case field.TypeEnum, field.TypeString:
		return jen.String(), nil
	case field.TypeInt16:
		return jen.Int16(), nil
	case field.TypeInt:
		return jen.Int(), nil
	case field.TypeInt64:
		return jen.Int64(), nil
	case field.TypeFloat64:
		return jen.Float64(), nil
	}
	return nil, fmt.Errorf("unsupported type %q", info)
}

// columnName returns the column a field is stored in.
func columnName(sf *models.Field) string {
	if sf.Column != "" {
		return sf.Column
	}
	return sf.Name
}

// fileName returns the output file of a schema.
func fileName(s *models.Schema) string {
	return naming.Snake(s.Name) + "_model.go"
}

func pkgName(outDir string) string {
	base := strings.TrimRight(outDir, "/")
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if base == "" || base == "." {
		return "models"
	}
	return base
}
