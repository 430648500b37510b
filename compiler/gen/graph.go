// Package gen generates typed Go model structs from loaded schemas.
//
// The generator consumes a Graph of canonical schemas, either loaded
// directly from model definitions or read back from serialized schema
// snapshots, and emits one source file per model with struct fields,
// table metadata and validation tags derived from the declarations.
package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AirbornePM/ormar"
	"github.com/AirbornePM/ormar/models"
)

// Graph holds the schemas that code is generated for.
type Graph struct {
	Schemas []*models.Schema

	index map[string]int
}

// NewGraph loads the given models into a generation graph. Loading stops
// at the first invalid definition.
func NewGraph(ms ...ormar.Model) (*Graph, error) {
	g := &Graph{index: make(map[string]int, len(ms))}
	for _, m := range ms {
		s, err := models.Load(m)
		if err != nil {
			return nil, err
		}
		g.Add(s)
	}
	return g, nil
}

// Add inserts the schema into the graph. A schema with an existing name
// replaces the previous one.
func (g *Graph) Add(s *models.Schema) {
	if g.index == nil {
		g.index = make(map[string]int)
	}
	if i, ok := g.index[s.Name]; ok {
		g.Schemas[i] = s
		return
	}
	g.index[s.Name] = len(g.Schemas)
	g.Schemas = append(g.Schemas, s)
}

// Schema returns the named schema, if present.
func (g *Graph) Schema(name string) (*models.Schema, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.Schemas[i], true
}

// Names returns the schema names in insertion order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.Schemas))
	for i, s := range g.Schemas {
		names[i] = s.Name
	}
	return names
}

// LoadDir reads all serialized schema snapshots (*.json) from dir into a
// graph. Snapshots are the output of models.MarshalModel.
func LoadDir(dir string) (*Graph, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("gen: read schema directory: %w", err)
	}
	g := &Graph{index: make(map[string]int)}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		buf, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("gen: read schema %s: %w", e.Name(), err)
		}
		s, err := models.UnmarshalSchema(buf)
		if err != nil {
			return nil, fmt.Errorf("gen: decode schema %s: %w", e.Name(), err)
		}
		g.Add(s)
	}
	return g, nil
}
