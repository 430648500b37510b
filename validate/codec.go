package validate

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Dump validates the input, populates absent fields with their defaults,
// and encodes the resulting attribute map with msgpack.
func (s *Schema) Dump(v any) ([]byte, error) {
	m, err := s.dumpMap(v)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(m)
}

// DumpJSON is like Dump with JSON encoding.
func (s *Schema) DumpJSON(v any) ([]byte, error) {
	m, err := s.dumpMap(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func (s *Schema) dumpMap(v any) (map[string]any, error) {
	m, err := s.attributes(v)
	if err != nil {
		return nil, err
	}
	m = s.ApplyDefaults(m)
	if err := s.Validate(m); err != nil {
		return nil, err
	}
	// Restrict the dump to registered fields; extra attributes of the
	// source object are not part of the schema.
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		if v, ok := m[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out, nil
}

// snapshot is the serialized shape of a schema.
type snapshot struct {
	Name           string   `yaml:"name"`
	FromAttributes bool     `yaml:"from_attributes"`
	Fields         []*Field `yaml:"fields"`
}

// Snapshot encodes the schema description as YAML, for tooling and
// schema diffing.
func (s *Schema) Snapshot() ([]byte, error) {
	return yaml.Marshal(snapshot{
		Name:           s.Name,
		FromAttributes: s.Config.FromAttributes,
		Fields:         s.fields,
	})
}
