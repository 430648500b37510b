// Package naming derives the identifier spellings used across the module:
// column and table names from model declarations, Go identifiers for
// generated code, and the synthesized names of many-to-many junction
// models.
package naming

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// acronyms are kept upper-case in generated Go identifiers.
var acronyms = map[string]bool{
	"API":  true,
	"DB":   true,
	"HTTP": true,
	"ID":   true,
	"JSON": true,
	"SQL":  true,
	"UI":   true,
	"UID":  true,
	"URI":  true,
	"URL":  true,
	"UUID": true,
}

// Snake returns the snake_case form of the given identifier.
func Snake(s string) string {
	return inflect.Underscore(s)
}

// Pascal returns the PascalCase Go identifier for the given snake_case
// name, keeping common acronyms upper-case: "user_id" becomes "UserID".
func Pascal(s string) string {
	parts := strings.Split(Snake(s), "_")
	for i, p := range parts {
		if u := strings.ToUpper(p); acronyms[u] {
			parts[i] = u
			continue
		}
		parts[i] = inflect.Camelize(p)
	}
	return strings.Join(parts, "")
}

// Table returns the default table name of a model: the pluralized
// snake_case model name, e.g. "UserProfile" becomes "user_profiles".
func Table(model string) string {
	return inflect.Tableize(model)
}

// JoinTable returns the default table name of the junction between two
// models, e.g. ("User", "Group") becomes "users_groups".
func JoinTable(a, b string) string {
	return inflect.Tableize(a) + "_" + inflect.Tableize(b)
}

// ThroughModel returns the synthesized junction model name for a
// many-to-many relation declared without an explicit through model,
// e.g. ("User", "Group") becomes "UserGroup".
func ThroughModel(a, b string) string {
	return Pascal(a) + Pascal(b)
}

// RelatedName returns the default reverse accessor for a relation
// declared on the given model, e.g. "Post" becomes "posts".
func RelatedName(model string) string {
	return inflect.Tableize(model)
}
