package ormar

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrFieldNotFound is returned when a named field does not exist in a
	// model's field collection.
	ErrFieldNotFound = errors.New("ormar: field not found")

	// ErrThroughModel is returned when a many-to-many relation has no
	// resolvable junction model.
	ErrThroughModel = errors.New("ormar: relation has no through model")
)

// ModelDefinitionError reports an invalid field or relation declaration.
// It is returned at load time; builders record the error in the descriptor
// instead of failing at declaration time.
type ModelDefinitionError struct {
	Model string // Model name, may be empty for standalone declarations
	Name  string // Field or relation name
	Err   error  // Underlying declaration error
}

// Error returns the error string.
func (e *ModelDefinitionError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("ormar: model %s: field %q: %v", e.Model, e.Name, e.Err)
	}
	return fmt.Sprintf("ormar: field %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ModelDefinitionError) Unwrap() error {
	return e.Err
}

// NewModelDefinitionError returns a new ModelDefinitionError for the given
// declaration.
func NewModelDefinitionError(model, name string, err error) *ModelDefinitionError {
	return &ModelDefinitionError{Model: model, Name: name, Err: err}
}

// IsModelDefinitionError returns true if the error is a ModelDefinitionError.
func IsModelDefinitionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ModelDefinitionError
	return errors.As(err, &e)
}

// FieldNotFoundError represents a lookup of a field name that is not part
// of the model's field collection.
type FieldNotFoundError struct {
	model string
	field string
}

// Error returns the error string.
func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("ormar: model %s has no field %q", e.model, e.field)
}

// Is reports whether the target error matches FieldNotFoundError.
// This allows errors.Is(err, ErrFieldNotFound) to return true.
func (e *FieldNotFoundError) Is(err error) bool {
	return err == ErrFieldNotFound
}

// Model returns the model name.
func (e *FieldNotFoundError) Model() string {
	return e.model
}

// Field returns the field name that was looked up.
func (e *FieldNotFoundError) Field() string {
	return e.field
}

// NewFieldNotFoundError returns a new FieldNotFoundError for the given
// model and field name.
func NewFieldNotFoundError(model, field string) *FieldNotFoundError {
	return &FieldNotFoundError{model: model, field: field}
}

// IsFieldNotFound returns true if the error is a FieldNotFoundError.
func IsFieldNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *FieldNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrFieldNotFound)
}

// ThroughModelError represents a many-to-many relation whose junction
// model could not be resolved.
type ThroughModelError struct {
	model    string
	relation string
}

// Error returns the error string.
func (e *ThroughModelError) Error() string {
	if e.model != "" {
		return fmt.Sprintf("ormar: model %s: relation %q has no through model", e.model, e.relation)
	}
	return fmt.Sprintf("ormar: relation %q has no through model", e.relation)
}

// Is reports whether the target error matches ThroughModelError.
// This allows errors.Is(err, ErrThroughModel) to return true.
func (e *ThroughModelError) Is(err error) bool {
	return err == ErrThroughModel
}

// Relation returns the relation name.
func (e *ThroughModelError) Relation() string {
	return e.relation
}

// NewThroughModelError returns a new ThroughModelError for the given model
// and relation name.
func NewThroughModelError(model, relation string) *ThroughModelError {
	return &ThroughModelError{model: model, relation: relation}
}

// IsThroughModelError returns true if the error is a ThroughModelError.
func IsThroughModelError(err error) bool {
	if err == nil {
		return false
	}
	var e *ThroughModelError
	return errors.As(err, &e) || errors.Is(err, ErrThroughModel)
}

// ValidationError represents a validation error for field values.
type ValidationError struct {
	Name string // Field or model name
	Err  error  // Underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("ormar: validator failed for field %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given field.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "ormar: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("ormar: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
