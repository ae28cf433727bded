package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Sentinel markers for the generation error taxonomy. Callers match with
// errors.Is; the typed errors below carry the occurrence details.
var (
	// ErrDuplicateComponent marks a registry integrity violation. Fatal:
	// generation must not start once the blueprint is known to be invalid.
	ErrDuplicateComponent = crdb.New("duplicate component id")

	// ErrPathCollision marks two components resolving to the same file path
	// within one language. Reported per occurrence, never overwritten.
	ErrPathCollision = crdb.New("path collision")

	// ErrUnrepresentableTag marks a structural tag a language emitter cannot
	// express directly. Emitters substitute and warn rather than fail, so
	// this surfaces only when no substitute exists either.
	ErrUnrepresentableTag = crdb.New("unrepresentable structural tag")
)

// DuplicateComponentError reports an attempt to register a component id twice.
type DuplicateComponentError struct {
	ID string
}

func (e *DuplicateComponentError) Error() string {
	return fmt.Sprintf("component %q already registered", e.ID)
}

func (e *DuplicateComponentError) Unwrap() error { return ErrDuplicateComponent }

// NewDuplicateComponent returns a stack-annotated DuplicateComponentError.
func NewDuplicateComponent(id string) error {
	return crdb.WithStack(&DuplicateComponentError{ID: id})
}

// PathCollisionError reports two components mapping to one path in a single
// run. The first writer wins; the collision is recorded against the loser.
type PathCollisionError struct {
	Path        string
	ComponentID string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("component %q resolves to already-written path %q", e.ComponentID, e.Path)
}

func (e *PathCollisionError) Unwrap() error { return ErrPathCollision }

// NewPathCollision returns a stack-annotated PathCollisionError.
func NewPathCollision(path, componentID string) error {
	return crdb.WithStack(&PathCollisionError{Path: path, ComponentID: componentID})
}

// UnrepresentableTagError reports a tag with no mapping and no substitute in
// a target language.
type UnrepresentableTagError struct {
	Language    string
	ComponentID string
	Tag         string
}

func (e *UnrepresentableTagError) Error() string {
	return fmt.Sprintf("tag %s on component %q has no %s representation", e.Tag, e.ComponentID, e.Language)
}

func (e *UnrepresentableTagError) Unwrap() error { return ErrUnrepresentableTag }
