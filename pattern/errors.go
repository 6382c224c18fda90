package pattern

import (
	"errors"
	"fmt"
)

// Errors signalled by this package. Clients should test for them with errors.Is,
// as they are usually wrapped into errors carrying more context.
//
// A structural mismatch is not an error: it is signalled by a nil Matching.
var (
	// ErrUnsupportedPattern is returned by Compile for patterns which would
	// require backtracking, i.e. a BlankNullSequence mixed with sibling elements.
	ErrUnsupportedPattern = errors.New("unsupported pattern")
	// ErrBindingContract signals a mismatch between a pattern and a binding table:
	// a placeholder without a binding, or a binding of the wrong shape.
	ErrBindingContract = errors.New("binding contract violation")
	// ErrConstruction signals the use of a pattern, template or matching which has
	// not been created by the designated constructors.
	ErrConstruction = errors.New("construction misuse")
)

func unsupported(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnsupportedPattern)
}

func contractViolation(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrBindingContract)
}

func misconstructed(what string) error {
	return fmt.Errorf("%s is not constructible directly, use the package constructors instead: %w",
		what, ErrConstruction)
}
