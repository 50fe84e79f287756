package tree

import "errors"

// Sentinel errors returned by Store operations. They are wrapped with the
// offending id or kind; match them with errors.Is.
var (
	ErrOutcomeAlreadyExists = errors.New("outcome already exists")
	ErrNoRoot               = errors.New("tree has no outcome yet")
	ErrParentNotFound       = errors.New("parent not found")
	ErrNotFound             = errors.New("node not found")
	ErrNotAnOpportunity     = errors.New("not an opportunity")
	ErrNotASolution         = errors.New("not a solution")
	ErrInvalidKind          = errors.New("invalid node kind")
	ErrInvalidParentKind    = errors.New("invalid parent for node kind")
	ErrDuplicateID          = errors.New("duplicate node id")
)
