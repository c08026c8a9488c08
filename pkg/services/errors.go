// Package services provides the workflow business operations used by the
// API and CLI layers.
package services

import (
	"errors"
	"fmt"
	"strings"
)

// Business logic errors. These indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidStatus    = errors.New("invalid workflow status")
	ErrWorkflowNil      = errors.New("workflow cannot be nil")

	// Publishing validation errors (400 Bad Request).
	ErrWorkflowNameRequired = errors.New("workflow name is required")
	ErrNodesRequired        = errors.New("workflow must have at least one node")
	ErrGraphInvalid         = errors.New("workflow graph has invalid nodes")

	// Business logic conflicts (409 Conflict).
	ErrCannotModifyPublished = errors.New("cannot modify published workflow")
	ErrAlreadyPublished      = errors.New("workflow is already published")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// GraphError carries the invalid node ids a graph check reported.
type GraphError struct {
	Op             string
	InvalidNodeIDs []string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("%s: invalid nodes: %s", e.Op, strings.Join(e.InvalidNodeIDs, ", "))
}

func (e *GraphError) Is(target error) bool {
	return errors.Is(ErrGraphInvalid, target)
}

// NewGraphError creates a graph validation error for the given node ids.
func NewGraphError(op string, invalidNodeIDs []string) *GraphError {
	return &GraphError{Op: op, InvalidNodeIDs: invalidNodeIDs}
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidSortField) ||
		errors.Is(err, ErrInvalidSortOrder) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrWorkflowNil) ||
		errors.Is(err, ErrWorkflowNameRequired) ||
		errors.Is(err, ErrNodesRequired) ||
		errors.Is(err, ErrGraphInvalid)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrCannotModifyPublished) ||
		errors.Is(err, ErrAlreadyPublished)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
