package catalog

import (
	"fmt"
	"strings"
)

// Error codes for catalog loading.
const (
	ErrCodeCatalogNotFound = "CATALOG_NOT_FOUND"
	ErrCodeItemParse       = "ITEM_PARSE"
	ErrCodeFieldMissing    = "FIELD_MISSING"
	ErrCodeTypeUnknown     = "TYPE_UNKNOWN"
	ErrCodeIDDuplicate     = "ID_DUPLICATE"
	ErrCodeIDInvalid       = "ID_INVALID"
)

// LoadError represents a malformed catalog: a missing required field,
// a duplicate id, an unrecognized type, or an unreadable document.
// A LoadError aborts the run before any script executes.
type LoadError struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	Context    string // File path or other location context
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *LoadError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *LoadError) Is(target error) bool {
	if t, ok := target.(*LoadError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *LoadError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying.Error())
	}

	return b.String()
}

// NewCatalogNotFoundError creates an error for a missing catalog directory.
func NewCatalogNotFoundError(dir string) *LoadError {
	return &LoadError{
		Code:       ErrCodeCatalogNotFound,
		Message:    fmt.Sprintf("catalog directory not found: %s", dir),
		Context:    dir,
		Suggestion: "Pass --catalog with the directory holding your item definitions.",
	}
}

// NewItemParseError creates an error for an unreadable or malformed document.
func NewItemParseError(path string, err error) *LoadError {
	return &LoadError{
		Code:       ErrCodeItemParse,
		Message:    "item definition could not be parsed",
		Context:    path,
		Suggestion: "Check the YAML syntax; each document needs id, name, type, and category.",
		Underlying: err,
	}
}

// NewFieldMissingError creates an error for an empty required field.
func NewFieldMissingError(path, field string) *LoadError {
	return &LoadError{
		Code:       ErrCodeFieldMissing,
		Message:    fmt.Sprintf("required field %q is missing or empty", field),
		Context:    path,
		Suggestion: fmt.Sprintf("Add a non-empty %q to the item definition.", field),
	}
}

// NewTypeUnknownError creates an error for a type outside the enum.
func NewTypeUnknownError(path, typ string) *LoadError {
	return &LoadError{
		Code:    ErrCodeTypeUnknown,
		Message: fmt.Sprintf("unrecognized item type %q", typ),
		Context: path,
		Suggestion: "Valid types: brew, brew_cask, mas, direct_download_dmg, " +
			"direct_download_pkg, proto_tool, system_config, launch_agent, shell_script.",
	}
}

// NewIDDuplicateError creates an error naming both documents claiming an id.
func NewIDDuplicateError(id, firstPath, secondPath string) *LoadError {
	return &LoadError{
		Code:       ErrCodeIDDuplicate,
		Message:    fmt.Sprintf("duplicate item id %q (first defined in %s)", id, firstPath),
		Context:    secondPath,
		Suggestion: "Item ids must be unique within a catalog; rename one of the items.",
	}
}

// NewIDInvalidError creates an error for a malformed id.
func NewIDInvalidError(path, id string) *LoadError {
	return &LoadError{
		Code:       ErrCodeIDInvalid,
		Message:    fmt.Sprintf("invalid item id %q", id),
		Context:    path,
		Suggestion: "Ids may contain only letters, digits, underscores, and hyphens.",
	}
}
