// Package errors provides the typed error values shared across the scriptorium codebase.
//
// Two families matter to callers. Corpus errors describe a source text that could
// not be read or could not be rebuilt into a book/chapter/verse tree. Reference
// errors describe a citation string that could not be parsed. Both carry
// structured fields so callers can match on Kind instead of message text.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrSourceUnreadable indicates the corpus source text could not be read
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrCorpusInvalid indicates the corpus source text is structurally invalid
	ErrCorpusInvalid = errors.New("corpus invalid")
	// ErrInvalidReference indicates a citation string could not be parsed
	ErrInvalidReference = errors.New("reference error")
)

// maxSnippet bounds how much of an offending block is echoed into a message.
const maxSnippet = 80

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= maxSnippet {
		return s
	}
	return string(r[:maxSnippet]) + "..."
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "verse", "book")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// SourceError reports a corpus source that could not be located or read.
type SourceError struct {
	Path string // Path of the source, if known
	Err  error  // Underlying I/O error
}

func (e *SourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("source unreadable: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("source unreadable: %v", e.Err)
}

// Unwrap exposes both the I/O cause and ErrSourceUnreadable.
func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSourceUnreadable}
	}
	return []error{e.Err, ErrSourceUnreadable}
}

// CorpusErrorKind classifies a structural violation in the corpus source.
type CorpusErrorKind int

const (
	MisplacedTitle CorpusErrorKind = iota
	MisplacedDescription
	MisplacedChapter
	MisplacedVerse
	VerseMismatch
	UnrecognizedBlock
	NoBooks
	EmptyBook
)

func (k CorpusErrorKind) String() string {
	switch k {
	case MisplacedTitle:
		return "misplaced title"
	case MisplacedDescription:
		return "misplaced description"
	case MisplacedChapter:
		return "misplaced chapter"
	case MisplacedVerse:
		return "misplaced verse"
	case VerseMismatch:
		return "verse mismatch"
	case UnrecognizedBlock:
		return "unrecognized block"
	case NoBooks:
		return "no books"
	case EmptyBook:
		return "empty book"
	default:
		return fmt.Sprintf("CorpusErrorKind(%d)", int(k))
	}
}

// CorpusError reports a source text that does not rebuild into a valid corpus.
// Block holds the offending chunk; Expected and Actual are set for VerseMismatch.
type CorpusError struct {
	Kind     CorpusErrorKind
	Block    string
	Expected int
	Actual   int
}

func (e *CorpusError) Error() string {
	var reason string
	switch e.Kind {
	case MisplacedTitle:
		reason = fmt.Sprintf("book title must follow a verse: %q", snippet(e.Block))
	case MisplacedDescription:
		reason = fmt.Sprintf("book description must follow a book title: %q", snippet(e.Block))
	case MisplacedChapter:
		reason = fmt.Sprintf("chapter heading must follow a book title, description or verse: %q", snippet(e.Block))
	case MisplacedVerse:
		reason = fmt.Sprintf("verse must follow a book title, description, chapter heading or verse: %q", snippet(e.Block))
	case VerseMismatch:
		reason = fmt.Sprintf("expected verse %d, found verse %d: %q", e.Expected, e.Actual, snippet(e.Block))
	case UnrecognizedBlock:
		reason = fmt.Sprintf("unrecognized block: %q", snippet(e.Block))
	case NoBooks:
		reason = "no books found"
	case EmptyBook:
		reason = fmt.Sprintf("book ends before its first verse: %q", snippet(e.Block))
	default:
		reason = e.Kind.String()
	}
	return "corpus invalid: " + reason
}

func (e *CorpusError) Unwrap() error {
	return ErrCorpusInvalid
}

// ReferenceErrorKind classifies why a citation string failed to parse.
type ReferenceErrorKind int

const (
	UnknownBook ReferenceErrorKind = iota
	DegenerateRange
	TooManyDashes
	TooManyColons
	BadNumber
	EmptyCitation
)

func (k ReferenceErrorKind) String() string {
	switch k {
	case UnknownBook:
		return "unknown book"
	case DegenerateRange:
		return "degenerate range"
	case TooManyDashes:
		return "too many dashes"
	case TooManyColons:
		return "too many colons"
	case BadNumber:
		return "bad number"
	case EmptyCitation:
		return "empty citation"
	default:
		return fmt.Sprintf("ReferenceErrorKind(%d)", int(k))
	}
}

// ReferenceError reports a citation that could not be parsed. Input is the
// fragment that failed, not necessarily the whole citation.
type ReferenceError struct {
	Kind  ReferenceErrorKind
	Input string
}

func (e *ReferenceError) Error() string {
	var reason string
	switch e.Kind {
	case UnknownBook:
		reason = fmt.Sprintf("book name not found in %q", e.Input)
	case DegenerateRange:
		reason = fmt.Sprintf("range start must be less than its end: %q", e.Input)
	case TooManyDashes:
		reason = fmt.Sprintf("too many dashes in %q", e.Input)
	case TooManyColons:
		reason = fmt.Sprintf("more than one ':' in a single citation: %q", e.Input)
	case BadNumber:
		reason = fmt.Sprintf("unable to parse number from %q", e.Input)
	case EmptyCitation:
		reason = fmt.Sprintf("unable to parse any references from %q", e.Input)
	default:
		reason = e.Kind.String()
	}
	return "reference error: " + reason
}

func (e *ReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewSource creates a SourceError
func NewSource(path string, err error) *SourceError {
	return &SourceError{Path: path, Err: err}
}

// NewCorpus creates a CorpusError for the given block
func NewCorpus(kind CorpusErrorKind, block string) *CorpusError {
	return &CorpusError{Kind: kind, Block: block}
}

// NewVerseMismatch creates a VerseMismatch CorpusError
func NewVerseMismatch(expected, actual int, block string) *CorpusError {
	return &CorpusError{Kind: VerseMismatch, Block: block, Expected: expected, Actual: actual}
}

// NewReference creates a ReferenceError
func NewReference(kind ReferenceErrorKind, input string) *ReferenceError {
	return &ReferenceError{Kind: kind, Input: input}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
