package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "verse", ID: "0/2/15"},
			wantMsg:  "verse not found: 0/2/15",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "book"},
			wantMsg:  "book not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation("server.port", "must be between 1 and 65535")
	want := "validation failed for server.port: must be between 1 and 65535"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(%v, ErrInvalidInput) = false, want true", err)
	}

	bare := &ValidationError{Message: "invalid format"}
	if got := bare.Error(); got != "validation failed: invalid format" {
		t.Errorf("Error() = %q, want %q", got, "validation failed: invalid format")
	}
}

func TestSourceError(t *testing.T) {
	err := NewSource("/tmp/missing.txt", fs.ErrNotExist)

	if !errors.Is(err, ErrSourceUnreadable) {
		t.Error("SourceError does not match ErrSourceUnreadable")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("SourceError does not match its cause")
	}
	if errors.Is(err, ErrCorpusInvalid) {
		t.Error("SourceError unexpectedly matches ErrCorpusInvalid")
	}
	if got := err.Error(); !strings.HasPrefix(got, "source unreadable: /tmp/missing.txt") {
		t.Errorf("Error() = %q, want source unreadable prefix", got)
	}

	noPath := &SourceError{}
	if !errors.Is(noPath, ErrSourceUnreadable) {
		t.Error("SourceError without cause does not match ErrSourceUnreadable")
	}
}

func TestCorpusError(t *testing.T) {
	tests := []struct {
		name     string
		err      *CorpusError
		contains string
	}{
		{"misplaced title", NewCorpus(MisplacedTitle, "ALMA"), "book title must follow a verse"},
		{"misplaced description", NewCorpus(MisplacedDescription, "An account"), "book description"},
		{"misplaced chapter", NewCorpus(MisplacedChapter, "Alma 2\nChapter 2"), "chapter heading"},
		{"misplaced verse", NewCorpus(MisplacedVerse, "Alma 1:1\n 1 text"), "verse must follow"},
		{"mismatch", NewVerseMismatch(2, 3, "Alma 1:3\n 3 text"), "expected verse 2, found verse 3"},
		{"unrecognized", NewCorpus(UnrecognizedBlock, "Alma 1:1\n 0 text"), "unrecognized block"},
		{"no books", NewCorpus(NoBooks, ""), "corpus invalid: no books found"},
		{"empty book", NewCorpus(EmptyBook, "THE BOOK OF JAROM"), "book ends before its first verse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			if !strings.HasPrefix(msg, "corpus invalid: ") {
				t.Errorf("Error() = %q, want corpus invalid prefix", msg)
			}
			if !strings.Contains(msg, tt.contains) {
				t.Errorf("Error() = %q, want it to contain %q", msg, tt.contains)
			}
			if !errors.Is(tt.err, ErrCorpusInvalid) {
				t.Errorf("errors.Is(%v, ErrCorpusInvalid) = false", tt.err)
			}
		})
	}
}

func TestCorpusErrorTruncatesBlock(t *testing.T) {
	long := strings.Repeat("x", 500)
	msg := NewCorpus(UnrecognizedBlock, long).Error()
	if strings.Contains(msg, long) {
		t.Error("Error() echoed the whole block, want it truncated")
	}
	if !strings.Contains(msg, "...") {
		t.Errorf("Error() = %q, want ellipsis", msg)
	}
}

func TestCorpusErrorKindString(t *testing.T) {
	if got := VerseMismatch.String(); got != "verse mismatch" {
		t.Errorf("VerseMismatch.String() = %q, want %q", got, "verse mismatch")
	}
	if got := CorpusErrorKind(99).String(); got != "CorpusErrorKind(99)" {
		t.Errorf("String() = %q, want %q", got, "CorpusErrorKind(99)")
	}
}

func TestReferenceError(t *testing.T) {
	tests := []struct {
		kind     ReferenceErrorKind
		input    string
		contains string
	}{
		{UnknownBook, "Ephraim 1:1", "book name not found"},
		{DegenerateRange, "5-1", "range start must be less than its end"},
		{TooManyDashes, "5-6-", "too many dashes"},
		{TooManyColons, "1:1, 1:2", "more than one ':'"},
		{BadNumber, "x", "unable to parse number"},
		{EmptyCitation, "", "unable to parse any references"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := NewReference(tt.kind, tt.input)
			msg := err.Error()
			if !strings.HasPrefix(msg, "reference error: ") {
				t.Errorf("Error() = %q, want reference error prefix", msg)
			}
			if !strings.Contains(msg, tt.contains) {
				t.Errorf("Error() = %q, want it to contain %q", msg, tt.contains)
			}
			if !errors.Is(err, ErrInvalidReference) {
				t.Errorf("errors.Is(%v, ErrInvalidReference) = false", err)
			}

			var refErr *ReferenceError
			if !As(Wrap(err, "lookup"), &refErr) || refErr.Kind != tt.kind {
				t.Errorf("As() did not recover kind %v", tt.kind)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrap(baseErr, "context message")
		if wrapped == nil {
			t.Fatal("Wrap() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrap() error does not unwrap to base error")
		}
		wantMsg := "context message: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrap() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})
}

func TestWrapf(t *testing.T) {
	t.Run("wraps error with formatting", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrapf(baseErr, "failed to process %s", "file.txt")
		if wrapped == nil {
			t.Fatal("Wrapf() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrapf() error does not unwrap to base error")
		}
		wantMsg := "failed to process file.txt: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrapf() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrapf(nil, "context %s", "test"); got != nil {
			t.Errorf("Wrapf(nil) = %v, want nil", got)
		}
	})
}

func TestIs(t *testing.T) {
	err := Wrap(NewCorpus(NoBooks, ""), "parse")
	if !Is(err, ErrCorpusInvalid) {
		t.Error("Is() failed to match wrapped CorpusError to ErrCorpusInvalid")
	}
}

func TestAs(t *testing.T) {
	err := Wrap(NewVerseMismatch(2, 3, "block"), "parse")
	var cErr *CorpusError
	if !As(err, &cErr) {
		t.Fatal("As() failed to match CorpusError")
	}
	if cErr.Expected != 2 || cErr.Actual != 3 {
		t.Errorf("As() got expected=%d actual=%d, want 2 and 3", cErr.Expected, cErr.Actual)
	}
}
