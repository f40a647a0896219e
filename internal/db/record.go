package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMissingField   = errors.New("required field missing")
	ErrMalformedInt   = errors.New("malformed integer")
	ErrStatusNotFound = errors.New("status not found")
)

// MissingFieldError reports a required column that is absent or blank.
type MissingFieldError struct {
	Field   string
	Message string
}

func (e *MissingFieldError) Error() string { return e.Message }
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// ParseError reports a present value that is not a base-10 integer.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid integer %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() []error { return []error{ErrMalformedInt, e.Err} }

// StatusNotFoundError reports a participation pointing at an unknown status id.
type StatusNotFoundError struct {
	ID int
}

func (e *StatusNotFoundError) Error() string { return fmt.Sprintf("Status with id %d not found", e.ID) }
func (e *StatusNotFoundError) Unwrap() error { return ErrStatusNotFound }

// Header maps column names to their position in a row.
type Header map[string]int

// NewHeader indexes the first row of a file. Names are trimmed and a leading
// UTF-8 byte order mark is dropped.
func NewHeader(names []string) Header {
	h := make(Header, len(names))
	for i, n := range names {
		if i == 0 {
			n = strings.TrimPrefix(n, "\ufeff")
		}
		n = strings.TrimSpace(n)
		if _, dup := h[n]; dup {
			continue
		}
		h[n] = i
	}
	return h
}

// Record is one data row of a delimited file, addressed by header name.
type Record struct {
	header Header
	fields []string
	Line   int
}

func NewRecord(h Header, fields []string, line int) Record {
	return Record{header: h, fields: fields, Line: line}
}

// String returns the trimmed value of col. Unknown columns, short rows and
// whitespace-only values are all reported as not present.
func (r Record) String(col string) (string, bool) {
	i, ok := r.header[col]
	if !ok || i >= len(r.fields) {
		return "", false
	}
	v := strings.TrimSpace(r.fields[i])
	if v == "" {
		return "", false
	}
	return v, true
}

// Int parses col as a base-10 integer. A missing value is (0, false, nil);
// a present but malformed value is a *ParseError.
func (r Record) Int(col string) (int, bool, error) {
	v, ok := r.String(col)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, &ParseError{Field: col, Value: v, Err: err}
	}
	return n, true, nil
}

func (r Record) requireString(col, msg string) (string, error) {
	v, ok := r.String(col)
	if !ok {
		return "", &MissingFieldError{Field: col, Message: msg}
	}
	return v, nil
}

func (r Record) requireInt(col, msg string) (int, error) {
	n, ok, err := r.Int(col)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &MissingFieldError{Field: col, Message: msg}
	}
	return n, nil
}
