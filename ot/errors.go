package ot

import (
	"errors"
	"fmt"
)

// ErrFontFormat is wrapped by every error which renders a font binary unusable.
var ErrFontFormat = errors.New("OpenType font format")

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("%w: %s", ErrFontFormat, message)
}

// ErrorSeverity represents the severity level of a font parsing error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error that makes the font unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates an error that may affect functionality but doesn't prevent usage.
	SeverityMajor
	// SeverityMinor indicates an issue that can be safely ignored in most cases.
	SeverityMinor
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	}
	return "UNKNOWN"
}

// FontError represents an issue encountered during font parsing.
// Issues are accumulated during parsing and can be inspected afterwards.
type FontError struct {
	Table    Tag           // table where the issue occurred, e.g. "cmap"
	Section  string        // part of the table, e.g. "Format4"
	Issue    string        // human-readable description
	Severity ErrorSeverity //
	Offset   uint32        // byte offset in the font binary (0 if unknown)
}

func (e FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// FontWarning represents a non-critical observation made during font parsing,
// e.g. tables which are present but not interpreted.
type FontWarning struct {
	Table  Tag
	Issue  string
	Offset uint32
}

func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// errorCollector accumulates errors and warnings during font parsing.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

func (ec *errorCollector) addError(table Tag, section string, issue string, severity ErrorSeverity, offset uint32) {
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	ec.warnings = append(ec.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

// fail records a critical error and returns it as a font format error.
func (ec *errorCollector) fail(table Tag, section string, issue string, offset uint32) error {
	ec.addError(table, section, issue, SeverityCritical, offset)
	if table == 0 {
		return errFontFormat(issue)
	}
	return errFontFormat(fmt.Sprintf("table %s: %s", table, issue))
}
