package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"bl2bids/internal/common"
)

// Diagnostics collects per-record findings of a placement run. None of them
// aborts the run; the caller decides how to surface them.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding about an input record.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	// Record is the record label, e.g. "#3 dwi".
	Record string
	// Path is the source or destination file, if any.
	Path string
}

// Severity orders diagnostics from informational to fatal for a record.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (d *Diagnostics) add(sev Severity, code, message, record, path string) {
	x := Diagnostic{Severity: sev, Code: code, Message: message, Record: record, Path: path}

	switch sev {
	case SeverityError:
		d.Errors = append(d.Errors, x)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, x)
	default:
		d.Infos = append(d.Infos, x)
	}
}

// AddError records a failure that skips the record or one of its files.
func (d *Diagnostics) AddError(code, message, record, path string) {
	d.add(SeverityError, code, message, record, path)
}

// AddWarning records a recoverable inconsistency.
func (d *Diagnostics) AddWarning(code, message, record, path string) {
	d.add(SeverityWarning, code, message, record, path)
}

// AddInfo records something only worth showing in verbose output.
func (d *Diagnostics) AddInfo(code, message, record, path string) {
	d.add(SeverityInfo, code, message, record, path)
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends other's diagnostics, keeping their order.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Codes returns the codes of every diagnostic, errors first.
func (d *Diagnostics) Codes() []string {
	var codes []string
	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, x := range group {
			codes = append(codes, x.Code)
		}
	}

	return codes
}

// Error joins the error diagnostics one per line, or returns nil when there
// are none.
func (d *Diagnostics) Error() error {
	errs := make([]error, 0, len(d.Errors))
	for _, x := range d.Errors {
		errs = append(errs, errors.New(x.String()))
	}

	return errors.Join(errs...)
}

// String renders "[record] path: [code] message", omitting empty parts.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	var where []string
	if d.Record != "" {
		where = append(where, "["+d.Record+"]")
	}

	if d.Path != "" {
		where = append(where, d.Path)
	}

	if len(where) == 0 {
		return msg
	}

	return strings.Join(where, " ") + ": " + msg
}
