package reports

import "fmt"

// ReportError represents an error writing or reading a report file
type ReportError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("report error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("report error: %s (%s)", e.Message, e.Path)
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}
