package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/registry/internal/domain"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Workflow refused (not found, owner mismatch, invalid input)
	ExitCommandError = 2 // Bad config, unusable database, bad seed file
)

// Codes for failures that are not registry workflow errors. Workflow
// errors are reported under their domain code (VALIDATION, NOT_FOUND, ...).
const (
	ErrCodeGeneric  = "E001"
	ErrCodeConfig   = "E002"
	ErrCodeDatabase = "E003"
	ErrCodeSeed     = "E004"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError attaches an exit code and message to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code carried by err, or ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or as a JSON envelope.
type OutputFormatter struct {
	Format  string // "text" or "json"
	Writer  io.Writer
	Verbose bool // text errors also print their details
}

// CLIResponse is the JSON envelope: {"status":"ok","data":...} or
// {"status":"error","error":{...}}.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error part of a CLIResponse.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success writes data, printed with %v in text mode.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Render writes data as JSON, or calls text to write the human-readable
// form.
func (f *OutputFormatter) Render(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		return f.Success(data)
	}
	text(f.Writer)
	return nil
}

// Error writes an error report. details are shown in JSON, and in text
// only when verbose.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports a failed workflow. Registry errors exit with ExitFailure
// under their domain code; anything else is a command error.
func (f *OutputFormatter) Fail(message string, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		_ = f.Error(string(derr.Code), derr.Error(), fieldDetails(derr.Field))
		return WrapExitError(ExitFailure, message, err)
	}
	return f.Abort(ErrCodeGeneric, message, err)
}

// Abort reports an environment failure (config, database, seed) under
// code and returns a command error. An err that already carries an exit
// code keeps it.
func (f *OutputFormatter) Abort(code, message string, err error) error {
	_ = f.Error(code, err.Error(), nil)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return WrapExitError(ExitCommandError, message, err)
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	return json.NewEncoder(f.Writer).Encode(resp)
}

func fieldDetails(field string) any {
	if field == "" {
		return nil
	}
	return map[string]string{"field": field}
}
