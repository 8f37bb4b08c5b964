package cli

import (
	"encoding/json"
	"errors"
	"os"
)

// jsonOutput is set by --json.
var jsonOutput bool

// Response is the envelope every --json invocation prints exactly once.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo is the error half of the envelope. Code is one of the Err* constants.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning is reported alongside a successful result.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// Meta carries counts for list-shaped results.
type Meta struct {
	Count int `json:"count,omitempty"`
}

func writeResponse(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

func outputSuccess(data interface{}, meta *Meta) {
	outputSuccessWithWarnings(data, nil, meta)
}

func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	writeResponse(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

func outputError(code, message string, details interface{}, suggestion string) {
	writeResponse(Response{Error: &ErrorInfo{
		Code:       code,
		Message:    message,
		Details:    details,
		Suggestion: suggestion,
	}})
}

func outputErrorFromErr(code string, err error, suggestion string) {
	outputError(code, err.Error(), nil, suggestion)
}

func isJSONOutput() bool {
	return jsonOutput
}

// fail reports a command failure. With --json the envelope is the whole
// report and nil is returned so cobra stays quiet; otherwise err goes back
// to cobra for printing.
func fail(code string, err error, details interface{}, suggestion string) error {
	if !jsonOutput {
		return err
	}
	outputError(code, err.Error(), details, suggestion)
	return nil
}

func handleError(code string, err error, suggestion string) error {
	return fail(code, err, nil, suggestion)
}

func handleErrorMsg(code, message, suggestion string) error {
	return fail(code, errors.New(message), nil, suggestion)
}

func handleErrorWithDetails(code, message, suggestion string, details interface{}) error {
	return fail(code, errors.New(message), details, suggestion)
}
