// Package core provides the validation engine for seed workbooks.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Data-quality problems inside a workbook are never Go errors: they are
// reported as validation findings. The codes below cover the failures around
// a run: the file itself, the run gate, and export.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Action: Remove unused sheets or rows and try again
//	          Patterns: "file too large"
//
//	FILE002 - Not a workbook: The file could not be read as an Excel workbook
//	          Action: Save the file as .xlsx from the seed template
//	          Patterns: "workbook cannot be read"
//
//	FILE003 - Empty workbook: The workbook has no sheets
//	          Action: Start from the seed template
//	          Patterns: "workbook has no sheets"
//
//	FILE004 - No file: No file was selected
//	          Action: Please select an .xlsx file to validate
//	          Patterns: "no file provided"
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - System busy: Another validation is running
//	         Action: Please wait a moment and try again
//	         Patterns: "validation run is in progress"
//
//	RUN002 - Timeout: Reading the workbook took too long
//	         Action: Remove unused sheets or rows and try again
//	         Patterns: "context deadline exceeded"
//
//	RUN003 - Cancelled: The request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Export blocked: The workbook has validation errors
//	         Action: Fix the reported errors, or force the export
//	         Patterns: "export blocked"
//
//	EXP002 - Force disabled: Forced export is not enabled
//	         Action: Fix the reported errors before exporting
//	         Patterns: "forced export is disabled"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters. Run errors come first
// because a timeout may surface wrapped inside a read failure.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Run Errors (RUN001-RUN003)
	// =========================================================================
	{
		pattern: "validation run is in progress",
		msg: UserMessage{
			Message: "Another validation is running",
			Action:  "Please wait a moment and try again",
			Code:    "RUN001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Reading the workbook took too long",
			Action:  "Remove unused sheets or rows and try again",
			Code:    "RUN002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "RUN003",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE004)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Remove unused sheets or rows and try again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "workbook cannot be read",
		msg: UserMessage{
			Message: "The file could not be read as an Excel workbook",
			Action:  "Save the file as .xlsx from the seed template",
			Code:    "FILE002",
		},
	},
	{
		pattern: "workbook has no sheets",
		msg: UserMessage{
			Message: "The workbook has no sheets",
			Action:  "Start from the seed template",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select an .xlsx file to validate",
			Code:    "FILE004",
		},
	},

	// =========================================================================
	// Export Errors (EXP001-EXP002)
	// =========================================================================
	{
		pattern: "export blocked",
		msg: UserMessage{
			Message: "The workbook has validation errors",
			Action:  "Fix the reported errors, or force the export",
			Code:    "EXP001",
		},
	},
	{
		pattern: "forced export is disabled",
		msg: UserMessage{
			Message: "Forced export is not enabled",
			Action:  "Fix the reported errors before exporting",
			Code:    "EXP002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern, i.e. whether the
// mapped message says more than the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
// The original error is preserved for logging.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
