package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"task-agent/internal/config"
	"task-agent/internal/domain"
)

// dueDatePattern checks shape only. Calendar validity (e.g. Feb 30) is
// deliberately not enforced; the model is told to produce real dates and a
// syntactically valid string is stored as given.
var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDueDateFormat reports whether s has the YYYY-MM-DD shape. Used by
// the tool handlers for their relaxed, string-reporting re-checks.
func IsValidDueDateFormat(s string) bool {
	return dueDatePattern.MatchString(s)
}

// TaskFieldValidator validates individual task fields against the schema
// rules (enum membership, date format, length limits).
type TaskFieldValidator struct {
	config *config.Config
}

// NewTaskFieldValidator creates a new task field validator
func NewTaskFieldValidator() *TaskFieldValidator {
	return &TaskFieldValidator{config: nil} // Use defaults
}

// NewTaskFieldValidatorWithConfig creates a new task field validator with configuration
func NewTaskFieldValidatorWithConfig(cfg *config.Config) *TaskFieldValidator {
	return &TaskFieldValidator{config: cfg}
}

// ValidateTitle checks that a title is non-empty and within the length limit,
// returning the trimmed value.
func (v *TaskFieldValidator) ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		ve := NewValidationError()
		ve.AddError("title", ErrorTypeRequired, "Task title cannot be empty.", title)
		return "", ve
	}
	maxLen := v.maxTitleLength()
	if utf8.RuneCountInString(trimmed) > maxLen {
		ve := NewValidationError()
		ve.AddError("title", ErrorTypeInvalidLength,
			fmt.Sprintf("Task title is too long (max %d characters).", maxLen), trimmed)
		return "", ve
	}
	return trimmed, nil
}

// ValidatePriority checks enum membership. Empty values pass through so
// callers can apply their own defaults.
func (v *TaskFieldValidator) ValidatePriority(priority string) (string, error) {
	if priority == "" {
		return priority, nil
	}
	if !domain.Priority(priority).IsValid() {
		ve := NewValidationError()
		ve.AddError("priority", ErrorTypeInvalidValue,
			fmt.Sprintf("Invalid priority '%s'. Must be one of: high, low, medium, urgent", priority), priority)
		return "", ve
	}
	return priority, nil
}

// ValidateStatus checks enum membership. Empty values pass through.
func (v *TaskFieldValidator) ValidateStatus(status string) (string, error) {
	if status == "" {
		return status, nil
	}
	if !domain.Status(status).IsValid() {
		ve := NewValidationError()
		ve.AddError("status", ErrorTypeInvalidValue,
			fmt.Sprintf("Invalid status '%s'. Must be one of: completed, in_progress, pending", status), status)
		return "", ve
	}
	return status, nil
}

// ValidateDueDate checks the YYYY-MM-DD shape. Empty values pass through.
func (v *TaskFieldValidator) ValidateDueDate(dueDate string) (string, error) {
	if dueDate == "" {
		return dueDate, nil
	}
	if !dueDatePattern.MatchString(dueDate) {
		ve := NewValidationError()
		ve.AddError("due_date", ErrorTypeInvalidFormat,
			fmt.Sprintf("Invalid due date '%s'. Expected format: YYYY-MM-DD (e.g. 2026-03-15)", dueDate), dueDate)
		return "", ve
	}
	return dueDate, nil
}

// ValidateCategory checks the length limit and returns the label trimmed and
// lowercased. Empty values pass through.
func (v *TaskFieldValidator) ValidateCategory(category string) (string, error) {
	if category == "" {
		return category, nil
	}
	maxLen := v.maxCategoryLength()
	if utf8.RuneCountInString(category) > maxLen {
		ve := NewValidationError()
		ve.AddError("category", ErrorTypeInvalidLength,
			fmt.Sprintf("Category name is too long. Please keep it under %d characters.", maxLen), category)
		return "", ve
	}
	return strings.ToLower(strings.TrimSpace(category)), nil
}

// maxTitleLength returns the configured maximum title length or default
func (v *TaskFieldValidator) maxTitleLength() int {
	if v.config != nil {
		return v.config.Validation.MaxTitleLength
	}
	return 200 // Default maximum
}

// maxCategoryLength returns the configured maximum category length or default
func (v *TaskFieldValidator) maxCategoryLength() int {
	if v.config != nil {
		return v.config.Validation.MaxCategoryLength
	}
	return 50 // Default maximum
}
