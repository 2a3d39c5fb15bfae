package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"task-agent/internal/config"
)

// CommandValidator validates raw natural-language commands before they are
// sent to the model.
type CommandValidator struct {
	config *config.Config
}

// NewCommandValidator creates a new command validator
func NewCommandValidator() *CommandValidator {
	return &CommandValidator{config: nil} // Use defaults
}

// NewCommandValidatorWithConfig creates a new command validator with configuration
func NewCommandValidatorWithConfig(cfg *config.Config) *CommandValidator {
	return &CommandValidator{config: cfg}
}

// ValidateCommand checks a raw user command and returns the trimmed text.
func (v *CommandValidator) ValidateCommand(text string) (string, error) {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		ve := NewValidationError()
		ve.AddError("command", ErrorTypeRequired,
			"Please enter a command. Try something like 'add buy groceries' or 'show all tasks'.", text)
		return "", ve
	}

	// Limits count characters, not bytes, so multi-byte input is not
	// penalized.
	maxLen := v.maxCommandLength()
	if length := utf8.RuneCountInString(trimmed); length > maxLen {
		ve := NewValidationError()
		ve.AddError("command", ErrorTypeInvalidLength,
			fmt.Sprintf("Command is too long (%d characters). Please keep it under %d characters.", length, maxLen),
			trimmed)
		return "", ve
	}

	return trimmed, nil
}

// maxCommandLength returns the configured maximum command length or default
func (v *CommandValidator) maxCommandLength() int {
	if v.config != nil {
		return v.config.Validation.MaxCommandLength
	}
	return 1000 // Default maximum
}
