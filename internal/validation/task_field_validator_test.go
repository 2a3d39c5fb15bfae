package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTitle(t *testing.T) {
	v := NewTaskFieldValidator()

	got, err := v.ValidateTitle("  Buy groceries  ")
	require.NoError(t, err)
	assert.Equal(t, "Buy groceries", got)

	_, err = v.ValidateTitle("   ")
	require.Error(t, err)

	_, err = v.ValidateTitle(strings.Repeat("a", 201))
	require.Error(t, err)

	got, err = v.ValidateTitle(strings.Repeat("a", 200))
	require.NoError(t, err)
	assert.Len(t, got, 200)

	// 200 characters is within the limit regardless of byte width
	got, err = v.ValidateTitle(strings.Repeat("日", 200))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("日", 200), got)

	_, err = v.ValidateTitle(strings.Repeat("日", 201))
	require.Error(t, err)
}

func TestValidatePriority(t *testing.T) {
	v := NewTaskFieldValidator()

	for _, p := range []string{"low", "medium", "high", "urgent"} {
		got, err := v.ValidatePriority(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	// Empty passes through for the caller to default
	got, err := v.ValidatePriority("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = v.ValidatePriority("extreme")
	require.Error(t, err)
	// Case-sensitive: the model is told to emit lowercase values
	_, err = v.ValidatePriority("High")
	require.Error(t, err)
}

func TestValidateStatus(t *testing.T) {
	v := NewTaskFieldValidator()

	for _, s := range []string{"pending", "in_progress", "completed"} {
		got, err := v.ValidateStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := v.ValidateStatus("done")
	require.Error(t, err)
}

func TestValidateDueDate(t *testing.T) {
	v := NewTaskFieldValidator()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2026-03-15", false},
		{"", false},
		// Shape check only: an impossible calendar date still passes
		{"2026-02-30", false},
		{"2026-13-99", false},
		{"tomorrow", true},
		{"03/15/2026", true},
		{"2026-3-15", true},
		{"2026-03-15T00:00:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := v.ValidateDueDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidDueDateFormat(t *testing.T) {
	assert.True(t, IsValidDueDateFormat("2026-01-01"))
	assert.False(t, IsValidDueDateFormat("jan 1st"))
	assert.False(t, IsValidDueDateFormat(""))
}

func TestValidateCategory(t *testing.T) {
	v := NewTaskFieldValidator()

	got, err := v.ValidateCategory("  Work  ")
	require.NoError(t, err)
	assert.Equal(t, "work", got)

	got, err = v.ValidateCategory("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = v.ValidateCategory(strings.Repeat("a", 51))
	require.Error(t, err)

	got, err = v.ValidateCategory(strings.Repeat("ö", 50))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ö", 50), got)

	_, err = v.ValidateCategory(strings.Repeat("ö", 51))
	require.Error(t, err)
}
