package validation

import (
	"errors"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/pidseal/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("timestamp: cannot be blank"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "timestamp: cannot be blank")
}

func TestMinBytes(t *testing.T) {
	rule := MinBytes(16)

	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"exactly 16 bytes", "2023-10-27T12:00", false},
		{"19 bytes", "2023-10-27T12:00:00", false},
		{"15 bytes", "2023-10-27T12:0", true},
		{"multibyte counts bytes", "2023-10-27T€€", false},
		{"empty is left to Required", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, rule)
			if tt.shouldErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "at least 16 bytes")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBase64(t *testing.T) {
	tests := []struct {
		name      string
		value     interface{}
		shouldErr bool
	}{
		{"valid", "PFBpZC8+", false},
		{"empty", "", false},
		{"invalid characters", "not base64!", true},
		{"url alphabet rejected", "-_8B", true},
		{"not a string", 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Base64.Validate(tt.value)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodedMinBytes(t *testing.T) {
	rule := DecodedMinBytes(2)

	assert.NoError(t, validation.Validate("AAA=", rule))
	assert.Error(t, validation.Validate("AA==", rule))
	assert.NoError(t, validation.Validate("", rule))
	assert.NoError(t, validation.Validate("%%%", rule))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("X", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, validation.Validate("20250315", NoWhitespace))
	assert.Error(t, validation.Validate(" 20250315", NoWhitespace))
}
