package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrDescriptorMissing", ErrDescriptorMissing},
		{"ErrDatasetNotFound", ErrDatasetNotFound},
		{"ErrNoImportDirs", ErrNoImportDirs},
		{"ErrNoBaseURL", ErrNoBaseURL},
		{"ErrNoCredentials", ErrNoCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Run("with message", func(t *testing.T) {
		err := &APIError{Status: 400, Message: "invalid dataset"}
		assert.Equal(t, "registry: API error 400: invalid dataset", err.Error())
	})

	t.Run("without message", func(t *testing.T) {
		err := &APIError{Status: 500}
		assert.Equal(t, "registry: API error 500", err.Error())
	})

	t.Run("unwraps through fmt wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("create dataset a: %w", &APIError{Status: 422, Message: "nope"})

		var apiErr *APIError
		assert.True(t, errors.As(wrapped, &apiErr))
		assert.Equal(t, 422, apiErr.Status)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Import: ImportConfig{Dirs: []string{"/data"}},
		API:    APIConfig{BaseURL: "http://localhost:3000", Admin: "admin", Password: "secret"},
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid
		assert.NoError(t, cfg.Validate())
	})

	t.Run("no import dirs", func(t *testing.T) {
		cfg := valid
		cfg.Import.Dirs = nil
		assert.ErrorIs(t, cfg.Validate(), ErrNoImportDirs)
	})

	t.Run("no base URL", func(t *testing.T) {
		cfg := valid
		cfg.API.BaseURL = ""
		assert.ErrorIs(t, cfg.Validate(), ErrNoBaseURL)
	})

	t.Run("no admin", func(t *testing.T) {
		cfg := valid
		cfg.API.Admin = ""
		assert.ErrorIs(t, cfg.Validate(), ErrNoCredentials)
	})
}
