package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-journal/internal/config"
)

// TestValidatePort exercises the settings form validator. By being in
// package 'ui', we can test the private method directly.
func TestValidatePort(t *testing.T) {
	app, _, _ := setupTestApp(t)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid_Default", config.DefaultPort, false},
		{"Valid_Min", "1", false},
		{"Valid_Max", "65535", false},
		{"Empty", "", true},
		{"NotANumber", "80a", true},
		{"Zero", "0", true},
		{"TooLarge", "70000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.validatePort(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeriveMessage(t *testing.T) {
	assert.Equal(t, "boom", deriveMessage(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", deriveMessage(nil, "fallback"))
	assert.Equal(t, "fallback", deriveMessage(errors.New(""), "fallback"))
}

// TestTrayStatusLabel_Fallback verifies the label survives a missing
// localizer by falling back to the hardcoded format.
func TestTrayStatusLabel_Fallback(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Localizer = nil

	assert.Contains(t, app.trayStatusLabel(3), "3")
	assert.Contains(t, app.trayStatusLabel(0), "0")
}
