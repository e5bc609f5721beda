package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNickname(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		wantErr  bool
	}{
		{"valid alphanumeric", "alice1", false},
		{"minimum length", "abc", false},
		{"too short", "ab", true},
		{"empty", "", true},
		{"contains special character", "alice!", true},
		{"contains space", "alice one", true},
		{"contains hangul", "앨리스abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNickname(tt.nickname)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		nickname string
		wantErr  bool
	}{
		{"valid", "pass1234", "alice1", false},
		{"minimum length", "abcd", "alice1", false},
		{"too short", "abc", "alice1", true},
		{"contains nickname", "xxalice1xx", "alice1", true},
		{"empty", "", "alice1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password, tt.nickname)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
