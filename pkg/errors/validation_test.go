package errors

import (
	"strings"
	"testing"
)

func TestValidateStoreKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "school", false},
		{"valid with dash", "my-diagram", false},
		{"valid with underscore", "my_diagram", false},
		{"valid with dot", "school.v2", false},
		{"valid uuid", "0b6c3f36-9c4e-4f9b-8f5e-2d1c1d5f7a10", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 201), true},
		{"path traversal ..", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"hidden", ".secret", true},
		{"space", "my diagram", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoreKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStoreKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidKey) {
				t.Errorf("ValidateStoreKey(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidKey)
			}
		})
	}
}

func TestValidateStoreURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain path", "./diagrams", false},
		{"file", "file:///var/lib/erdiagram", false},
		{"redis", "redis://localhost:6379/0", false},
		{"rediss", "rediss://cache.example.com:6380", false},
		{"mongodb", "mongodb://localhost:27017/erdiagram", false},
		{"mongodb srv", "mongodb+srv://cluster.example.com/erdiagram", false},

		{"empty", "", true},
		{"http", "http://example.com", true},
		{"postgres", "postgres://localhost/db", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoreURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStoreURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
