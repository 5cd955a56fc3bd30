package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "SW1", false},
		{"valid with underscore", "UTM_2", false},
		{"valid japanese", "ルータ1", false},
		{"valid with space", "core sw", false},
		{"valid with tab", "a\tb", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("x", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateSheetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "構成図作成", false},
		{"ascii", "Sheet1", false},
		{"max length", strings.Repeat("a", 31), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 32), true},
		{"slash", "a/b", true},
		{"bracket", "[x]", true},
		{"question", "what?", true},
		{"leading apostrophe", "'quoted", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSheetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSheetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"xlsx", "network.xlsx", false},
		{"csv", "nodes.csv", false},
		{"japanese", "構成図.xlsx", false},

		{"empty", "", true},
		{"with path /", "path/to/file.xlsx", true},
		{"with path \\", "path\\file.xlsx", true},
		{"traversal", "..xlsx", true},
		{"control", "a\x01.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
