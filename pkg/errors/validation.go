package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxSheetNameLength is the worksheet name limit imposed by the xlsx format.
const maxSheetNameLength = 31

// ValidateNodeID validates a node identifier read from an input source.
//
// The rules are deliberately loose because identifiers are free text typed
// into a spreadsheet:
//   - No empty (or whitespace-only) IDs
//   - No control characters other than tab
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "node ID cannot be empty")
	}

	if utf8.RuneCountInString(id) > 256 {
		return New(ErrCodeInvalidInput, "node ID too long (max 256 characters): %.32q", id)
	}

	for _, r := range id {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node ID contains invalid control characters: %q", id)
		}
	}

	return nil
}

// ValidateSheetName validates a worksheet name.
// It enforces the same restrictions spreadsheet applications apply so that a
// name accepted here can always be looked up in a workbook.
func ValidateSheetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "sheet name cannot be empty")
	}

	if utf8.RuneCountInString(name) > maxSheetNameLength {
		return New(ErrCodeInvalidInput, "sheet name too long (max %d characters)", maxSheetNameLength)
	}

	if strings.ContainsAny(name, `[]:*?/\`) {
		return New(ErrCodeInvalidInput, "sheet name contains invalid characters: %q", name)
	}

	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return New(ErrCodeInvalidInput, "sheet name cannot start or end with an apostrophe")
	}

	return nil
}

// ValidateFilename validates a client-supplied filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}

	if strings.Contains(filename, "..") {
		return New(ErrCodeInvalidInput, "filename cannot contain path traversal sequences (..)")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "filename contains invalid characters")
		}
	}

	return nil
}
