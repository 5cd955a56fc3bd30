package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// WriteArtifact writes data to path, creating parent directories. The bytes
// are written as-is; renderers never emit a byte order mark.
func WriteArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errs.Wrap(errs.ErrCodeSerializationIO, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errs.Wrap(errs.ErrCodeSerializationIO, err, "write %s", path)
	}
	return nil
}

// DefaultOutputName is the base name used when no output is given.
const DefaultOutputName = "network"

// OutputPath returns the output file for format. Without an explicit output
// the file is DefaultOutputName next to the input. An output whose extension
// does not match the format gets the format's extension appended, and with
// several formats the output's extension is replaced per format.
func OutputPath(input, output, format string, multi bool) string {
	ext := Extensions[format]
	if strings.TrimSpace(output) == "" {
		return filepath.Join(filepath.Dir(input), DefaultOutputName+ext)
	}
	if multi {
		known := false
		for _, e := range Extensions {
			if strings.EqualFold(filepath.Ext(output), e) {
				known = true
			}
		}
		if known {
			output = strings.TrimSuffix(output, filepath.Ext(output))
		}
		return output + ext
	}
	if !strings.EqualFold(filepath.Ext(output), ext) {
		return output + ext
	}
	return output
}
