// Package output writes generated files below a directory.
package output

import (
	"fmt"
	"path/filepath"

	"github.com/hanpama/protoc-gen-apollo/internal/codegen"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// WriteFiles writes every file to dir, creating parent directories as
// needed. File names may contain slashes.
func WriteFiles(fs afero.Fs, dir string, files []codegen.File, log logrus.FieldLogger) error {
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", filepath.Dir(path), err)
		}
		if err := afero.WriteFile(fs, path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("write file %s: %w", path, err)
		}
		if log != nil {
			log.WithField("path", path).Info("wrote file")
		}
	}
	return nil
}
