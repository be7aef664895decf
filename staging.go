package aeroki

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// StagedFile is a temporary copy of the editor contents handed to the compiler.
type StagedFile struct {
	Path string

	once sync.Once
	err  error
}

// StageSource writes source into dir under a unique name. The caller owns the
// file and must Remove it once the child has exited or failed to start.
func StageSource(dir, source string) (*StagedFile, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "aeroki-"+uuid.NewString()+SourceExtension)

	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			err = fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		}
		return nil, &StageError{Path: path, Err: err}
	}
	return &StagedFile{Path: path}, nil
}

// Remove deletes the staged file. Calling it more than once is harmless.
func (s *StagedFile) Remove() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.err = err
		}
	})
	return s.err
}
