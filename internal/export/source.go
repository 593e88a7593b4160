package export

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ExportSource = (*Source)(nil)

// Source reads a conversation export rooted at a directory.
type Source struct {
	root string
}

// NewSource creates an export source for the given root directory.
// The root must exist; otherwise domain.ErrInputNotFound is returned.
func NewSource(root string) (*Source, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, root)
		}
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInputNotFound, root)
	}

	return &Source{root: abs}, nil
}

// Root returns the absolute export root.
func (s *Source) Root() string {
	return s.root
}

// Files streams the JSON conversation files under the root in lexical
// path order. WalkDir visits entries lexically, which keeps the stream
// deterministic across runs.
func (s *Source) Files(ctx context.Context) (<-chan domain.SourceFileInfo, <-chan error) {
	infoCh := make(chan domain.SourceFileInfo)
	errCh := make(chan error, 1)

	go func() {
		defer close(infoCh)
		defer close(errCh)

		err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Skip hidden directories (e.g., .DS_Store clutter dirs)
				if path != s.root && strings.HasPrefix(d.Name(), ".") {
					return fs.SkipDir
				}
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), ".json") {
				return nil
			}

			fi, err := d.Info()
			if err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case infoCh <- domain.SourceFileInfo{
				Path:         path,
				SizeBytes:    fi.Size(),
				ModifiedAtMs: fi.ModTime().UnixMilli(),
			}:
				return nil
			}
		})
		if err != nil {
			errCh <- fmt.Errorf("walking export tree: %w", err)
		}
	}()

	return infoCh, errCh
}

// conversationID derives a stable conversation identifier for a file.
// The export's own thread path wins; otherwise the path relative to the
// root is used, so the identifier does not depend on where the export
// tree happens to live.
func (s *Source) conversationID(path, threadPath string) string {
	if threadPath != "" {
		return threadPath
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
