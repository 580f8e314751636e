package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/perbu/advomatch/pkg/advocate"
)

// File reads advocates from JSON files in a filesystem. Path may name a
// single .json file or a directory, in which case every .json file below it
// is read in lexical order.
type File struct {
	FS   fs.FS
	Path string
}

func (f File) ListAdvocates(ctx context.Context) ([]advocate.Advocate, error) {
	var all []advocate.Advocate

	// WalkDir visits entries in lexical order, which keeps the result stable.
	err := fs.WalkDir(f.FS, f.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		// Skip directories
		if d.IsDir() {
			return nil
		}

		if !strings.EqualFold(path.Ext(p), ".json") {
			return nil
		}

		advocates, err := LoadJSON(f.FS, p)
		if err != nil {
			return err
		}
		all = append(all, advocates...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// LoadJSON decodes one file holding a JSON array of advocates.
func LoadJSON(fsys fs.FS, name string) ([]advocate.Advocate, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	var advocates []advocate.Advocate
	if err := json.Unmarshal(content, &advocates); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return advocates, nil
}
