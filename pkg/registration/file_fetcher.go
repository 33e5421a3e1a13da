package registration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileFetcher serves search responses saved as <Directory>/<COURSE>.json.
// A <Directory>/<term>/<COURSE>.json file takes precedence when present.
type FileFetcher struct {
	Directory string
}

func NewFileFetcher(directory string) *FileFetcher {
	return &FileFetcher{Directory: directory}
}

func (fetcher *FileFetcher) FetchSections(ctx context.Context, courseCode, term string) ([]RawSection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.ToUpper(courseCode) + ".json"
	candidates := []string{filepath.Join(fetcher.Directory, name)}
	if term != "" {
		candidates = append([]string{filepath.Join(fetcher.Directory, term, name)}, candidates...)
	}

	for _, path := range candidates {
		bytes, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("cannot read %v: %w", path, err)
		}
		return ParseSearchResponse(bytes)
	}
	return nil, ErrNoSections
}
