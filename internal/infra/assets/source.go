package assets

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrNotFound reports a missing asset.
var ErrNotFound = errors.New("asset not found")

// Source reads whole static files by slash-separated name.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

// CleanName normalizes a request path into a root-relative asset name. It
// returns false for paths that do not name a file.
func CleanName(requestPath string) (string, bool) {
	cleaned := path.Clean("/" + requestPath)
	name := strings.TrimPrefix(cleaned, "/")
	if name == "" || name == "." {
		return "", false
	}
	return name, true
}
