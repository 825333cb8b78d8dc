package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredFilename returns a collision-free name for an uploaded file,
// preserving the original extension in lowercase.
func StoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}
