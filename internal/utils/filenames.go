package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadFilename builds a collision-free name for a stored upload,
// keeping the original extension (lowercased).
func UploadFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}
