package httpapi

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkarpis/notevault/internal/filex"
)

// UploadStore places uploaded note images under <root>/notes and hands out
// the relative path that gets recorded on the note.
type UploadStore struct {
	dir string
}

func NewUploadStore(root string) (*UploadStore, error) {
	dir := filepath.Join(root, "notes")
	if _, err := filex.EnsureSubDir(dir); err != nil {
		return nil, fmt.Errorf("preparing upload dir: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Save writes the uploaded file under the store directory with a fresh
// random name, keeping the original extension.
func (u *UploadStore) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(u.dir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("saving upload: %w", err)
	}

	return filepath.ToSlash(dst), nil
}
