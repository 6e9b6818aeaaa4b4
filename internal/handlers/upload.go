package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedImageExts is the upload extension allowlist.
var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func isAllowedImage(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// safeProductName turns a product name into a directory name: every
// non-alphanumeric rune becomes an underscore and letters are lower-cased.
// The mapping must stay stable because existing image paths on disk and in
// the database are derived from it.
func safeProductName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '_'
	}, name)
}

// imageFilename generates a unique filename preserving the original extension.
func imageFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("image_%s%s", uuid.NewString(), ext)
}

// saveImageFile validates and writes one uploaded file into dir, creating the
// directory if needed. It returns the generated filename.
func (h *Handlers) saveImageFile(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	if !isAllowedImage(file.Filename) {
		return "", fmt.Errorf("only images are allowed (JPEG, PNG, GIF, WEBP)")
	}
	if file.Size > h.MaxFileSize {
		return "", fmt.Errorf("file %s exceeds the %d byte limit", file.Filename, h.MaxFileSize)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filename := imageFilename(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return filename, nil
}

// removeImageFile deletes the on-disk file behind a stored "/images/..." path.
// A missing or undeletable file is logged and ignored: a stale file must
// never block a database mutation.
func (h *Handlers) removeImageFile(imagePath string) {
	relative := strings.TrimPrefix(imagePath, "/images/")
	fullPath := filepath.Join(h.ImagesPath, relative)
	if err := os.Remove(fullPath); err != nil {
		log.Printf("Image file not found or already deleted: %s", fullPath)
	}
}
