// internals/features/uploads/service/path_resolver.go
package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"unihomework_backend/internals/constants"
)

// ResolveStoragePath derives the relative storage directory for a resource.
// Posts live at course/{c}/hw/{n}/post; submissions at
// course/{c}/hw/{n}/submit/student/{s} and require a student id.
func ResolveStoragePath(courseID uint, hwNo int, resourceType string, studentID uint) (string, error) {
	switch resourceType {
	case constants.ResourcePost:
		return fmt.Sprintf("course/%d/hw/%d/post", courseID, hwNo), nil
	case constants.ResourceSubmit:
		if studentID == 0 {
			return "", fiber.NewError(fiber.StatusBadRequest, "student id required for submit resources")
		}
		return fmt.Sprintf("course/%d/hw/%d/submit/student/%d", courseID, hwNo, studentID), nil
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, "unsupported resource type")
	}
}

// PublicURL maps a stored relative path to its serving URL.
func PublicURL(relativePath string) string {
	return "/uploads/" + filepath.ToSlash(relativePath)
}

// allowedExt reports whether the original filename carries an allowed image
// extension, and returns that extension lowercased without the dot.
func allowedExt(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return "", false
	}
	_, ok := constants.AllowedImageExts[ext]
	return ext, ok
}

// SaveUpload stores one uploaded file under uploadRoot/destDir with a
// generated name. The original filename only contributes its extension.
func SaveUpload(fh *multipart.FileHeader, uploadRoot, destDir string) (string, error) {
	ext, ok := allowedExt(fh.Filename)
	if !ok {
		return "", fiber.NewError(fiber.StatusBadRequest, "unsupported file type")
	}

	absDir := filepath.Join(uploadRoot, filepath.FromSlash(destDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "failed to prepare upload dir")
	}

	name := uuid.NewString() + "." + ext
	if err := writeFile(fh, filepath.Join(absDir, name)); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "failed to save file")
	}
	return destDir + "/" + name, nil
}

// ReplaceSubmissionImages clears the destination directory and writes the new
// batch, so the latest submission's image set fully replaces the previous one.
// The clear-then-write is not atomic against a concurrent reader.
func ReplaceSubmissionImages(files []*multipart.FileHeader, uploadRoot, destDir string) ([]string, error) {
	absDir := filepath.Join(uploadRoot, filepath.FromSlash(destDir))
	if err := os.RemoveAll(absDir); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to clear upload dir")
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to prepare upload dir")
	}

	rels := make([]string, 0, len(files))
	for _, fh := range files {
		rel, err := SaveUpload(fh, uploadRoot, destDir)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

func writeFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
