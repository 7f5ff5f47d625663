package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotPDF is returned for uploads without a .pdf extension.
var ErrNotPDF = errors.New("only PDF files are allowed")

const uploadPrefix = "resume"

// StoredFile is an upload spooled to the upload directory.
type StoredFile struct {
	Name         string
	Path         string
	OriginalName string
	Size         int64
}

type StorageService interface {
	EnsureUploadDir() error
	SaveUpload(file *multipart.FileHeader) (*StoredFile, error)
	Path(name string) string
	Delete(name string) error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

// IsPDF reports whether filename has a .pdf extension, ignoring case.
func IsPDF(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".pdf"
}

// EnsureUploadDir implements StorageService.
func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveUpload implements StorageService. Files are stored under a UUID name.
func (s *storageService) SaveUpload(file *multipart.FileHeader) (*StoredFile, error) {
	if !IsPDF(file.Filename) {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, file.Filename)
	}

	uniqueFilename := fmt.Sprintf("%s_%s.pdf", uploadPrefix, uuid.New().String())
	filePath := s.Path(uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{
		Name:         uniqueFilename,
		Path:         filePath,
		OriginalName: file.Filename,
		Size:         written,
	}, nil
}

// Path implements StorageService.
func (s *storageService) Path(name string) string {
	return filepath.Join(s.uploadPath, filepath.Base(name))
}

// Delete implements StorageService.
func (s *storageService) Delete(name string) error {
	if err := os.Remove(s.Path(name)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
