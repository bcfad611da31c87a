// Package storage is the object-storage side-channel for uploaded images.
// Files live on local disk under a per-folder key and are served statically
// from /uploads.
package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoredFile identifies one uploaded object.
type StoredFile struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type Storage interface {
	Upload(file *multipart.FileHeader, folder string) (*StoredFile, error)
	Delete(key string) error
}

// LocalStorage keeps uploads on disk under BaseDir and exposes them under
// BaseURL + "/uploads/<key>".
type LocalStorage struct {
	BaseDir string
	BaseURL string
}

func NewLocal(baseDir, baseURL string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir, BaseURL: baseURL}
}

func (s *LocalStorage) Upload(file *multipart.FileHeader, folder string) (*StoredFile, error) {
	dir := filepath.Join(s.BaseDir, folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s-%d%s", uuid.NewString(), time.Now().Unix(), ext)
	key := folder + "/" + name

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &StoredFile{
		URL: fmt.Sprintf("%s/uploads/%s", s.BaseURL, key),
		Key: key,
	}, nil
}

func (s *LocalStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.BaseDir, key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Cleanup removes an object best-effort after a failed write path. Failures
// are logged as cleanup warnings and never escalated.
func Cleanup(s Storage, log *zap.SugaredLogger, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.Delete(key); err != nil {
			log.Warnw("cleanup failed, orphaned object left in storage", "key", key, "err", err)
		}
	}
}
