package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func fileHeader(c *qt.C, name, content string) *multipart.FileHeader {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	c.Assert(err, qt.IsNil)
	_, err = part.Write([]byte(content))
	c.Assert(err, qt.IsNil)
	c.Assert(writer.Close(), qt.IsNil)

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Assert(req.ParseMultipartForm(1<<20), qt.IsNil)
	return req.MultipartForm.File["file"][0]
}

func TestLocalStorageUpload(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	store := NewLocal(dir, "http://cdn.test")

	stored, err := store.Upload(fileHeader(c, "photo.jpg", "image-bytes"), "products")
	c.Assert(err, qt.IsNil)

	c.Assert(strings.HasPrefix(stored.Key, "products/"), qt.IsTrue)
	c.Assert(strings.HasSuffix(stored.Key, ".jpg"), qt.IsTrue)
	c.Assert(stored.URL, qt.Equals, "http://cdn.test/uploads/"+stored.Key)

	f, err := os.Open(filepath.Join(dir, stored.Key))
	c.Assert(err, qt.IsNil)
	defer f.Close()
	data, err := io.ReadAll(f)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "image-bytes")

	// Two uploads of the same file never collide.
	again, err := store.Upload(fileHeader(c, "photo.jpg", "other"), "products")
	c.Assert(err, qt.IsNil)
	c.Assert(again.Key, qt.Not(qt.Equals), stored.Key)
}

func TestLocalStorageDelete(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	store := NewLocal(dir, "http://cdn.test")

	stored, err := store.Upload(fileHeader(c, "photo.jpg", "image-bytes"), "banners")
	c.Assert(err, qt.IsNil)

	c.Assert(store.Delete(stored.Key), qt.IsNil)
	_, err = os.Stat(filepath.Join(dir, stored.Key))
	c.Assert(os.IsNotExist(err), qt.IsTrue)

	// Deleting a missing or empty key is not an error.
	c.Assert(store.Delete(stored.Key), qt.IsNil)
	c.Assert(store.Delete(""), qt.IsNil)
}
