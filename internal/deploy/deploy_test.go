package deploy

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	velderrors "github.com/veld-dev/veld/internal/errors"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	fail    bool
}

type fakeObject struct {
	contentType string
	body        string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string]fakeObject)}
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.fail {
		return nil, stderrors.New("access denied")
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.objects[*params.Key] = fakeObject{
		contentType: *params.ContentType,
		body:        string(body),
	}
	f.mu.Unlock()
	return &s3.PutObjectOutput{}, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestUploadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "<html></html>")
	writeFile(t, filepath.Join(dir, "assets", "app.css"), "body {}")

	client := newFakeS3()
	u := New(client, "my-site", "")

	summary, err := u.UploadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if summary.Files != 2 {
		t.Errorf("expected 2 files, got %d", summary.Files)
	}

	if obj, ok := client.objects["index.html"]; !ok {
		t.Error("index.html not uploaded")
	} else if !strings.Contains(obj.contentType, "text/html") {
		t.Errorf("wrong content type for html: %q", obj.contentType)
	}

	if obj, ok := client.objects["assets/app.css"]; !ok {
		t.Error("nested file should keep its relative key")
	} else if !strings.Contains(obj.contentType, "text/css") {
		t.Errorf("wrong content type for css: %q", obj.contentType)
	}
}

func TestUploadDirWithPrefix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "x")

	client := newFakeS3()
	u := New(client, "my-site", "/site/")

	if _, err := u.UploadDir(context.Background(), dir); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if _, ok := client.objects["site/index.html"]; !ok {
		t.Errorf("prefix should be applied, got keys %v", keys(client))
	}
}

func TestUploadMissingDir(t *testing.T) {
	u := New(newFakeS3(), "my-site", "")
	_, err := u.UploadDir(context.Background(), filepath.Join(t.TempDir(), "dist"))

	var ve *velderrors.VeldError
	if !stderrors.As(err, &ve) || ve.Code != "E100" {
		t.Errorf("expected E100 for missing build output, got %v", err)
	}
}

func TestUploadFailureWrapped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "x")

	client := newFakeS3()
	client.fail = true

	_, err := New(client, "my-site", "").UploadDir(context.Background(), dir)
	var ve *velderrors.VeldError
	if !stderrors.As(err, &ve) || ve.Code != "E101" {
		t.Errorf("expected E101 for failed upload, got %v", err)
	}
}

func TestContentTypeFallback(t *testing.T) {
	if ct := contentType("file.unknownext"); ct != "application/octet-stream" {
		t.Errorf("expected fallback content type, got %q", ct)
	}
}

func keys(f *fakeS3) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.objects))
	for k := range f.objects {
		out = append(out, k)
	}
	return out
}
