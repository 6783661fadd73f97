// Package storage implements the durable media store on Cloudinary, with a
// local staging directory for in-flight uploads.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStorage satisfies ports.ImageStorage. Each upload is first staged
// to a local temp file, pushed to Cloudinary from there, and the staged file
// is removed on every exit path.
type CloudinaryStorage struct {
	cld      *cloudinary.Cloudinary
	rootDir  string
	stageDir string
}

// NewCloudinaryStorage builds the store. Credentials come from CLOUDINARY_URL
// (or the individual CLOUDINARY_* variables) per the Cloudinary SDK. rootDir
// is the logical top-level folder; stageDir holds in-flight uploads.
func NewCloudinaryStorage(rootDir, stageDir string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	if err := os.MkdirAll(stageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	return &CloudinaryStorage{cld: cld, rootDir: rootDir, stageDir: stageDir}, nil
}

// Upload stages the multipart file locally, pushes it to Cloudinary under
// rootDir/folder, and returns the secure URL.
func (s *CloudinaryStorage) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	staged, err := s.stage(file)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(staged)
	}()

	f, err := os.Open(staged)
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	resp, err := s.cld.Upload.Upload(ctx, f, uploader.UploadParams{
		Folder:         joinFolder(s.rootDir, folder),
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload returned no URL")
	}
	return resp.SecureURL, nil
}

// Delete removes a previously uploaded image by URL. Best effort: an unknown
// URL shape is an error the caller may log and ignore.
func (s *CloudinaryStorage) Delete(ctx context.Context, fileURL string) error {
	publicID := extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("cannot derive public id from %q", fileURL)
	}

	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy result: %s", resp.Result)
	}
	return nil
}

// stage copies the multipart upload to the staging directory under a unique
// name and returns its path.
func (s *CloudinaryStorage) stage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(s.stageDir, name))
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("stage upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("stage upload: %w", err)
	}
	return dst.Name(), nil
}

func joinFolder(root, folder string) string {
	if root == "" {
		return folder
	}
	return root + "/" + folder
}

// extractPublicID recovers the Cloudinary public id from a delivery URL, e.g.
// https://res.cloudinary.com/demo/image/upload/v123/blog/avatars/x.webp
// yields blog/avatars/x.
func extractPublicID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(u.Path, "/")
	upload := -1
	for i, p := range parts {
		if p == "upload" {
			upload = i
			break
		}
	}
	if upload == -1 || upload+1 >= len(parts) {
		return ""
	}

	rest := parts[upload+1:]
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") {
		// Version segment.
		rest = rest[1:]
	}

	id := strings.Join(rest, "/")
	return strings.TrimSuffix(id, filepath.Ext(id))
}
