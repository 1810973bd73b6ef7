package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abhishek200416/p2/internal/apperr"
)

// Kind selects the upload family and its directory.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// prefix is the content-type family an upload must declare.
func (k Kind) prefix() string {
	return string(k) + "/"
}

func (k Kind) dirName() string {
	return string(k) + "s"
}

// Asset describes one stored file; everything here is derived from the
// filesystem on demand, no metadata record is persisted.
type Asset struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Created   time.Time `json:"created,omitempty"`
}

// Store keeps uploaded media on local disk under one directory per kind.
// Concurrent uploads are safe because every file gets a fresh uuid stem.
type Store struct {
	root   string
	logger *zap.SugaredLogger
}

func NewStore(root string, logger *zap.SugaredLogger) (*Store, error) {
	for _, kind := range []Kind{KindVideo, KindImage} {
		if err := os.MkdirAll(filepath.Join(root, kind.dirName()), 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
		}
	}
	return &Store{root: root, logger: logger}, nil
}

func (s *Store) dir(kind Kind) string {
	return filepath.Join(s.root, kind.dirName())
}

// Save validates the declared content-type family and streams the upload
// to disk under a generated id plus the original extension. The declared
// type is trusted as-is; this is a convenience check, not a security
// control.
func (s *Store) Save(kind Kind, declaredType, originalName string, r io.Reader) (*Asset, error) {
	if !strings.HasPrefix(declaredType, kind.prefix()) {
		return nil, fmt.Errorf("%w: file must be a %s", apperr.ErrValidation, kind)
	}

	id := uuid.NewString()
	filename := id + filepath.Ext(originalName)
	path := filepath.Join(s.dir(kind), filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	size, err := io.Copy(dst, r)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}

	asset := &Asset{
		ID:       id,
		Filename: filename,
		URL:      s.serveURL(kind, filename),
		Size:     size,
	}
	if kind == KindImage {
		if thumb, err := s.generateThumbnail(kind, id, path); err == nil {
			asset.Thumbnail = thumb
		} else {
			s.logger.Debugf("thumbnail for %s skipped: %v", filename, err)
		}
	}
	return asset, nil
}

// Path resolves a stored filename to its on-disk path. The name is
// reduced to its base to keep lookups inside the kind directory.
func (s *Store) Path(kind Kind, filename string) (string, error) {
	path := filepath.Join(s.dir(kind), filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", apperr.ErrNotFound, filename)
	}
	return path, nil
}

// Delete removes the first file whose stem matches id, any extension.
func (s *Store) Delete(kind Kind, id string) error {
	matches, err := filepath.Glob(filepath.Join(s.dir(kind), filepath.Base(id)+".*"))
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, id)
	}
	if err := os.Remove(matches[0]); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	// best-effort thumbnail cleanup
	_ = os.Remove(filepath.Join(s.dir(kind), "thumbs", id+"_thumb.jpg"))
	return nil
}

// List enumerates stored files, metadata computed live from the
// filesystem on every call.
func (s *Store) List(kind Kind) ([]Asset, error) {
	entries, err := os.ReadDir(s.dir(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	assets := make([]Asset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		name := entry.Name()
		assets = append(assets, Asset{
			ID:       strings.TrimSuffix(name, filepath.Ext(name)),
			Filename: name,
			URL:      s.serveURL(kind, name),
			Size:     info.Size(),
			Created:  info.ModTime(),
		})
	}
	return assets, nil
}

// Stats reports per-kind file count and total bytes.
func (s *Store) Stats(kind Kind) (count int, bytes int64, err error) {
	assets, err := s.List(kind)
	if err != nil {
		return 0, 0, err
	}
	for _, a := range assets {
		bytes += a.Size
	}
	return len(assets), bytes, nil
}

// Available reports whether the kind directory exists.
func (s *Store) Available(kind Kind) bool {
	info, err := os.Stat(s.dir(kind))
	return err == nil && info.IsDir()
}

func (s *Store) serveURL(kind Kind, filename string) string {
	return fmt.Sprintf("/api/super/%s/serve/%s", kind, filename)
}

func (s *Store) generateThumbnail(kind Kind, id, srcPath string) (string, error) {
	src, err := imaging.Open(srcPath)
	if err != nil {
		return "", err
	}
	thumbDir := filepath.Join(s.dir(kind), "thumbs")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return "", err
	}
	thumb := imaging.Resize(src, 320, 0, imaging.Lanczos)
	thumbPath := filepath.Join(thumbDir, id+"_thumb.jpg")
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", err
	}
	return filepath.Join("thumbs", id+"_thumb.jpg"), nil
}
