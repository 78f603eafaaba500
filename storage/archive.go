// Package storage keeps the photo archive: one folder per watch point,
// one per date under it, one per shift under that, mirroring the Drive
// layout the notifier and the admin dashboard expect.
package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// ErrNotDataURI is returned when an image payload is not a data URI.
var ErrNotDataURI = errors.New("image is not a data URI")

// Archive writes submitted photos under root/<point>/<date>/<shift>/.
type Archive struct {
	root string
}

// NewArchive creates the archive root if needed.
func NewArchive(root string) (*Archive, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive root: %w", err)
	}
	return &Archive{root: root}, nil
}

// Root returns the archive root directory.
func (a *Archive) Root() string {
	return a.root
}

// ShiftDir returns the directory photos for one point/date/shift land in.
func (a *Archive) ShiftDir(pointName, date string, shift models.Shift) string {
	return filepath.Join(a.root, pointName, date, string(shift))
}

// SaveImages decodes the data-URI images and writes them into the shift
// folder. Returns the number of files written. A duplicate submission for
// the same point/date/shift appends more files to the same folder.
func (a *Archive) SaveImages(pointName, date string, shift models.Shift, images []string) (int, error) {
	dir := a.ShiftDir(pointName, date, shift)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create shift folder: %w", err)
	}

	saved := 0
	for _, img := range images {
		data, ext, err := DecodeDataURI(img)
		if err != nil {
			return saved, err
		}

		name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return saved, fmt.Errorf("failed to write image: %w", err)
		}
		saved++
	}

	return saved, nil
}

// CountImages reports how many photos exist for one point/date/shift.
func (a *Archive) CountImages(pointName, date string, shift models.Shift) (int, error) {
	entries, err := os.ReadDir(a.ShiftDir(pointName, date, shift))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read shift folder: %w", err)
	}

	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			count++
		}
	}
	return count, nil
}

// DecodeDataURI splits a "data:image/jpeg;base64,..." payload into raw
// bytes and a file extension.
func DecodeDataURI(dataURI string) ([]byte, string, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return nil, "", ErrNotDataURI
	}

	meta, payload, found := strings.Cut(dataURI, ",")
	if !found {
		return nil, "", ErrNotDataURI
	}

	mediaType := strings.TrimPrefix(meta, "data:")
	mediaType, _, _ = strings.Cut(mediaType, ";")

	ext := "bin"
	switch mediaType {
	case "image/jpeg", "image/jpg":
		ext = "jpg"
	case "image/png":
		ext = "png"
	case "image/webp":
		ext = "webp"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image payload: %w", err)
	}

	return data, ext, nil
}

// EncodeDataURI is the inverse of DecodeDataURI for JPEG payloads.
func EncodeDataURI(jpeg []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)
}
