package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

func jpegURI(payload string) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestDecodeDataURI(t *testing.T) {
	data, ext, err := DecodeDataURI(jpegURI("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, "jpg", ext)

	data, ext, err = DecodeDataURI("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes")))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "png", ext)

	_, ext, err = DecodeDataURI("data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "bin", ext)
}

func TestDecodeDataURIRejectsNonDataURI(t *testing.T) {
	for _, input := range []string{"", "hello", "https://example.com/a.jpg", "data:image/jpeg;base64"} {
		_, _, err := DecodeDataURI(input)
		assert.ErrorIs(t, err, ErrNotDataURI, "input %q", input)
	}
}

func TestDecodeDataURIRejectsBadBase64(t *testing.T) {
	_, _, err := DecodeDataURI("data:image/jpeg;base64,!!!not-base64!!!")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotDataURI)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}
	data, ext, err := DecodeDataURI(EncodeDataURI(original))
	require.NoError(t, err)
	assert.Equal(t, original, data)
	assert.Equal(t, "jpg", ext)
}

func TestSaveImagesFolderLayout(t *testing.T) {
	archive, err := NewArchive(t.TempDir())
	require.NoError(t, err)

	saved, err := archive.SaveImages("จุดเฝ้าระวังที่ 03", "2024-01-10", models.ShiftMorning, []string{
		jpegURI("photo-1"),
		jpegURI("photo-2"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	dir := archive.ShiftDir("จุดเฝ้าระวังที่ 03", "2024-01-10", models.ShiftMorning)
	assert.Equal(t, filepath.Join(archive.Root(), "จุดเฝ้าระวังที่ 03", "2024-01-10", string(models.ShiftMorning)), dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, ".jpg", filepath.Ext(e.Name()))
	}
}

func TestSaveImagesAppendsOnResubmit(t *testing.T) {
	archive, err := NewArchive(t.TempDir())
	require.NoError(t, err)

	_, err = archive.SaveImages("จุดเฝ้าระวังที่ 01", "2024-01-10", models.ShiftEvening, []string{jpegURI("a")})
	require.NoError(t, err)
	_, err = archive.SaveImages("จุดเฝ้าระวังที่ 01", "2024-01-10", models.ShiftEvening, []string{jpegURI("b"), jpegURI("c")})
	require.NoError(t, err)

	count, err := archive.CountImages("จุดเฝ้าระวังที่ 01", "2024-01-10", models.ShiftEvening)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSaveImagesInvalidPayload(t *testing.T) {
	archive, err := NewArchive(t.TempDir())
	require.NoError(t, err)

	saved, err := archive.SaveImages("จุดเฝ้าระวังที่ 02", "2024-01-10", models.ShiftMorning, []string{
		jpegURI("good"),
		"not a data uri",
	})
	assert.ErrorIs(t, err, ErrNotDataURI)
	assert.Equal(t, 1, saved)
}

func TestCountImagesMissingFolder(t *testing.T) {
	archive, err := NewArchive(t.TempDir())
	require.NoError(t, err)

	count, err := archive.CountImages("จุดเฝ้าระวังที่ 09", "2024-01-10", models.ShiftMorning)
	require.NoError(t, err)
	assert.Zero(t, count)
}
