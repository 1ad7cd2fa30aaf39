package validate

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris-app/libris/internal/core/domain"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func gifBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), []color.Color{color.Black, color.White})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestValidator_Classify_DocumentAccepted(t *testing.T) {
	v := New()

	res, err := v.Classify(strings.NewReader("%PDF-1.4"), "book.pdf", domain.FileDocument)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "pdf", res.DetectedKind)
}

func TestValidator_Classify_DocumentExtensionCaseInsensitive(t *testing.T) {
	v := New()

	res, err := v.Classify(strings.NewReader("%PDF-1.4"), "BOOK.PDF", domain.FileDocument)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
}

func TestValidator_Classify_DocumentDisallowedExtension(t *testing.T) {
	v := New()

	for _, name := range []string{"book.txt", "book.exe", "book", "book.pdf.txt"} {
		res, err := v.Classify(strings.NewReader("content"), name, domain.FileDocument)
		require.NoError(t, err)
		assert.False(t, res.Accepted, name)
		assert.Equal(t, domain.RejectDisallowedType, res.Reason, name)
	}
}

func TestValidator_Classify_ImageAccepted(t *testing.T) {
	v := New()

	res, err := v.Classify(bytes.NewReader(pngBytes(t)), "cover.png", domain.FileImage)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "png", res.DetectedKind)
}

func TestValidator_Classify_ImageDisallowedExtension(t *testing.T) {
	v := New()

	res, err := v.Classify(bytes.NewReader(pngBytes(t)), "cover.bmp", domain.FileImage)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, domain.RejectDisallowedType, res.Reason)
}

func TestValidator_Classify_RenamedTextAsImage(t *testing.T) {
	v := New()

	res, err := v.Classify(strings.NewReader("just some text"), "cover.png", domain.FileImage)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, domain.RejectInvalidContent, res.Reason)
}

func TestValidator_Classify_ImageFormatMismatch(t *testing.T) {
	v := New()

	// Real GIF bytes under a .png name decode fine but as the wrong
	// format, so the declared extension is a lie.
	res, err := v.Classify(bytes.NewReader(gifBytes(t)), "cover.png", domain.FileImage)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, domain.RejectInvalidContent, res.Reason)
}

func TestValidator_Classify_JpgJpegOneFamily(t *testing.T) {
	v := New()

	// .jpg and .jpeg both map to the jpeg decoder; PNG bytes fail both.
	for _, name := range []string{"cover.jpg", "cover.jpeg"} {
		res, err := v.Classify(bytes.NewReader(pngBytes(t)), name, domain.FileImage)
		require.NoError(t, err)
		assert.False(t, res.Accepted, name)
		assert.Equal(t, domain.RejectInvalidContent, res.Reason, name)
	}
}

func TestValidator_Classify_RewindsStream(t *testing.T) {
	v := New()
	data := pngBytes(t)
	r := bytes.NewReader(data)

	_, err := v.Classify(r, "cover.png", domain.FileImage)
	require.NoError(t, err)

	// The stream must be reusable for persistence after classification.
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestValidator_Classify_RewindsAfterRejection(t *testing.T) {
	v := New()
	r := strings.NewReader("not an image")

	res, err := v.Classify(r, "cover.png", domain.FileImage)
	require.NoError(t, err)
	require.False(t, res.Accepted)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "not an image", string(got))
}
