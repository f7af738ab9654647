package util

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPDFText_EmptyOrCorrupt(t *testing.T) {
	e := NewTextExtractor("", "")

	tests := map[string][]byte{
		"nil":              nil,
		"empty":            {},
		"garbage":          []byte("definitely not a pdf"),
		"truncated header": []byte("%PDF-1.7\n1 0 obj\n<<"),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Empty(t, e.ExtractPDFText(data))
			})
		})
	}
}

func TestExtractResumeText(t *testing.T) {
	e := NewTextExtractor("tesseract", "eng")

	text, err := e.ExtractResumeText("cv.TXT", []byte("  Jordan Lee\nGo developer \n"))
	require.NoError(t, err)
	assert.Equal(t, "Jordan Lee\nGo developer", text)

	text, err = e.ExtractResumeText("cv.pdf", []byte("broken"))
	require.NoError(t, err)
	assert.Empty(t, text)

	_, err = e.ExtractResumeText("photo.png", []byte{0x89})
	var unsupported *UnsupportedFileError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".png", unsupported.Ext)
}

func TestToGray(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(1, 0, color.RGBA{A: 255})

	gray := toGray(src)
	assert.Equal(t, uint8(255), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), gray.GrayAt(1, 0).Y)
	assert.Same(t, gray, toGray(gray))
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1,2]\n```", `[1,2]`},
		{"  {\"a\":1}  ", `{"a":1}`},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanJSON(tt.in))
	}
}
