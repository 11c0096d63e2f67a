// Package clipboard provides image and text access to the system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.design/x/clipboard"

	"github.com/guidelens/guidelens/internal/logger"
)

// MaxImageSize caps attached images so prompts stay under the API limit
const MaxImageSize = 4 << 20 // 4MB

// MaxImageDimension is the maximum allowed width or height
const MaxImageDimension = 8000

// ImageData represents clipboard image data
type ImageData struct {
	Data      []byte // PNG encoded image data
	MediaType string // Always "image/png" since we re-encode
	Width     int
	Height    int
}

// initialized tracks whether the clipboard has been initialized
var initialized bool

// Init initializes the clipboard. Safe to call multiple times; on headless
// systems it fails and all reads/writes become no-ops.
func Init() error {
	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		logger.Debug("Clipboard: unavailable: %v", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	return nil
}

// WriteText copies text to the clipboard
func WriteText(text string) error {
	if !initialized {
		if err := Init(); err != nil {
			return err
		}
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// ReadText reads text from the clipboard
func ReadText() (string, error) {
	if !initialized {
		if err := Init(); err != nil {
			return "", err
		}
	}

	textBytes := clipboard.Read(clipboard.FmtText)
	if textBytes == nil {
		return "", nil
	}
	return string(textBytes), nil
}

// ReadImage attempts to read an image from the clipboard.
// Returns nil if the clipboard doesn't contain an image.
func ReadImage() (*ImageData, error) {
	if !initialized {
		if err := Init(); err != nil {
			return nil, err
		}
	}

	imgBytes := clipboard.Read(clipboard.FmtImage)
	if len(imgBytes) == 0 {
		return nil, nil // No image in clipboard, not an error
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode clipboard image: %w", err)
	}

	bounds := img.Bounds()

	// Re-encode as PNG for a consistent format
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}

	return &ImageData{
		Data:      pngBuf.Bytes(),
		MediaType: "image/png",
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

// Validate checks the image against attachment limits
func (img *ImageData) Validate() error {
	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("image too large: %d bytes (max %d)", len(img.Data), MaxImageSize)
	}
	if img.Width > MaxImageDimension || img.Height > MaxImageDimension {
		return fmt.Errorf("image dimensions too large: %dx%d (max %dx%d)",
			img.Width, img.Height, MaxImageDimension, MaxImageDimension)
	}
	return nil
}

// SizeKB returns the image size in kilobytes
func (img *ImageData) SizeKB() int {
	return len(img.Data) / 1024
}
