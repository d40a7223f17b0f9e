package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxBytes     = 5 << 20
	DefaultMaxDimension = 4096
)

var (
	ErrEmptyImage       = errors.New("media: empty image")
	ErrImageTooLarge    = errors.New("media: image exceeds size limit")
	ErrUnsupportedImage = errors.New("media: unsupported image format")
	ErrImageDimensions  = errors.New("media: image dimensions out of range")
)

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// Result is the validated upload buffered in memory, with the content type
// and extension taken from the decoded header rather than the client.
type Result struct {
	Bytes       []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

type formatInfo struct {
	contentType string
	extension   string
}

var formats = map[string]formatInfo{
	"jpeg": {contentType: "image/jpeg", extension: ".jpg"},
	"png":  {contentType: "image/png", extension: ".png"},
	"gif":  {contentType: "image/gif", extension: ".gif"},
	"webp": {contentType: "image/webp", extension: ".webp"},
}

type Inspector struct {
	maxBytes     int64
	maxDimension int
}

func NewInspector(maxBytes int64, maxDimension int) *Inspector {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Inspector{maxBytes: maxBytes, maxDimension: maxDimension}
}

func (i *Inspector) Inspect(upload Upload) (*Result, error) {
	if upload.Reader == nil {
		return nil, ErrEmptyImage
	}
	if upload.Size > i.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, upload.Size)
	}
	data, err := io.ReadAll(io.LimitReader(upload.Reader, i.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if int64(len(data)) > i.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrImageTooLarge, i.maxBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	info, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > i.maxDimension || cfg.Height > i.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageDimensions, cfg.Width, cfg.Height)
	}

	return &Result{
		Bytes:       data,
		ContentType: info.contentType,
		Extension:   info.extension,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
