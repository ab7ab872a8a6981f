// Package media turns uploaded pictures into avatar thumbnails.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// AvatarSize is the bounding box avatars are scaled into.
const AvatarSize = 125

// maxPixels guards against decompression bombs.
const maxPixels = 40_000_000

const jpegQuality = 90

var (
	ErrEmptyImage       = errors.New("media: empty image data")
	ErrUnsupportedImage = errors.New("media: unsupported image format")
	ErrImageTooLarge    = errors.New("media: image dimensions too large")
)

// Upload is a picture as received from the client.
type Upload struct {
	Reader   io.Reader
	FileName string
}

// Result is the encoded thumbnail.
type Result struct {
	Bytes       []byte
	ContentType string
	// Ext is the file extension matching ContentType, with the leading dot.
	Ext string
}

// Processor converts an upload into a thumbnail fitting maxDimension.
type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// ThumbnailProcessor scales PNG, JPEG, GIF and WebP pictures down with a
// Catmull-Rom filter keeping the aspect ratio. Pictures already inside the
// box are re-encoded at their size. The output format follows the input,
// except WebP which is written as PNG.
type ThumbnailProcessor struct{}

func NewThumbnailProcessor() *ThumbnailProcessor {
	return &ThumbnailProcessor{}
}

func (p *ThumbnailProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, ErrEmptyImage
	}
	if maxDimension <= 0 {
		maxDimension = AvatarSize
	}

	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return nil, ErrImageTooLarge
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	w, h := scaleToFit(cfg.Width, cfg.Height, maxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	return encode(dst, format)
}

func encode(img image.Image, format string) (*Result, error) {
	var buf bytes.Buffer
	res := &Result{}

	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
		res.ContentType, res.Ext = "image/jpeg", ".jpg"
	case "gif":
		err = gif.Encode(&buf, img, nil)
		res.ContentType, res.Ext = "image/gif", ".gif"
	case "png", "webp":
		err = png.Encode(&buf, img)
		res.ContentType, res.Ext = "image/png", ".png"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
	if err != nil {
		return nil, fmt.Errorf("media: encode %s: %w", format, err)
	}

	res.Bytes = buf.Bytes()
	return res, nil
}

// scaleToFit returns the size of a width x height picture scaled down to fit
// a maxDim square. Pictures never grow.
func scaleToFit(width, height, maxDim int) (int, int) {
	if width <= maxDim && height <= maxDim {
		return width, height
	}
	if width >= height {
		return maxDim, atLeastOne(int(math.Round(float64(height) * float64(maxDim) / float64(width))))
	}
	return atLeastOne(int(math.Round(float64(width) * float64(maxDim) / float64(height)))), maxDim
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
