// Package splitter turns an uploaded image container into normalized
// per-page JPEG images.
package splitter

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"

	// Decoders not registered by imaging.
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"invoicelens/internal/config"
	"invoicelens/internal/domain"
)

// FrameEnumerator returns every frame of a container in order. first is the
// already decoded first frame.
type FrameEnumerator func(data []byte, first image.Image) ([]image.Image, error)

// Option customizes a Splitter.
type Option func(*Splitter)

// WithFrameEnumerator sets the enumerator used for a decoder format name
// ("gif", "tiff", "png", ...). Formats without an enumerator are single-frame.
func WithFrameEnumerator(format string, fn FrameEnumerator) Option {
	return func(s *Splitter) {
		s.enumerators[format] = fn
	}
}

// Splitter splits uploads into pages.
type Splitter struct {
	quality      int
	maxDimension int
	autoOrient   bool
	enumerators  map[string]FrameEnumerator
	logger       logrus.FieldLogger
}

// New creates a Splitter from image settings.
func New(cfg config.ImageConfig, logger logrus.FieldLogger, opts ...Option) *Splitter {
	s := &Splitter{
		quality:      cfg.JPEGQuality,
		maxDimension: cfg.MaxDimension,
		autoOrient:   cfg.AutoOrient,
		enumerators: map[string]FrameEnumerator{
			"gif":  gifFrames,
			"tiff": tiffFrames,
		},
		logger: logger,
	}
	if s.quality == 0 {
		s.quality = 85
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split decodes data and returns one JPEG page per frame, in frame order.
// Data that is not a decodable image yields domain.ErrInvalidInput. A frame
// enumeration failure degrades to a single page built from the first frame.
func (s *Splitter) Split(data []byte) ([]domain.PageImage, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open file as image: %v", domain.ErrInvalidInput, err)
	}
	first, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(s.autoOrient))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode %s image: %v", domain.ErrInvalidInput, format, err)
	}

	pages, err := s.splitFrames(data, format, first)
	if err == nil {
		return pages, nil
	}

	entry := s.logger.WithField("format", format).WithError(err)
	var frameErr *FrameError
	if errors.As(err, &frameErr) {
		entry = entry.WithField("kind", frameErr.Kind.String())
	}
	entry.Warn("frame enumeration failed, treating upload as a single page")

	page, err := s.encodePage(1, first)
	if err != nil {
		return nil, fmt.Errorf("encoding page 1: %w", err)
	}
	return []domain.PageImage{page}, nil
}

func (s *Splitter) splitFrames(data []byte, format string, first image.Image) ([]domain.PageImage, error) {
	frames := []image.Image{first}
	if enumerate, ok := s.enumerators[format]; ok {
		var err error
		frames, err = enumerate(data, first)
		if err != nil {
			return nil, err
		}
	}

	pages := make([]domain.PageImage, 0, len(frames))
	for i, frame := range frames {
		page, err := s.encodePage(i+1, frame)
		if err != nil {
			return nil, &FrameError{Kind: FrameDecodeFailed, Format: format, Frame: i + 1, Err: err}
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// encodePage flattens img onto white, optionally downscales it and encodes
// it as JPEG.
func (s *Splitter) encodePage(number int, img image.Image) (domain.PageImage, error) {
	b := img.Bounds()
	if b.Empty() {
		return domain.PageImage{}, fmt.Errorf("empty image bounds %v", b)
	}
	rgb := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	if s.maxDimension > 0 && (b.Dx() > s.maxDimension || b.Dy() > s.maxDimension) {
		rgb = imaging.Fit(rgb, s.maxDimension, s.maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, rgb, imaging.JPEG, imaging.JPEGQuality(s.quality)); err != nil {
		return domain.PageImage{}, fmt.Errorf("encoding jpeg: %w", err)
	}

	return domain.PageImage{
		Number:  number,
		JPEG:    buf.Bytes(),
		Encoded: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}
