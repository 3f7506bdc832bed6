package splitter

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"

	"github.com/disintegration/imaging"
)

// gifFrames composites every GIF frame onto the logical screen, honoring the
// per-frame disposal method, so each page shows what a viewer would display.
func gifFrames(data []byte, _ image.Image) ([]image.Image, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, &FrameError{Kind: FrameDecodeFailed, Format: "gif", Err: err}
	}
	if len(g.Image) == 0 {
		return nil, &FrameError{Kind: FrameDecodeFailed, Format: "gif", Err: errors.New("no frames")}
	}

	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		for _, frame := range g.Image {
			screen = screen.Union(frame.Bounds())
		}
	}

	canvas := imaging.New(screen.Dx(), screen.Dy(), color.Transparent)
	frames := make([]image.Image, 0, len(g.Image))
	for i, frame := range g.Image {
		prev := canvas
		fb := frame.Bounds()
		canvas = imaging.Overlay(canvas, frame, fb.Min, 1.0)
		frames = append(frames, canvas)

		if i >= len(g.Disposal) {
			continue
		}
		switch g.Disposal[i] {
		case gif.DisposalBackground:
			canvas = imaging.Paste(canvas, imaging.New(fb.Dx(), fb.Dy(), color.Transparent), fb.Min)
		case gif.DisposalPrevious:
			canvas = prev
		}
	}
	return frames, nil
}

// tiffFrames accepts single-directory TIFFs. The TIFF decoder only reads the
// first image file directory, so multi-page files report
// FrameEnumerationUnsupported.
func tiffFrames(data []byte, first image.Image) ([]image.Image, error) {
	n, err := countTIFFDirectories(data)
	if err != nil {
		return nil, &FrameError{Kind: FrameDecodeFailed, Format: "tiff", Err: err}
	}
	if n > 1 {
		return nil, &FrameError{
			Kind:   FrameEnumerationUnsupported,
			Format: "tiff",
			Err:    fmt.Errorf("%d pages found, only the first can be decoded", n),
		}
	}
	return []image.Image{first}, nil
}

const maxTIFFDirectories = 4096

// countTIFFDirectories walks the IFD chain of a classic TIFF file.
func countTIFFDirectories(data []byte) (int, error) {
	if len(data) < 8 {
		return 0, errors.New("tiff header too short")
	}

	var order binary.ByteOrder
	switch string(data[0:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return 0, errors.New("invalid tiff byte order mark")
	}
	if order.Uint16(data[2:4]) != 42 {
		return 0, errors.New("not a classic tiff file")
	}

	seen := make(map[uint32]bool)
	count := 0
	offset := order.Uint32(data[4:8])
	for offset != 0 {
		if seen[offset] {
			return 0, fmt.Errorf("ifd loop at offset %d", offset)
		}
		seen[offset] = true

		if uint64(offset)+2 > uint64(len(data)) {
			return 0, fmt.Errorf("ifd offset %d out of range", offset)
		}
		entries := uint64(order.Uint16(data[offset : offset+2]))
		next := uint64(offset) + 2 + entries*12
		if next+4 > uint64(len(data)) {
			return 0, fmt.Errorf("ifd at offset %d truncated", offset)
		}

		count++
		if count > maxTIFFDirectories {
			return 0, errors.New("too many image file directories")
		}
		offset = order.Uint32(data[next : next+4])
	}
	return count, nil
}
