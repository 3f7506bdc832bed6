package splitter

import (
	"encoding/binary"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tiffWithDirectories builds a little-endian TIFF skeleton of n empty IFDs.
func tiffWithDirectories(n int) []byte {
	data := []byte{'I', 'I', 42, 0, 8, 0, 0, 0}
	for i := 0; i < n; i++ {
		next := uint32(0)
		if i < n-1 {
			next = uint32(len(data) + 6)
		}
		data = binary.LittleEndian.AppendUint16(data, 0)
		data = binary.LittleEndian.AppendUint32(data, next)
	}
	return data
}

func TestCountTIFFDirectories(t *testing.T) {
	n, err := countTIFFDirectories(tiffWithDirectories(1))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = countTIFFDirectories(tiffWithDirectories(3))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCountTIFFDirectories_Loop(t *testing.T) {
	data := tiffWithDirectories(1)
	binary.LittleEndian.PutUint32(data[10:14], 8)

	_, err := countTIFFDirectories(data)

	assert.ErrorContains(t, err, "loop")
}

func TestCountTIFFDirectories_Malformed(t *testing.T) {
	_, err := countTIFFDirectories([]byte("II"))
	assert.Error(t, err)

	_, err = countTIFFDirectories([]byte{'X', 'X', 42, 0, 8, 0, 0, 0})
	assert.Error(t, err)

	_, err = countTIFFDirectories([]byte{'I', 'I', 42, 0, 200, 0, 0, 0})
	assert.ErrorContains(t, err, "out of range")
}

func TestTIFFFrames_MultiPageIsEnumerationUnsupported(t *testing.T) {
	first := image.NewRGBA(image.Rect(0, 0, 1, 1))

	frames, err := tiffFrames(tiffWithDirectories(2), first)

	assert.Nil(t, frames)
	var frameErr *FrameError
	require.True(t, errors.As(err, &frameErr))
	assert.Equal(t, FrameEnumerationUnsupported, frameErr.Kind)
	assert.Contains(t, frameErr.Error(), "2 pages")
}

func TestTIFFFrames_SinglePage(t *testing.T) {
	first := image.NewRGBA(image.Rect(0, 0, 1, 1))

	frames, err := tiffFrames(tiffWithDirectories(1), first)

	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Same(t, first, frames[0])
}
