package utils

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeImageDataURI(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	data, contentType, err := DecodeImageDataURI(uri)

	assert.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, raw, data)
}

func TestDecodeImageDataURI_NotImage(t *testing.T) {
	_, _, err := DecodeImageDataURI("data:text/plain;base64,aGVsbG8=")
	assert.ErrorIs(t, err, ErrNotImage)

	_, _, err = DecodeImageDataURI("aGVsbG8=")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDecodeImageDataURI_BadData(t *testing.T) {
	// Well-formed prefix but invalid base64 payload.
	_, _, err := DecodeImageDataURI("data:image/jpeg;base64,!!!not-base64!!!")
	assert.ErrorIs(t, err, ErrBadImageData)

	// Missing payload entirely.
	_, _, err = DecodeImageDataURI("data:image/jpeg;base64,")
	assert.ErrorIs(t, err, ErrBadImageData)
}

func TestDecodeImageDataURI_TooLarge(t *testing.T) {
	oversized := bytes.Repeat([]byte{0xFF}, MaxImageSize+1)
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(oversized)

	_, _, err := DecodeImageDataURI(uri)
	assert.ErrorIs(t, err, ErrImageTooBig)
}

func TestDecodeImageDataURI_AtLimit(t *testing.T) {
	exact := bytes.Repeat([]byte{0xFF}, MaxImageSize)
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(exact)

	data, _, err := DecodeImageDataURI(uri)
	assert.NoError(t, err)
	assert.Len(t, data, MaxImageSize)
}
