package utils

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

// MaxImageSize caps decoded machine images at 5 MB.
const MaxImageSize = 5 * 1024 * 1024

var (
	ErrNotImage     = errors.New("Invalid image format. Please use base64 encoded image.")
	ErrBadImageData = errors.New("Invalid image data")
	ErrImageTooBig  = errors.New("Image too large. Maximum size is 5MB.")
)

var dataURIRegex = regexp.MustCompile(`^data:([A-Za-z+/-]+);base64,(.+)$`)

// DecodeImageDataURI parses a data:image/...;base64 URI and returns the
// decoded bytes with their MIME type. Payloads over MaxImageSize are
// rejected.
func DecodeImageDataURI(uri string) ([]byte, string, error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, "", ErrNotImage
	}

	matches := dataURIRegex.FindStringSubmatch(uri)
	if len(matches) != 3 {
		return nil, "", ErrBadImageData
	}

	data, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return nil, "", ErrBadImageData
	}

	if len(data) > MaxImageSize {
		return nil, "", ErrImageTooBig
	}

	return data, matches[1], nil
}
