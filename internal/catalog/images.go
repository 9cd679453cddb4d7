package catalog

import "strings"

// ImageSize selects a CDN width tier for poster images.
type ImageSize string

const (
	ImageSmall    ImageSize = "small"
	ImageMedium   ImageSize = "medium"
	ImageLarge    ImageSize = "large"
	ImageOriginal ImageSize = "original"
)

var imageSizeSegments = map[ImageSize]string{
	ImageSmall:    "w185",
	ImageMedium:   "w342",
	ImageLarge:    "w500",
	ImageOriginal: "original",
}

// ImageURL composes the CDN URL for a poster path. ok is false when the
// path is empty; callers render a placeholder glyph instead. Unrecognized
// sizes fall back to the medium tier.
func (c *Client) ImageURL(path string, size ImageSize) (string, bool) {
	if path == "" {
		return "", false
	}

	segment, ok := imageSizeSegments[size]
	if !ok {
		segment = imageSizeSegments[ImageMedium]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.ImageBaseURL + "/" + segment + path, true
}
