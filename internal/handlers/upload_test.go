package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeProductName(t *testing.T) {
	cases := map[string]string{
		"Honda CBR 600RR": "honda_cbr_600rr",
		"Yamaha-R1":       "yamaha_r1",
		"BMW R1250GS!":    "bmw_r1250gs_",
		"Урал М70":        "урал_м70",
		"kawasaki":        "kawasaki",
	}

	for input, want := range cases {
		assert.Equal(t, want, safeProductName(input), "input %q", input)
	}
}

func TestIsAllowedImage(t *testing.T) {
	assert.True(t, isAllowedImage("photo.png"))
	assert.True(t, isAllowedImage("photo.JPG"))
	assert.True(t, isAllowedImage("photo.webp"))

	assert.False(t, isAllowedImage("photo.exe"))
	assert.False(t, isAllowedImage("photo.svg"))
	assert.False(t, isAllowedImage("photo"))
}

func TestImageFilenameKeepsExtension(t *testing.T) {
	name := imageFilename("My Photo.PNG")
	assert.True(t, strings.HasPrefix(name, "image_"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	// Two uploads of the same file never collide.
	assert.NotEqual(t, name, imageFilename("My Photo.PNG"))
}
