package mockapi

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// assets are the image files the demo serves. Anything else under /img or /logo is a 404,
// which exercises the client's fallback path.
var assets = map[string]bool{
	"/img/Indian_spicy_soup.png":   true,
	"/img/bowl_lasagna.png":        true,
	"/img/avocado_smoothie.png":    true,
	"/img/pancake.png":             true,
	"/img/steak_potatoes.png":      true,
	"/logo/restaurant-logo.png":    true,
	"/logo/cheesecake_factory.png": true,
	"/logo/smoothie_bar.png":       true,
	"/logo/fresh_breakfast.png":    true,
	"/logo/grill_house.png":        true,
}

// GET /img/:file, GET /logo/:file
func (s *Server) asset(c *gin.Context) {
	path := c.Request.URL.Path
	if !assets[path] {
		c.Status(http.StatusNotFound)
		return
	}
	data, err := renderAsset(path)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

// renderAsset draws a small two-tone placeholder whose colors derive from path.
func renderAsset(path string) ([]byte, error) {
	h := fnv.New32a()
	h.Write([]byte(path))
	sum := h.Sum32()

	fg := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255}
	bg := color.RGBA{R: 255 - fg.R/2, G: 255 - fg.G/2, B: 255 - fg.B/2, A: 255}

	const size = 32
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	round := strings.HasPrefix(path, "/logo/")
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-size/2, y-size/2
			inside := dx*dx+dy*dy < (size/3)*(size/3)
			if !round {
				inside = x > size/4 && x < 3*size/4 && y > size/4 && y < 3*size/4
			}
			if inside {
				img.Set(x, y, fg)
			} else {
				img.Set(x, y, bg)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
