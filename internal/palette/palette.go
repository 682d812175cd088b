// Package palette generates default player colors and the lighter shade
// used at the far end of a player card's gradient.
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mcoot/benched/internal/dependencies/random"
)

// GradientLighten is how far toward white a card gradient ends, in percent
const GradientLighten = 80

var white = colorful.Color{R: 1, G: 1, B: 1}

// RandomDark returns a random saturated dark color as "#rrggbb". Dark enough
// for white text to stay readable.
func RandomDark(rnd random.Random) string {
	h := float64(rnd.Intn(360))
	s := 0.55 + float64(rnd.Intn(40))/100
	l := 0.20 + float64(rnd.Intn(16))/100
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

// Lighten blends hex toward white. percent is clamped to [0, 100].
func Lighten(hex string, percent int) (string, error) {
	c, err := Parse(hex)
	if err != nil {
		return "", err
	}
	t := float64(min(max(percent, 0), 100)) / 100
	return c.BlendRgb(white, t).Clamped().Hex(), nil
}

// Gradient returns the start and end colors of a player card. An unparsable
// color yields itself for both ends.
func Gradient(hex string) (start, end string) {
	end, err := Lighten(hex, GradientLighten)
	if err != nil {
		return hex, hex
	}
	return hex, end
}

// Normalize checks color is usable. Hex colors ("#rgb" or "#rrggbb") come
// back in canonical lowercase "#rrggbb" form; rgb()/rgba() colors come back
// unchanged.
func Normalize(color string) (string, error) {
	if c, err := colorful.Hex(color); err == nil {
		return c.Hex(), nil
	}
	if _, err := parseRGB(color); err != nil {
		return "", fmt.Errorf("parse color %q: %w", color, err)
	}
	return color, nil
}

// Parse reads a hex color or an rgb()/rgba() color. Alpha is ignored.
func Parse(color string) (colorful.Color, error) {
	if c, err := colorful.Hex(color); err == nil {
		return c, nil
	}
	c, err := parseRGB(color)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", color, err)
	}
	return c, nil
}

// Hex returns color as "#rrggbb" for renderers that only take hex. An
// unparsable color is returned as is.
func Hex(color string) string {
	c, err := Parse(color)
	if err != nil {
		return color
	}
	return c.Hex()
}

var errNotRGB = errors.New("want #rgb, #rrggbb, rgb(r, g, b) or rgba(r, g, b, a)")

func parseRGB(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	var body string
	var parts int
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body, parts = s[len("rgba("):len(s)-1], 4
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body, parts = s[len("rgb("):len(s)-1], 3
	default:
		return colorful.Color{}, errNotRGB
	}

	fields := strings.Split(body, ",")
	if len(fields) != parts {
		return colorful.Color{}, errNotRGB
	}
	var rgb [3]uint8
	for i := range rgb {
		n, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil || n < 0 || n > 255 {
			return colorful.Color{}, errNotRGB
		}
		rgb[i] = uint8(n)
	}
	if parts == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return colorful.Color{}, errNotRGB
		}
	}
	return colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}, nil
}
