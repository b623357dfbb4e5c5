package export

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/signetlab/signet/pkg/style"
)

// resolveColor maps a style color value to a drawable color. It accepts SVG
// color names, #rgb and #rrggbb hex, and X11-style grayNN levels; anything
// unrecognized gets the fallback.
func resolveColor(name string, fallback color.RGBA) color.RGBA {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return fallback
	}
	if c, ok := colornames.Map[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := parseHex(s); ok {
			return c
		}
		return fallback
	}
	for _, prefix := range []string{"gray", "grey"} {
		rest, found := strings.CutPrefix(s, prefix)
		if !found || rest == "" {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 && n <= 100 {
			level := uint8(n * 255 / 100)
			return color.RGBA{R: level, G: level, B: level, A: 0xff}
		}
	}
	return fallback
}

func parseHex(s string) (color.RGBA, bool) {
	hex := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	switch len(hex) {
	case 3:
		r := uint8(v >> 8 & 0xf)
		g := uint8(v >> 4 & 0xf)
		b := uint8(v & 0xf)
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 0xff}, true
	case 6:
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
	default:
		return color.RGBA{}, false
	}
}

// resolveHighlight picks the highlight fill: the caller's override when set,
// else the default preset's highlight entry.
func resolveHighlight(opts Options) color.RGBA {
	fallback := colornames.Gold
	preset, _ := style.Preset(style.PresetDefault)
	if name, ok := preset.Nodes.Default[style.ColorHighlight]; ok {
		fallback = resolveColor(name, fallback)
	}
	if opts.HighlightColor == "" {
		return fallback
	}
	return resolveColor(opts.HighlightColor, fallback)
}

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
