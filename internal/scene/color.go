package scene

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ParseHexColor parses #RGB, #RGBA, #RRGGBB or #RRGGBBAA into rl.Color. Alpha defaults to 255.
// Returns rl.Black and false on parse error.
func ParseHexColor(s string) (rl.Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return rl.Black, false
	}
	hex := s[1:]
	rgba := [4]uint8{3: 255}
	switch len(hex) {
	case 3, 4:
		// #RGB(A) -> RR GG BB (AA)
		for i := range hex {
			v, ok := hexDigit(hex[i])
			if !ok {
				return rl.Black, false
			}
			rgba[i] = v * 17
		}
	case 6, 8:
		for i := 0; i < len(hex)/2; i++ {
			hi, ok1 := hexDigit(hex[2*i])
			lo, ok2 := hexDigit(hex[2*i+1])
			if !ok1 || !ok2 {
				return rl.Black, false
			}
			rgba[i] = hi<<4 | lo
		}
	default:
		return rl.Black, false
	}
	return rl.NewColor(rgba[0], rgba[1], rgba[2], rgba[3]), true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
