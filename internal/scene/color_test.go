package scene

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want rl.Color
		ok   bool
	}{
		{"#ffff00", rl.NewColor(255, 255, 0, 255), true},
		{"#f00", rl.NewColor(255, 0, 0, 255), true},
		{" #000000 ", rl.NewColor(0, 0, 0, 255), true},
		{"#f008", rl.NewColor(255, 0, 0, 136), true},
		{"#11223380", rl.NewColor(0x11, 0x22, 0x33, 0x80), true},
		{"#12345", rl.Black, false},
		{"#gg0000", rl.Black, false},
		{"ff0000", rl.Black, false},
		{"", rl.Black, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHexColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
