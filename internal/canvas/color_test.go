package canvas

import (
	"errors"
	"strings"
	"testing"
)

func TestHexToRGBRoundTrip(t *testing.T) {
	tests := []string{"#000000", "#FFFFFF", "#FF6B35", "#00A8CC", "#123ABC", "1F2E3D"}
	for _, hex := range tests {
		t.Run(hex, func(t *testing.T) {
			rgba, err := HexToRGB(hex)
			if err != nil {
				t.Fatalf("HexToRGB(%q): %v", hex, err)
			}
			got := RGBToHex(rgba.R, rgba.G, rgba.B)
			want := strings.ToUpper(hex)
			if !strings.HasPrefix(want, "#") {
				want = "#" + want
			}
			if got != want {
				t.Errorf("round trip of %q = %q, want %q", hex, got, want)
			}
		})
	}
}

func TestHexToRGBLowercase(t *testing.T) {
	rgba, err := HexToRGB("#ff6b35")
	if err != nil {
		t.Fatalf("HexToRGB: %v", err)
	}
	if rgba.R != 0xFF || rgba.G != 0x6B || rgba.B != 0x35 || rgba.A != 0xFF {
		t.Errorf("HexToRGB(#ff6b35) = %v", rgba)
	}
}

func TestHexToRGBInvalid(t *testing.T) {
	tests := []string{"", "#", "#FFF", "#GGGGGG", "red", "#FF6B355", "##FF6B35"}
	for _, hex := range tests {
		t.Run(hex, func(t *testing.T) {
			if _, err := HexToRGB(hex); !errors.Is(err, ErrInvalidColor) {
				t.Errorf("HexToRGB(%q): err = %v, want ErrInvalidColor", hex, err)
			}
		})
	}
}

func TestInterpolateColor(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		factor float64
		want   string
	}{
		{"factor 0 keeps from", "#000000", "#FFFFFF", 0, "#000000"},
		{"factor 1 yields to", "#000000", "#FFFFFF", 1, "#FFFFFF"},
		{"midpoint", "#000000", "#FFFFFF", 0.5, "#7F7F7F"},
		{"factor below range clamps", "#102030", "#FFFFFF", -3, "#102030"},
		{"factor above range clamps", "#102030", "#FFFFFF", 7, "#FFFFFF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InterpolateColor(tt.from, tt.to, tt.factor)
			if err != nil {
				t.Fatalf("InterpolateColor: %v", err)
			}
			if got != tt.want {
				t.Errorf("InterpolateColor(%q, %q, %v) = %q, want %q", tt.from, tt.to, tt.factor, got, tt.want)
			}
		})
	}
}

func TestColorCacheSurvivesEviction(t *testing.T) {
	c := mustCanvas(t, 3, 2, 80)
	// Overflow the cache, then verify lookups still resolve correctly.
	for i := 0; i < colorCacheMax+10; i++ {
		hex := RGBToHex(uint8(i), uint8(i>>1), uint8(i>>2))
		if _, err := c.rgba(hex); err != nil {
			t.Fatalf("rgba(%q): %v", hex, err)
		}
	}
	rgba, err := c.rgba("#FF6B35")
	if err != nil {
		t.Fatalf("rgba: %v", err)
	}
	if rgba.R != 0xFF || rgba.G != 0x6B || rgba.B != 0x35 {
		t.Errorf("rgba(#FF6B35) = %v after eviction", rgba)
	}
}
