package contrast

import (
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8040")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c.Hex() != "#ff8040" {
		t.Errorf("round trip: got %s, want #ff8040", c.Hex())
	}

	for _, bad := range []string{"", "ff8040", "#ff80", "#gg0000"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestRatio_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"black on white", "#000000", "#ffffff", 21},
		{"same color", "#336699", "#336699", 1},
		{"symmetric", "#ffffff", "#000000", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RatioHex(tt.a, tt.b)
			if err != nil {
				t.Fatalf("RatioHex failed: %v", err)
			}
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestComplementary(t *testing.T) {
	tests := []struct{ in, want string }{
		{"#000000", "#ffffff"},
		{"#ff0000", "#00ffff"},
		{"#123456", "#edcba9"},
	}

	for _, tt := range tests {
		c, _ := ParseHex(tt.in)
		if got := Complementary(c).Hex(); got != tt.want {
			t.Errorf("Complementary(%s): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestAnalogous(t *testing.T) {
	red, _ := ParseHex("#ff0000")

	tests := []struct {
		degrees float64
		want    string
	}{
		{120, "#00ff00"},
		{240, "#0000ff"},
		{-120, "#0000ff"},
		{360, "#ff0000"},
	}

	for _, tt := range tests {
		if got := Analogous(red, tt.degrees).Hex(); got != tt.want {
			t.Errorf("Analogous(red, %g): got %s, want %s", tt.degrees, got, tt.want)
		}
	}
}

func TestAdjustBrightness(t *testing.T) {
	c, _ := ParseHex("#f00a80")
	if got := AdjustBrightness(c, 20).Hex(); got != "#ff1e94" {
		t.Errorf("brighten: got %s, want #ff1e94", got)
	}
	if got := AdjustBrightness(c, -20).Hex(); got != "#dc006c" {
		t.Errorf("darken: got %s, want #dc006c", got)
	}
}

func TestAdjustSaturation(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		amount float64
		want   string
	}{
		{"boost", "#c86464", 50, "#eb5555"},
		{"desaturate fully", "#c86464", -100, "#828282"},
		{"unchanged", "#c86464", 0, "#c86464"},
		{"gray stays gray", "#808080", 60, "#808080"},
		{"clamps", "#ff0000", 100, "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := ParseHex(tt.hex)
			if got := AdjustSaturation(c, tt.amount).Hex(); got != tt.want {
				t.Errorf("AdjustSaturation(%s, %g): got %s, want %s", tt.hex, tt.amount, got, tt.want)
			}
		})
	}
}

func TestContrastColor_MeetsMinimum(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#808080", "#777777", "#ff0000", "#336699", "#ffff00"} {
		t.Run(hex, func(t *testing.T) {
			res, err := ContrastColor(hex)
			if err != nil {
				t.Fatalf("ContrastColor failed: %v", err)
			}
			if res.Ratio < MinimumRatio {
				t.Errorf("ratio %f below %f (contrast %s)", res.Ratio, MinimumRatio, res.Contrast)
			}
			got, _ := RatioHex(hex, res.Contrast)
			if math.Abs(got-res.Ratio) > 1e-6 {
				t.Errorf("reported ratio %f, actual %f", res.Ratio, got)
			}
		})
	}
}

func TestContrastColor_PrefersComplementary(t *testing.T) {
	res, err := ContrastColor("#000000")
	if err != nil {
		t.Fatalf("ContrastColor failed: %v", err)
	}
	if res.Contrast != "#ffffff" || res.Complementary != "#ffffff" {
		t.Errorf("got %+v, want white", res)
	}
}

func TestContrastColor_InvalidInput(t *testing.T) {
	if _, err := ContrastColor("nope"); err == nil {
		t.Error("ContrastColor should fail for invalid input")
	}
}
