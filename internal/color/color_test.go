package color

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"spot", Spot{Name: "PANTONE 186 C", Type: SpotTypeSpot}, "PANTONE 186 C"},
		{"spot keeps case and spacing", Spot{Name: " pantone 186 c"}, " pantone 186 c"},
		{"rgb", RGB{R: 200, G: 16, B: 46}, "200-16-46"},
		{"cmyk percent", CMYK{C: 0, M: 100, Y: 81, K: 4}, "0-100-81-4"},
		{"cmyk fraction", CMYK{C: 0.5, M: 0.25, Y: 0, K: 1}, "0.5-0.25-0-1"},
		{"unknown", Unknown{Kind: "gradient"}, ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.color); got != tt.want {
				t.Errorf("Key(%v) = %q, want %q", tt.color, got, tt.want)
			}
		})
	}
}

func TestKeyNoTolerance(t *testing.T) {
	a := RGB{R: 10, G: 20, B: 30}
	b := RGB{R: 10, G: 20, B: 31}
	if Key(a) == Key(b) {
		t.Errorf("colors differing by one must have different keys, both got %q", Key(a))
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Color
		want bool
	}{
		{"same rgb", RGB{1, 2, 3}, RGB{1, 2, 3}, true},
		{"different rgb", RGB{1, 2, 3}, RGB{1, 2, 4}, false},
		{"same cmyk", CMYK{0, 0, 0, 100}, CMYK{0, 0, 0, 100}, true},
		{"spot by name", Spot{Name: "A", Type: SpotTypeSpot}, Spot{Name: "A", Type: SpotTypeProcess}, true},
		{"different variants", RGB{0, 0, 0}, CMYK{0, 0, 0, 100}, false},
		{"unknown never equal", Unknown{Kind: "gradient"}, Unknown{Kind: "gradient"}, false},
		{"nil and nil", nil, nil, true},
		{"nil and rgb", nil, RGB{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{RGB{R: 255, G: 0, B: 128}, "#ff0080"},
		{RGB{R: 300, G: -5, B: 0}, "#ff0000"},
		{CMYK{C: 0, M: 0, Y: 0, K: 100}, "#000000"},
		{CMYK{C: 0, M: 0, Y: 0, K: 0}, "#ffffff"},
		{CMYK{C: 1, M: 0, Y: 0, K: 0}, "#00ffff"},
		{Spot{Name: "x", Base: RGB{R: 1, G: 2, B: 3}}, "#010203"},
		{Spot{Name: "x"}, "#808080"},
		{Unknown{Kind: "pattern"}, "#808080"},
	}

	for _, tt := range tests {
		if got := tt.color.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %q, want %q", tt.color, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	got, err := ParseHex("#C8102E")
	if err != nil {
		t.Fatalf("ParseHex() error = %v", err)
	}
	if got != (RGB{R: 200, G: 16, B: 46}) {
		t.Errorf("ParseHex() = %v", got)
	}

	short, err := ParseHex("#f0a")
	if err != nil {
		t.Fatalf("ParseHex(short) error = %v", err)
	}
	if short != (RGB{R: 255, G: 0, B: 170}) {
		t.Errorf("ParseHex(short) = %v", short)
	}

	for _, bad := range []string{"", "#12", "#gggggg", "12345678"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestParseSpotType(t *testing.T) {
	for in, want := range map[string]SpotType{
		"":             SpotTypeSpot,
		"Spot":         SpotTypeSpot,
		"process":      SpotTypeProcess,
		"REGISTRATION": SpotTypeRegistration,
	} {
		got, err := ParseSpotType(in)
		if err != nil || got != want {
			t.Errorf("ParseSpotType(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSpotType("lab"); err == nil {
		t.Error("ParseSpotType(lab) should fail")
	}
}

func TestContrast(t *testing.T) {
	if got := Contrast(RGB{255, 255, 255}); got != "#000000" {
		t.Errorf("Contrast(white) = %q", got)
	}
	if got := Contrast(Black); got != "#ffffff" {
		t.Errorf("Contrast(black) = %q", got)
	}
}
