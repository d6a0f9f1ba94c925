package dwg

import "testing"

func intPtr(v int) *int       { return &v }
func u32Ptr(v uint32) *uint32 { return &v }

func layersOf(ls ...*Layer) map[string]*Layer {
	m := make(map[string]*Layer, len(ls))
	for _, l := range ls {
		m[l.Name] = l
	}
	return m
}

func TestACIColor(t *testing.T) {
	tests := []struct {
		index int
		want  RGB
		ok    bool
	}{
		{1, 0xFF0000, true},
		{2, 0xFFFF00, true},
		{3, 0x00FF00, true},
		{4, 0x00FFFF, true},
		{5, 0x0000FF, true},
		{6, 0xFF00FF, true},
		{7, 0xFFFFFF, true},
		{8, 0x808080, true},
		{9, 0xC0C0C0, true},
		{13, 0xCC6666, true},
		{20, 0xFF3F00, true},
		{21, 0xFF9F7F, true},
		{156, 0x003F7F, true},
		{158, 0x00264C, true},
		{250, 0x333333, true},
		{255, 0xFFFFFF, true},
		{-5, 0x0000FF, true}, // magnitude is used, sign carries other flags
		{0, 0, false},
		{256, 0, false},
		{1000, 0, false},
	}
	for _, tt := range tests {
		got, ok := ACIColor(tt.index)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ACIColor(%d) = %v, %v; want %v, %v", tt.index, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveColorPrecedence(t *testing.T) {
	doc := &Document{
		Layers: layersOf(
			&Layer{Name: "walls", ColorIndex: intPtr(3)}, // green
			&Layer{Name: "roof", TrueColor: u32Ptr(0x123456)},
			&Layer{Name: "floor", RawColor: u32Ptr(0x563412)}, // packed BGR of 0x123456
			&Layer{Name: "bare"},                              // no color source at all
		),
	}
	red := RGB(0xFF0000)

	tests := []struct {
		name      string
		header    Header
		inherited *RGB
		want      RGB
	}{
		{
			name:   "true color wins over everything",
			header: Header{Layer: "walls", TrueColor: u32Ptr(0xABCDEF), ColorIndex: intPtr(1), RawColor: u32Ptr(0x0000FF)},
			want:   0xABCDEF,
		},
		{
			name:   "aci index",
			header: Header{Layer: "walls", ColorIndex: intPtr(5)},
			want:   0x0000FF,
		},
		{
			name:   "bylayer through layer index",
			header: Header{Layer: "walls", ColorIndex: intPtr(ColorByLayer)},
			want:   0x00FF00,
		},
		{
			name:   "bylayer through layer true color",
			header: Header{Layer: "roof", ColorIndex: intPtr(ColorByLayer)},
			want:   0x123456,
		},
		{
			name:   "bylayer through layer raw color",
			header: Header{Layer: "floor", ColorIndex: intPtr(ColorByLayer)},
			want:   0x123456,
		},
		{
			name:      "byblock with inherited",
			header:    Header{Layer: "walls", ColorIndex: intPtr(ColorByBlock)},
			inherited: &red,
			want:      0xFF0000,
		},
		{
			name:   "byblock at document root falls back to layer",
			header: Header{Layer: "walls", ColorIndex: intPtr(ColorByBlock)},
			want:   0x00FF00,
		},
		{
			name:   "raw color only when no index present",
			header: Header{Layer: "bare", RawColor: u32Ptr(0x563412)},
			want:   0x123456,
		},
		{
			name:   "present index shadows raw color",
			header: Header{Layer: "walls", ColorIndex: intPtr(999), RawColor: u32Ptr(0x563412)},
			want:   0x00FF00, // invalid index degrades to the layer tier
		},
		{
			name:   "layer fallback",
			header: Header{Layer: "walls"},
			want:   0x00FF00,
		},
		{
			name:   "unknown layer falls back to default",
			header: Header{Layer: "nope"},
			want:   DefaultColor,
		},
		{
			name:   "layer with no color source falls back to default",
			header: Header{Layer: "bare"},
			want:   DefaultColor,
		},
		{
			name:   "out-of-range true color is ignored",
			header: Header{Layer: "walls", TrueColor: u32Ptr(0x1FFFFFF), ColorIndex: intPtr(5)},
			want:   0x0000FF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColor(&tt.header, doc, tt.inherited)
			if got != tt.want {
				t.Errorf("ResolveColor = %v, want %v", got, tt.want)
			}
			// Pure: a second call with the same inputs agrees.
			if again := ResolveColor(&tt.header, doc, tt.inherited); again != got {
				t.Errorf("ResolveColor not deterministic: %v then %v", got, again)
			}
		})
	}
}

func TestResolveColorNilHeader(t *testing.T) {
	if got := ResolveColor(nil, &Document{}, nil); got != DefaultColor {
		t.Errorf("ResolveColor(nil) = %v, want %v", got, DefaultColor)
	}
}

func TestResolveLayerColor(t *testing.T) {
	doc := &Document{
		Layers: layersOf(
			&Layer{Name: "a", TrueColor: u32Ptr(0x010203), ColorIndex: intPtr(1)},
			&Layer{Name: "b", ColorIndex: intPtr(2)},
			&Layer{Name: "c", ColorIndex: intPtr(ColorByLayer)}, // sentinel on a layer is meaningless
			&Layer{Name: "d", RawColor: u32Ptr(0x563412)},
		),
	}
	tests := []struct {
		layer string
		want  RGB
	}{
		{"a", 0x010203},
		{"b", 0xFFFF00},
		{"c", DefaultColor},
		{"d", 0x123456},
		{"missing", DefaultColor},
	}
	for _, tt := range tests {
		if got := ResolveLayerColor(tt.layer, doc); got != tt.want {
			t.Errorf("ResolveLayerColor(%q) = %v, want %v", tt.layer, got, tt.want)
		}
	}
}

func TestRGBAccessors(t *testing.T) {
	c := RGB(0x123456)
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 {
		t.Errorf("components of %v = %02X %02X %02X", c, c.R(), c.G(), c.B())
	}
	if got := c.String(); got != "#123456" {
		t.Errorf("String = %q, want \"#123456\"", got)
	}
	if got := FromRGB(0x12, 0x34, 0x56); got != c {
		t.Errorf("FromRGB = %v, want %v", got, c)
	}
	if got := FromBGR(0x563412); got != c {
		t.Errorf("FromBGR = %v, want %v", got, c)
	}
}
