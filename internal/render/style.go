package render

// Palette is cycled by segment index.
var Palette = []string{"#FF6B35", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD"}

// ColorFor returns the palette color of the segment at index.
func ColorFor(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

// PathStyle describes how a segment path is stroked.
type PathStyle struct {
	Color   string
	Weight  int
	Opacity float64
	Dash    string
}

func StyleFor(index int) PathStyle {
	return PathStyle{Color: ColorFor(index), Weight: 5, Opacity: 0.9, Dash: "solid"}
}
