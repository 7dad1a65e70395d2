package layout

// Kind tags a draw command.
type Kind string

const (
	KindText   Kind = "text"
	KindHeader Kind = "header"
	KindRule   Kind = "rule"
)

// Color is an RGB colour.
type Color struct {
	R, G, B uint8
}

var (
	Black    = Color{0, 0, 0}
	Grey     = Color{128, 128, 128}
	DarkBlue = Color{0, 0, 139}
)

// Style carries the font and stroke hints of a command.
type Style struct {
	Font      string  `json:"font"`
	Size      float64 `json:"size"`
	Bold      bool    `json:"bold"`
	Color     Color   `json:"color"`
	LineWidth float64 `json:"lineWidth,omitempty"`
}

// Command is a single absolutely positioned drawing instruction.
// Coordinates are in points with the origin at the bottom-left of the page;
// Y is the text baseline. X2 is only meaningful for rules.
type Command struct {
	Kind  Kind    `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	X2    float64 `json:"x2,omitempty"`
	Text  string  `json:"text,omitempty"`
	Style Style   `json:"style"`
}

// Layout is the result of composing a resume onto a page.
type Layout struct {
	Page     Page      `json:"page"`
	Commands []Command `json:"commands"`
	FinalY   float64   `json:"finalY"`
}

// Count returns how many commands have the given kind.
func (l Layout) Count(kind Kind) int {
	n := 0
	for _, c := range l.Commands {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
