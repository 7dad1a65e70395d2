package layout

// Page holds the page geometry and the vertical metrics of the template.
type Page struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	LeftMargin  float64 `json:"leftMargin"`
	RightMargin float64 `json:"rightMargin"`
	TopMargin   float64 `json:"topMargin"`

	TitleLineHeight     float64 `json:"titleLineHeight"`
	ContactLineHeight   float64 `json:"contactLineHeight"`
	RuleGap             float64 `json:"ruleGap"`
	SectionHeaderHeight float64 `json:"sectionHeaderHeight"`
	LineHeight          float64 `json:"lineHeight"`
	SectionGap          float64 `json:"sectionGap"`
	ListLineHeight      float64 `json:"listLineHeight"`
	RightColumnX        float64 `json:"rightColumnX"`
	ColumnGap           float64 `json:"columnGap"`
}

// A4 returns the single fixed template on an A4 page.
func A4() Page {
	return Page{
		Width:       595.2755905511812,
		Height:      841.8897637795277,
		LeftMargin:  50,
		RightMargin: 50,
		TopMargin:   30,

		TitleLineHeight:     30,
		ContactLineHeight:   20,
		RuleGap:             15,
		SectionHeaderHeight: 15,
		LineHeight:          14,
		SectionGap:          10,
		ListLineHeight:      12,
		RightColumnX:        300,
		ColumnGap:           10,
	}
}

var (
	titleStyle   = Style{Font: "Helvetica", Size: 24, Bold: true, Color: Black}
	contactStyle = Style{Font: "Helvetica", Size: 10, Color: Black}
	ruleStyle    = Style{Color: Grey, LineWidth: 0.5}
	headerStyle  = Style{Font: "Helvetica", Size: 14, Bold: true, Color: DarkBlue}
	bodyStyle    = Style{Font: "Helvetica", Size: 12, Color: Black}
)

const (
	contactSeparator = " | "
	bulletPrefix     = "- "
)
