// Package layout turns a resume into positioned draw commands on a single page.
//
// The cursor starts at the top margin and only moves down. Content that runs
// past the bottom of the page is still emitted with its (possibly negative)
// coordinates; there is no pagination.
package layout

import (
	"fmt"
	"strings"

	"github.com/isdelr/resume-builder-be/internal/models"
)

type composer struct {
	page Page
	cmds []Command
	y    float64
}

// Compose lays out the resume on the page. It does not modify r.
func Compose(r models.Resume, page Page) Layout {
	c := &composer{page: page, y: page.Height - page.TopMargin}

	c.text(r.Name, titleStyle, page.TitleLineHeight)
	c.contact(r.Contact)
	c.rule()

	if r.AboutMe != "" {
		c.section("About Me", func() {
			c.block(r.AboutMe)
		})
	}
	if len(r.Education) > 0 {
		c.section("Education", func() {
			for _, e := range r.Education {
				c.line(fmt.Sprintf("%s at %s (%s - %s)", e.Degree, e.School, e.Start, e.End))
				c.block(e.Description)
			}
		})
	}
	if len(r.Experience) > 0 {
		c.section("Experience", func() {
			for _, e := range r.Experience {
				c.line(fmt.Sprintf("%s at %s (%s - %s)", e.Position, e.Company, e.Start, e.End))
				c.block(e.Description)
			}
		})
	}
	if len(r.Projects) > 0 {
		c.section("Projects", func() {
			for _, p := range r.Projects {
				c.line(p.Name)
				c.block(p.Description)
				if p.Start != "" || p.End != "" {
					c.line(fmt.Sprintf("%s - %s", p.Start, p.End))
				}
				if p.Link != "" {
					c.line("Link: " + p.Link)
				}
			}
		})
	}

	c.columns(r.SkillList(), r.LanguageList())

	if r.Achievements != "" {
		c.header("Achievements / Awards", page.LeftMargin)
		c.block(r.Achievements)
	}

	return Layout{Page: page, Commands: c.cmds, FinalY: c.y}
}

func (c *composer) emit(cmd Command) {
	c.cmds = append(c.cmds, cmd)
}

// text draws s at the left margin and advances the cursor by advance.
func (c *composer) text(s string, style Style, advance float64) {
	if s != "" {
		c.emit(Command{Kind: KindText, X: c.page.LeftMargin, Y: c.y, Text: s, Style: style})
	}
	c.y -= advance
}

func (c *composer) contact(ct models.Contact) {
	var parts []string
	for _, v := range ct.Values() {
		if v != "" {
			parts = append(parts, v)
		}
	}
	c.text(strings.Join(parts, contactSeparator), contactStyle, c.page.ContactLineHeight)
}

func (c *composer) rule() {
	c.emit(Command{
		Kind:  KindRule,
		X:     c.page.LeftMargin,
		Y:     c.y,
		X2:    c.page.Width - c.page.RightMargin,
		Style: ruleStyle,
	})
	c.y -= c.page.RuleGap
}

func (c *composer) header(title string, x float64) {
	c.emit(Command{Kind: KindHeader, X: x, Y: c.y, Text: title, Style: headerStyle})
	c.y -= c.page.SectionHeaderHeight
}

// section draws a header, the body, and the trailing gap.
func (c *composer) section(title string, body func()) {
	c.header(title, c.page.LeftMargin)
	body()
	c.y -= c.page.SectionGap
}

func (c *composer) line(s string) {
	c.text(s, bodyStyle, c.page.LineHeight)
}

// block draws each explicit line of s on its own line. Empty s draws nothing.
func (c *composer) block(s string) {
	if s == "" {
		return
	}
	for _, ln := range strings.Split(s, "\n") {
		c.line(strings.TrimSuffix(ln, "\r"))
	}
}

// columns lays out skills and languages side by side. Each list is an
// independent pass from the same start y; the cursor then continues below the
// longer of the two.
func (c *composer) columns(skills, languages []string) {
	start := c.y
	var ends []float64

	if len(skills) > 0 {
		cmds, end := column(c.page, "Skills", c.page.LeftMargin, start, skills)
		c.cmds = append(c.cmds, cmds...)
		ends = append(ends, end)
	}
	if len(languages) > 0 {
		cmds, end := column(c.page, "Languages", c.page.RightColumnX, start, languages)
		c.cmds = append(c.cmds, cmds...)
		ends = append(ends, end)
	}
	if len(ends) == 0 {
		return
	}

	lowest := ends[0]
	for _, e := range ends[1:] {
		lowest = min(lowest, e)
	}
	c.y = lowest - c.page.ColumnGap
}

// column draws one bulleted list with its header at (x, startY) and returns
// the commands and the cursor below the last item.
func column(page Page, title string, x, startY float64, items []string) ([]Command, float64) {
	cmds := make([]Command, 0, len(items)+1)
	cmds = append(cmds, Command{Kind: KindHeader, X: x, Y: startY, Text: title, Style: headerStyle})

	y := startY - page.SectionHeaderHeight
	for _, item := range items {
		cmds = append(cmds, Command{Kind: KindText, X: x, Y: y, Text: bulletPrefix + item, Style: bodyStyle})
		y -= page.ListLineHeight
	}
	return cmds, y
}
