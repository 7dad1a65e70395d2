package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/resume-builder-be/internal/models"
)

func texts(l Layout, kind Kind) []string {
	var out []string
	for _, c := range l.Commands {
		if c.Kind == kind {
			out = append(out, c.Text)
		}
	}
	return out
}

func find(t *testing.T, l Layout, kind Kind, text string) Command {
	t.Helper()
	for _, c := range l.Commands {
		if c.Kind == kind && c.Text == text {
			return c
		}
	}
	t.Fatalf("no %s command %q", kind, text)
	return Command{}
}

func TestCompose_NameOnly(t *testing.T) {
	page := testPage()
	l := Compose(models.Resume{Name: "Jane Doe"}, page)

	require.Equal(t, []string{"Jane Doe"}, texts(l, KindText))
	assert.Equal(t, 0, l.Count(KindHeader))
	assert.Equal(t, 1, l.Count(KindRule))

	title := l.Commands[0]
	assert.Equal(t, titleStyle, title.Style)
	assert.Equal(t, page.LeftMargin, title.X)
	assert.Equal(t, page.Height-page.TopMargin, title.Y)

	ruleY := page.Height - page.TopMargin - page.TitleLineHeight - page.ContactLineHeight
	rule := l.Commands[1]
	assert.Equal(t, KindRule, rule.Kind)
	assert.Equal(t, ruleY, rule.Y)
	assert.Equal(t, page.Width-page.RightMargin, rule.X2)
	assert.Equal(t, ruleY-page.RuleGap, l.FinalY)
}

func TestCompose_ContactLine(t *testing.T) {
	l := Compose(models.Resume{
		Name: "Jane Doe",
		Contact: models.Contact{
			Phone:   "555-0100",
			GitHub:  "github.com/jane",
			Website: "jane.dev",
		},
	}, testPage())

	contact := find(t, l, KindText, "555-0100 | github.com/jane | jane.dev")
	assert.Equal(t, contactStyle, contact.Style)
	assert.Equal(t, testPage().Height-testPage().TopMargin-testPage().TitleLineHeight, contact.Y)
}

func TestCompose_SectionsInFixedOrder(t *testing.T) {
	r := models.Resume{
		Name:     "Jane Doe",
		AboutMe:  "Line one\nLine two",
		Projects: []models.Project{{Name: "p"}},
		Education: []models.Education{
			{Degree: "BSc", School: "MIT", Start: "2010", End: "2014", Description: "Honours"},
		},
		Experience: []models.Experience{
			{Position: "Engineer", Company: "Acme", Start: "2016", End: "2020"},
		},
		Achievements: "Award",
	}
	l := Compose(r, testPage())

	assert.Equal(t, []string{"About Me", "Education", "Experience", "Projects", "Achievements / Awards"}, texts(l, KindHeader))
	find(t, l, KindText, "BSc at MIT (2010 - 2014)")
	find(t, l, KindText, "Honours")
	find(t, l, KindText, "Engineer at Acme (2016 - 2020)")
}

func TestCompose_CursorArithmetic(t *testing.T) {
	page := testPage()
	l := Compose(models.Resume{Name: "Jane Doe", AboutMe: "a\nb\nc"}, page)

	top := page.Height - page.TopMargin - page.TitleLineHeight - page.ContactLineHeight - page.RuleGap
	header := find(t, l, KindHeader, "About Me")
	assert.Equal(t, top, header.Y)

	first := find(t, l, KindText, "a")
	third := find(t, l, KindText, "c")
	assert.Equal(t, top-page.SectionHeaderHeight, first.Y)
	assert.Equal(t, first.Y-2*page.LineHeight, third.Y)
	assert.Equal(t, third.Y-page.LineHeight-page.SectionGap, l.FinalY)
}

func TestCompose_ProjectDateLine(t *testing.T) {
	tests := []struct {
		name     string
		project  models.Project
		wantDate string
	}{
		{"no dates", models.Project{Name: "p"}, ""},
		{"start only", models.Project{Name: "p", Start: "2021"}, "2021 - "},
		{"end only", models.Project{Name: "p", End: "2022"}, " - 2022"},
		{"both", models.Project{Name: "p", Start: "2021", End: "2022"}, "2021 - 2022"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Compose(models.Resume{Name: "Jane", Projects: []models.Project{tt.project}}, testPage())

			var dates []string
			for _, s := range texts(l, KindText) {
				if strings.Contains(s, " - ") {
					dates = append(dates, s)
				}
			}
			if tt.wantDate == "" {
				assert.Empty(t, dates)
				return
			}
			assert.Equal(t, []string{tt.wantDate}, dates)
		})
	}
}

func TestCompose_ProjectEntry(t *testing.T) {
	l := Compose(models.Resume{
		Name: "Jane",
		Projects: []models.Project{
			{Name: "resume-builder", Description: "PDF\nresumes", Start: "2021", End: "2022", Link: "https://example.com"},
		},
	}, testPage())

	got := texts(l, KindText)
	assert.Equal(t, []string{"Jane", "resume-builder", "PDF", "resumes", "2021 - 2022", "Link: https://example.com"}, got)
}

func TestCompose_TwoColumns(t *testing.T) {
	page := testPage()
	l := Compose(models.Resume{Name: "Jane Doe", Skills: "Go, Rust, Python", Languages: "English"}, page)

	skills := find(t, l, KindHeader, "Skills")
	langs := find(t, l, KindHeader, "Languages")
	assert.Equal(t, skills.Y, langs.Y)
	assert.Equal(t, page.LeftMargin, skills.X)
	assert.Equal(t, page.RightColumnX, langs.X)

	firstSkill := find(t, l, KindText, "- Go")
	firstLang := find(t, l, KindText, "- English")
	assert.Equal(t, firstSkill.Y, firstLang.Y)
	assert.Equal(t, page.RightColumnX, firstLang.X)

	ySkillEnd := skills.Y - page.SectionHeaderHeight - 3*page.ListLineHeight
	yLangEnd := langs.Y - page.SectionHeaderHeight - 1*page.ListLineHeight
	assert.Equal(t, min(ySkillEnd, yLangEnd)-page.ColumnGap, l.FinalY)
}

func TestCompose_TwoColumnsOrderIndependent(t *testing.T) {
	a := Compose(models.Resume{Name: "J", Skills: "Go, Rust, Python", Languages: "English"}, testPage())
	b := Compose(models.Resume{Name: "J", Skills: "English", Languages: "Go, Rust, Python"}, testPage())

	assert.Equal(t, a.FinalY, b.FinalY)
}

func TestCompose_SingleColumnGoverns(t *testing.T) {
	page := testPage()
	l := Compose(models.Resume{Name: "J", Languages: " , English, ,French "}, page)

	assert.Equal(t, []string{"Languages"}, texts(l, KindHeader))
	langs := find(t, l, KindHeader, "Languages")
	find(t, l, KindText, "- French")
	assert.Equal(t, langs.Y-page.SectionHeaderHeight-2*page.ListLineHeight-page.ColumnGap, l.FinalY)
}

func TestCompose_NoColumnsLeavesCursor(t *testing.T) {
	page := testPage()
	l := Compose(models.Resume{Name: "J", Skills: " , ", Achievements: "Award"}, page)

	top := page.Height - page.TopMargin - page.TitleLineHeight - page.ContactLineHeight - page.RuleGap
	assert.Equal(t, top, find(t, l, KindHeader, "Achievements / Awards").Y)
	assert.Equal(t, []string{"Achievements / Awards"}, texts(l, KindHeader))
}

func TestCompose_AchievementsBelowColumns(t *testing.T) {
	page := testPage()
	l := Compose(models.Resume{Name: "J", Skills: "Go, Rust", Achievements: "Award"}, page)

	skills := find(t, l, KindHeader, "Skills")
	ach := find(t, l, KindHeader, "Achievements / Awards")
	assert.Equal(t, skills.Y-page.SectionHeaderHeight-2*page.ListLineHeight-page.ColumnGap, ach.Y)
}

func TestCompose_OverflowIsNotClipped(t *testing.T) {
	var edu []models.Education
	for i := 0; i < 80; i++ {
		edu = append(edu, models.Education{Degree: "D", School: "S"})
	}
	l := Compose(models.Resume{Name: "J", Education: edu}, testPage())

	assert.Less(t, l.FinalY, 0.0)
	assert.Equal(t, 81, len(texts(l, KindText)))
}

func TestCompose_DoesNotMutateInput(t *testing.T) {
	r := models.Resume{Name: "J", Education: []models.Education{{Degree: "D"}}}
	before := r.Education[0]
	Compose(r, testPage())
	assert.Equal(t, before, r.Education[0])
}

// testPage uses whole-point dimensions so cursor arithmetic in assertions is exact.
func testPage() Page {
	p := A4()
	p.Width, p.Height = 595, 842
	return p
}
