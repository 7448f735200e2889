package profile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/eshginfarzali/eshgin/internal/stats"
)

const (
	minWidth    = 40
	skillBarLen = 20
)

// Render writes the whole profile as plain text wrapped to width columns.
func Render(w io.Writer, p Profile, width int) error {
	var b strings.Builder
	RenderTo(&b, p, width)
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderTo appends the profile sections to b.
func RenderTo(b *strings.Builder, p Profile, width int) {
	if width < minWidth {
		width = minWidth
	}
	b.WriteString(p.Name + "\n")
	if p.Headline != "" {
		b.WriteString(p.Headline + "\n")
	}
	if cur, ok := p.Current(); ok {
		b.WriteString(fmt.Sprintf("Now: %s at %s\n", cur.Role, cur.Company))
	}
	contact := make([]string, 0, 4)
	for _, v := range []string{p.Location, p.Email, p.GitHub, p.LinkedIn} {
		if v != "" {
			contact = append(contact, v)
		}
	}
	if len(contact) > 0 {
		b.WriteString(Wrap(strings.Join(contact, " · "), width) + "\n")
	}

	b.WriteString("\nProjects\n")
	for _, proj := range p.Projects {
		b.WriteString(fmt.Sprintf("\n%s  [%s]\n", proj.Title, strings.Join(proj.Tags, ", ")))
		b.WriteString(Wrap(proj.Description, width) + "\n")
		for _, link := range projectLinks(proj) {
			b.WriteString("  " + link + "\n")
		}
	}

	b.WriteString("\nStack\n")
	for _, line := range SkillLines(p.Skills) {
		b.WriteString(line + "\n")
	}

	b.WriteString("\nWork\n")
	for _, e := range p.Experience {
		marker := "○"
		if e.Current {
			marker = "●"
		}
		b.WriteString(fmt.Sprintf("\n%s %s · %s (%s)\n", marker, e.Role, e.Company, e.Period))
		for _, d := range e.Description {
			b.WriteString(indent(Wrap("- "+d, width-2), "  ") + "\n")
		}
	}
}

// SkillLines renders skills as an aligned table with proficiency bars.
func SkillLines(skills []Skill) []string {
	rows := make([][]string, 0, len(skills))
	for _, s := range skills {
		rows = append(rows, []string{s.Name, strconv.Itoa(s.Level), stats.Bar(s.Level, skillBarLen)})
	}
	return stats.FormatTable([]string{"Skill", "Level", ""}, rows, map[int]bool{1: true})
}

func projectLinks(p Project) []string {
	var links []string
	if p.IOSURL != "" {
		links = append(links, "iOS: "+p.IOSURL)
	}
	if p.AndroidURL != "" {
		links = append(links, "Android: "+p.AndroidURL)
	}
	if p.WebURL != "" {
		links = append(links, "Web: "+p.WebURL)
	}
	return links
}

// Wrap breaks text on spaces so no line exceeds width display columns.
// Words wider than width are kept whole on their own line.
func Wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 {
		return text
	}
	var b strings.Builder
	lineWidth := 0
	for i, word := range words {
		ww := runewidth.StringWidth(word)
		if i > 0 {
			if lineWidth+1+ww > width {
				b.WriteByte('\n')
				lineWidth = 0
			} else {
				b.WriteByte(' ')
				lineWidth++
			}
		}
		b.WriteString(word)
		lineWidth += ww
	}
	return b.String()
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
