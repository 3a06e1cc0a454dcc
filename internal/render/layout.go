// Package render turns a resume document into an ordered sequence of visual
// blocks and lays those blocks out as HTML (preview, raster capture input)
// or as a paginated PDF. Both export paths consume the same Layout, which is
// what keeps the preview and the PDF in agreement.
package render

import (
	"strings"

	"resume-builder/internal/model"
)

// Placeholder copy shown when the document has no content at all.
const (
	PlaceholderHeading = "Start filling out your resume details"
	PlaceholderNote    = "Your resume preview will appear here"
)

// Section titles in canonical order.
const (
	TitleSummary    = "Professional Summary"
	TitleSkills     = "Technical Skills"
	TitleExperience = "Work Experience"
	TitleProjects   = "Projects"
	TitleEducation  = "Education"
	TitleAwards     = "Awards & Certifications"
)

// Layout is the renderer-independent block sequence for one document.
type Layout struct {
	Name        string    `json:"name"`
	ContactLine string    `json:"contactLine"`
	Placeholder bool      `json:"placeholder"`
	Sections    []Section `json:"sections"`
}

// Section is one titled block of the resume. Exactly one of Paragraph,
// Lines or Entries is populated, depending on the section.
type Section struct {
	Title     string   `json:"title"`
	Paragraph string   `json:"paragraph,omitempty"`
	Lines     []string `json:"lines,omitempty"`
	Entries   []Entry  `json:"entries,omitempty"`
}

// Entry is one record inside a section: a title line with a right-aligned
// aside (date range or technology list), an optional subtitle and body, a
// bullet list and an optional footer line.
type Entry struct {
	Title       string   `json:"title"`
	Aside       string   `json:"aside,omitempty"`
	AsideItalic bool     `json:"asideItalic,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Body        string   `json:"body,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
	Footer      string   `json:"footer,omitempty"`
}

// BuildLayout produces the block sequence for a document. It is pure: the
// same document always yields the same layout, and sections whose backing
// data is empty are omitted entirely.
func BuildLayout(d model.ResumeData) Layout {
	if d.IsEmpty() {
		return Layout{Placeholder: true}
	}

	l := Layout{
		Name:        d.ContactInfo.FullName,
		ContactLine: ContactLine(d.ContactInfo),
	}
	if l.Name == "" {
		l.Name = "Your Name"
	}

	if d.Summary != "" {
		l.Sections = append(l.Sections, Section{Title: TitleSummary, Paragraph: d.Summary})
	}

	if len(d.Skills) > 0 {
		lines := make([]string, 0, len(d.Skills))
		for _, s := range d.Skills {
			lines = append(lines, s.Category+": "+strings.Join(s.Items, " | "))
		}
		l.Sections = append(l.Sections, Section{Title: TitleSkills, Lines: lines})
	}

	if len(d.Experience) > 0 {
		entries := make([]Entry, 0, len(d.Experience))
		for _, e := range d.Experience {
			entries = append(entries, Entry{
				Title:    joinNonEmpty(", ", e.Company, e.Location),
				Aside:    experienceDates(e),
				Subtitle: e.Position,
				Bullets:  e.Accomplishments,
			})
		}
		l.Sections = append(l.Sections, Section{Title: TitleExperience, Entries: entries})
	}

	if len(d.Projects) > 0 {
		entries := make([]Entry, 0, len(d.Projects))
		for _, p := range d.Projects {
			entries = append(entries, Entry{
				Title:       p.Name,
				Aside:       strings.Join(p.Technologies, ", "),
				AsideItalic: true,
				Body:        p.Description,
				Bullets:     p.Highlights,
				Footer:      projectLinks(p),
			})
		}
		l.Sections = append(l.Sections, Section{Title: TitleProjects, Entries: entries})
	}

	if len(d.Education) > 0 {
		entries := make([]Entry, 0, len(d.Education))
		for _, e := range d.Education {
			subtitle := e.Degree + " in " + e.Field
			if e.GPA != "" {
				subtitle += " | GPA: " + e.GPA
			}
			entries = append(entries, Entry{
				Title:    joinNonEmpty(", ", e.Institution, e.Location),
				Aside:    educationDates(e),
				Subtitle: subtitle,
				Bullets:  e.Honors,
			})
		}
		l.Sections = append(l.Sections, Section{Title: TitleEducation, Entries: entries})
	}

	if len(d.Awards) > 0 {
		entries := make([]Entry, 0, len(d.Awards))
		for _, a := range d.Awards {
			entries = append(entries, Entry{
				Title:    a.Title,
				Aside:    a.Date,
				Subtitle: a.Issuer,
				Body:     a.Description,
			})
		}
		l.Sections = append(l.Sections, Section{Title: TitleAwards, Entries: entries})
	}

	return l
}

// ContactLine joins the contact fields in fixed order, skipping empty ones.
func ContactLine(c model.ContactInfo) string {
	return joinNonEmpty(" | ",
		c.Location, c.Phone, c.Email, c.LinkedIn, c.GitHub, c.Website, c.Portfolio)
}

// experienceDates renders "start - end", substituting Present while the role
// is marked current. The stored endDate is kept in the record either way.
func experienceDates(e model.Experience) string {
	end := e.EndDate
	if e.Current {
		end = "Present"
	}
	return e.StartDate + " - " + end
}

// educationDates shows whichever of the two dates is set, joined when both
// are, empty when neither is.
func educationDates(e model.Education) string {
	switch {
	case e.StartDate != "" && e.EndDate != "":
		return e.StartDate + " - " + e.EndDate
	case e.StartDate != "":
		return e.StartDate
	default:
		return e.EndDate
	}
}

func projectLinks(p model.Project) string {
	var parts []string
	if p.Link != "" {
		parts = append(parts, "Link: "+p.Link)
	}
	if p.GitHub != "" {
		parts = append(parts, "GitHub: "+p.GitHub)
	}
	return strings.Join(parts, " | ")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
