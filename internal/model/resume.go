package model

// Go models for the resume document. These match resume.schema.json, which is
// used to validate persisted snapshots before they are loaded into the store.

type ContactInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Website   string `json:"website,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type Skill struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type Experience struct {
	ID              string   `json:"id"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Position        string   `json:"position"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	Current         bool     `json:"current"`
	Accomplishments []string `json:"accomplishments"`
}

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Highlights   []string `json:"highlights"`
	Link         string   `json:"link,omitempty"`
	GitHub       string   `json:"github,omitempty"`
}

type Education struct {
	ID          string   `json:"id"`
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	Location    string   `json:"location"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	GPA         string   `json:"gpa,omitempty"`
	Honors      []string `json:"honors,omitempty"`
}

type Award struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// ResumeData is the whole document. Every top-level section is always
// present; the empty state uses empty strings and empty slices, never nil
// sections, so a serialized document round-trips without surprises.
type ResumeData struct {
	ContactInfo ContactInfo  `json:"contactInfo"`
	Summary     string       `json:"summary"`
	Skills      []Skill      `json:"skills"`
	Experience  []Experience `json:"experience"`
	Projects    []Project    `json:"projects"`
	Education   []Education  `json:"education"`
	Awards      []Award      `json:"awards"`
}

// DefaultResumeData returns the empty document used at first start and after
// a reset.
func DefaultResumeData() ResumeData {
	return ResumeData{
		Skills:     []Skill{},
		Experience: []Experience{},
		Projects:   []Project{},
		Education:  []Education{},
		Awards:     []Award{},
	}
}

// IsEmpty reports whether the document has no user content at all, in which
// case rendering shows a placeholder instead of an empty page.
func (d ResumeData) IsEmpty() bool {
	return d.ContactInfo.FullName == "" &&
		d.Summary == "" &&
		len(d.Skills) == 0 &&
		len(d.Experience) == 0 &&
		len(d.Projects) == 0 &&
		len(d.Education) == 0 &&
		len(d.Awards) == 0
}

// Clone returns a deep copy of the document so callers can hold onto it
// without aliasing the store's internal state.
func (d ResumeData) Clone() ResumeData {
	out := d
	out.Skills = make([]Skill, len(d.Skills))
	for i, s := range d.Skills {
		out.Skills[i] = s
		out.Skills[i].Items = append([]string(nil), s.Items...)
	}
	out.Experience = make([]Experience, len(d.Experience))
	for i, e := range d.Experience {
		out.Experience[i] = e
		out.Experience[i].Accomplishments = append([]string(nil), e.Accomplishments...)
	}
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		out.Projects[i] = p
		out.Projects[i].Technologies = append([]string(nil), p.Technologies...)
		out.Projects[i].Highlights = append([]string(nil), p.Highlights...)
	}
	out.Education = make([]Education, len(d.Education))
	for i, e := range d.Education {
		out.Education[i] = e
		out.Education[i].Honors = append([]string(nil), e.Honors...)
	}
	out.Awards = append([]Award(nil), d.Awards...)
	return out
}
