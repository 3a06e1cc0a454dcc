package model

// Patch types implement partial updates: a nil field means "leave the stored
// value alone", a non-nil field overwrites it. Apply merges a patch into an
// existing record in place.

type ContactInfoPatch struct {
	FullName  *string `json:"fullName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	Website   *string `json:"website,omitempty"`
	Portfolio *string `json:"portfolio,omitempty"`
}

func (p ContactInfoPatch) Apply(c *ContactInfo) {
	setString(&c.FullName, p.FullName)
	setString(&c.Email, p.Email)
	setString(&c.Phone, p.Phone)
	setString(&c.Location, p.Location)
	setString(&c.LinkedIn, p.LinkedIn)
	setString(&c.GitHub, p.GitHub)
	setString(&c.Website, p.Website)
	setString(&c.Portfolio, p.Portfolio)
}

type ExperiencePatch struct {
	Company         *string   `json:"company,omitempty"`
	Location        *string   `json:"location,omitempty"`
	Position        *string   `json:"position,omitempty"`
	StartDate       *string   `json:"startDate,omitempty"`
	EndDate         *string   `json:"endDate,omitempty"`
	Current         *bool     `json:"current,omitempty"`
	Accomplishments *[]string `json:"accomplishments,omitempty"`
}

func (p ExperiencePatch) Apply(e *Experience) {
	setString(&e.Company, p.Company)
	setString(&e.Location, p.Location)
	setString(&e.Position, p.Position)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	if p.Current != nil {
		e.Current = *p.Current
	}
	setStrings(&e.Accomplishments, p.Accomplishments)
}

type ProjectPatch struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
	Highlights   *[]string `json:"highlights,omitempty"`
	Link         *string   `json:"link,omitempty"`
	GitHub       *string   `json:"github,omitempty"`
}

func (p ProjectPatch) Apply(pr *Project) {
	setString(&pr.Name, p.Name)
	setString(&pr.Description, p.Description)
	setStrings(&pr.Technologies, p.Technologies)
	setStrings(&pr.Highlights, p.Highlights)
	setString(&pr.Link, p.Link)
	setString(&pr.GitHub, p.GitHub)
}

type EducationPatch struct {
	Institution *string   `json:"institution,omitempty"`
	Degree      *string   `json:"degree,omitempty"`
	Field       *string   `json:"field,omitempty"`
	Location    *string   `json:"location,omitempty"`
	StartDate   *string   `json:"startDate,omitempty"`
	EndDate     *string   `json:"endDate,omitempty"`
	GPA         *string   `json:"gpa,omitempty"`
	Honors      *[]string `json:"honors,omitempty"`
}

func (p EducationPatch) Apply(e *Education) {
	setString(&e.Institution, p.Institution)
	setString(&e.Degree, p.Degree)
	setString(&e.Field, p.Field)
	setString(&e.Location, p.Location)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	setString(&e.GPA, p.GPA)
	setStrings(&e.Honors, p.Honors)
}

type AwardPatch struct {
	Title       *string `json:"title,omitempty"`
	Issuer      *string `json:"issuer,omitempty"`
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p AwardPatch) Apply(a *Award) {
	setString(&a.Title, p.Title)
	setString(&a.Issuer, p.Issuer)
	setString(&a.Date, p.Date)
	setString(&a.Description, p.Description)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setStrings(dst *[]string, src *[]string) {
	if src != nil {
		*dst = append([]string(nil), (*src)...)
	}
}
