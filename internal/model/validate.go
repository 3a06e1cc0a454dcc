package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

// ValidateDocument validates a full document against resume.schema.json.
// It is used on snapshots read back from storage; documents already in the
// store are trusted.
func ValidateDocument(d ResumeData) error {
	schemaLoader := gojsonschema.NewBytesLoader(resumeSchema)
	docLoader := gojsonschema.NewGoLoader(d)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}

// MissingFieldsError reports the required fields a record is missing. It is
// the commit-time gate: records failing it never reach the store.
type MissingFieldsError struct {
	Missing []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

func requireFields(fields map[string]string, order []string) error {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Missing: missing}
	}
	return nil
}

func (e Experience) Validate() error {
	return requireFields(map[string]string{
		"company":  e.Company,
		"location": e.Location,
		"position": e.Position,
	}, []string{"company", "location", "position"})
}

func (p Project) Validate() error {
	return requireFields(map[string]string{
		"name":        p.Name,
		"description": p.Description,
	}, []string{"name", "description"})
}

func (e Education) Validate() error {
	return requireFields(map[string]string{
		"institution": e.Institution,
		"location":    e.Location,
		"degree":      e.Degree,
		"field":       e.Field,
	}, []string{"institution", "location", "degree", "field"})
}

func (a Award) Validate() error {
	return requireFields(map[string]string{
		"title":  a.Title,
		"issuer": a.Issuer,
	}, []string{"title", "issuer"})
}

// StripBlankLines drops empty and whitespace-only entries from a list field.
// Editing surfaces keep blank rows around while the user types; they are
// filtered here before a record is committed.
func StripBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
