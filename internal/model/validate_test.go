package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_DefaultIsValid(t *testing.T) {
	require.NoError(t, ValidateDocument(DefaultResumeData()))
}

func TestValidateDocument_RejectsRecordWithoutID(t *testing.T) {
	d := DefaultResumeData()
	d.Experience = append(d.Experience, Experience{
		Company:         "Acme",
		Location:        "Remote",
		Position:        "Engineer",
		Accomplishments: []string{},
	})
	err := ValidateDocument(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestExperienceValidate_CollectsMissingFields(t *testing.T) {
	err := Experience{Company: "Acme"}.Validate()
	require.Error(t, err)

	mf, ok := err.(*MissingFieldsError)
	require.True(t, ok)
	assert.Equal(t, []string{"location", "position"}, mf.Missing)
}

func TestExperienceValidate_WhitespaceCountsAsMissing(t *testing.T) {
	err := Experience{Company: "  ", Location: "Remote", Position: "Engineer"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company")
}

func TestEntityValidate_CompleteRecordsPass(t *testing.T) {
	assert.NoError(t, Experience{Company: "Acme", Location: "Remote", Position: "Engineer"}.Validate())
	assert.NoError(t, Project{Name: "CLI", Description: "A tool"}.Validate())
	assert.NoError(t, Education{Institution: "MIT", Location: "Cambridge", Degree: "BSc", Field: "CS"}.Validate())
	assert.NoError(t, Award{Title: "AWS Cert", Issuer: "AWS"}.Validate())
}

func TestAwardValidate_MissingIssuer(t *testing.T) {
	err := Award{Title: "Cert"}.Validate()
	require.Error(t, err)

	mf, ok := err.(*MissingFieldsError)
	require.True(t, ok)
	assert.Equal(t, []string{"issuer"}, mf.Missing)
}

func TestStripBlankLines(t *testing.T) {
	got := StripBlankLines([]string{"Shipped X", "", "  ", "\t", "Led Y"})
	assert.Equal(t, []string{"Shipped X", "Led Y"}, got)

	assert.Empty(t, StripBlankLines(nil))
	assert.Empty(t, StripBlankLines([]string{"", " "}))
}

func TestPatchApply_OnlyOverwritesProvidedFields(t *testing.T) {
	exp := Experience{
		ID:        "1",
		Company:   "Acme",
		Location:  "Remote",
		Position:  "Engineer",
		StartDate: "01/2020",
		EndDate:   "06/2022",
	}

	pos := "Senior Engineer"
	cur := true
	ExperiencePatch{Position: &pos, Current: &cur}.Apply(&exp)

	assert.Equal(t, "Senior Engineer", exp.Position)
	assert.True(t, exp.Current)
	// untouched fields survive, including the stored end date
	assert.Equal(t, "Acme", exp.Company)
	assert.Equal(t, "06/2022", exp.EndDate)
}

func TestClone_IsIndependent(t *testing.T) {
	d := DefaultResumeData()
	d.Skills = []Skill{{Category: "Languages", Items: []string{"Go"}}}
	d.Experience = []Experience{{ID: "1", Company: "Acme", Accomplishments: []string{"Shipped X"}}}

	cp := d.Clone()
	cp.Skills[0].Items[0] = "Rust"
	cp.Experience[0].Accomplishments[0] = "changed"

	assert.Equal(t, "Go", d.Skills[0].Items[0])
	assert.Equal(t, "Shipped X", d.Experience[0].Accomplishments[0])
}
