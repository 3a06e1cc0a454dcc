package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/model"
)

// memSnapshots is an in-memory Snapshots implementation; failing toggles a
// persistent write error.
type memSnapshots struct {
	mu      sync.Mutex
	data    *model.ResumeData
	failing bool
	saves   int
}

func (m *memSnapshots) Load(context.Context) (*model.ResumeData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	cp := m.data.Clone()
	return &cp, nil
}

func (m *memSnapshots) Save(_ context.Context, data model.ResumeData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("quota exceeded")
	}
	cp := data.Clone()
	m.data = &cp
	m.saves++
	return nil
}

func newTestStore(t *testing.T) (*Store, *memSnapshots) {
	t.Helper()
	snaps := &memSnapshots{}
	return New(context.Background(), snaps), snaps
}

func TestNew_StartsEmptyWithoutSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, model.DefaultResumeData(), s.Resume())
}

func TestAddExperience_AppendsAndIsRetrievable(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddExperience(ctx, model.Experience{ID: "a", Company: "Acme", Location: "Remote", Position: "Engineer"})

	got := s.Resume().Experience
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "Acme", got[0].Company)
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		s.AddAward(ctx, model.Award{ID: id, Title: id, Issuer: "org"})
	}

	got := s.Resume().Awards
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
	assert.Equal(t, "third", got[2].ID)
}

func TestUpdateExperience_ShallowMerge(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddExperience(ctx, model.Experience{
		ID: "a", Company: "Acme", Location: "Remote", Position: "Engineer",
		StartDate: "01/2020", EndDate: "06/2022",
		Accomplishments: []string{"Shipped X"},
	})

	pos := "Staff Engineer"
	s.UpdateExperience(ctx, "a", model.ExperiencePatch{Position: &pos})

	got := s.Resume().Experience[0]
	assert.Equal(t, "Staff Engineer", got.Position)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "06/2022", got.EndDate)
	assert.Equal(t, []string{"Shipped X"}, got.Accomplishments)
}

func TestUpdate_UnknownID_SilentNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddProject(ctx, model.Project{ID: "p1", Name: "CLI", Description: "tool"})
	name := "changed"
	s.UpdateProject(ctx, "nope", model.ProjectPatch{Name: &name})

	assert.Equal(t, "CLI", s.Resume().Projects[0].Name)
}

func TestRemove_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddEducation(ctx, model.Education{ID: "e1", Institution: "MIT", Degree: "BSc", Field: "CS", Location: "Cambridge"})
	s.AddEducation(ctx, model.Education{ID: "e2", Institution: "CMU", Degree: "MSc", Field: "CS", Location: "Pittsburgh"})

	s.RemoveEducation(ctx, "e1")
	s.RemoveEducation(ctx, "e1")

	got := s.Resume().Education
	require.Len(t, got, 1)
	assert.Equal(t, "e2", got[0].ID)
}

func TestAwardLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddAward(ctx, model.Award{ID: "aw1", Title: "AWS Cert", Issuer: "AWS", Date: "03/2023"})
	desc := "Pro level"
	s.UpdateAward(ctx, "aw1", model.AwardPatch{Description: &desc})
	assert.Equal(t, "Pro level", s.Resume().Awards[0].Description)

	s.RemoveAward(ctx, "aw1")
	assert.Empty(t, s.Resume().Awards)
}

func TestUpdateContactInfo_PartialMerge(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	name, email := "Jane Doe", "jane@example.com"
	s.UpdateContactInfo(ctx, model.ContactInfoPatch{FullName: &name, Email: &email})

	phone := "555-0100"
	s.UpdateContactInfo(ctx, model.ContactInfoPatch{Phone: &phone})

	got := s.Resume().ContactInfo
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "555-0100", got.Phone)
}

func TestSetSkills_ReplacesWholeSequence(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.SetSkills(ctx, []model.Skill{{Category: "Languages", Items: []string{"Go"}}})
	s.SetSkills(ctx, []model.Skill{
		{Category: "Backend", Items: []string{"Go", "Postgres"}},
		{Category: "Backend", Items: []string{"Redis"}}, // duplicate categories are allowed
	})

	got := s.Resume().Skills
	require.Len(t, got, 2)
	assert.Equal(t, "Backend", got[0].Category)
	assert.Equal(t, []string{"Go", "Postgres"}, got[0].Items)
}

func TestReset_RestoresDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	name := "Jane Doe"
	s.UpdateContactInfo(ctx, model.ContactInfoPatch{FullName: &name})
	s.UpdateSummary(ctx, "Engineer.")
	s.AddExperience(ctx, model.Experience{ID: "a", Company: "Acme", Location: "Remote", Position: "Engineer"})

	s.Reset(ctx)
	assert.Equal(t, model.DefaultResumeData(), s.Resume())
}

func TestMutationsPersistSnapshots(t *testing.T) {
	s, snaps := newTestStore(t)
	ctx := context.Background()

	s.UpdateSummary(ctx, "Engineer.")
	require.NotNil(t, snaps.data)
	assert.Equal(t, "Engineer.", snaps.data.Summary)

	// a new store picks up the persisted state
	reloaded := New(ctx, snaps)
	assert.Equal(t, s.Resume(), reloaded.Resume())
}

func TestPersistFailure_DoesNotBlockMutation(t *testing.T) {
	snaps := &memSnapshots{failing: true}
	s := New(context.Background(), snaps)

	s.UpdateSummary(context.Background(), "still applied")
	assert.Equal(t, "still applied", s.Resume().Summary)
}

func TestNew_InvalidSnapshotFallsBackToDefaults(t *testing.T) {
	bad := model.DefaultResumeData()
	bad.Experience = append(bad.Experience, model.Experience{Company: "no id"})
	snaps := &memSnapshots{data: &bad}

	s := New(context.Background(), snaps)
	assert.Equal(t, model.DefaultResumeData(), s.Resume())
}

func TestResume_ReturnsDeepCopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddExperience(ctx, model.Experience{ID: "a", Company: "Acme", Location: "Remote", Position: "Engineer", Accomplishments: []string{"Shipped X"}})

	cp := s.Resume()
	cp.Experience[0].Accomplishments[0] = "mutated"
	assert.Equal(t, "Shipped X", s.Resume().Experience[0].Accomplishments[0])
}
