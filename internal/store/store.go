// Package store holds the single authoritative resume document and exposes
// one operation per logical mutation. Mutations are synchronous and atomic
// with respect to each other; after every mutation the document is persisted
// best-effort, so a persistence failure never blocks the in-memory change.
package store

import (
	"context"
	"log"
	"sync"

	"resume-builder/internal/model"
)

// Snapshots is the durable storage behind the store. Load returns nil when
// no snapshot has been written yet.
type Snapshots interface {
	Load(ctx context.Context) (*model.ResumeData, error)
	Save(ctx context.Context, data model.ResumeData) error
}

type Store struct {
	mu        sync.Mutex
	data      model.ResumeData
	snapshots Snapshots
}

// New builds a store from the last persisted snapshot, falling back to the
// default empty document when there is none or the snapshot fails to load or
// validate.
func New(ctx context.Context, snapshots Snapshots) *Store {
	s := &Store{data: model.DefaultResumeData(), snapshots: snapshots}
	if snapshots == nil {
		return s
	}
	data, err := snapshots.Load(ctx)
	if err != nil {
		log.Printf("warning: failed to load resume snapshot, starting empty: %v", err)
		return s
	}
	if data == nil {
		return s
	}
	if err := model.ValidateDocument(*data); err != nil {
		log.Printf("warning: persisted resume snapshot is invalid, starting empty: %v", err)
		return s
	}
	s.data = normalize(*data)
	return s
}

// normalize replaces nil collections with empty ones so the document stays
// fully defined no matter what the snapshot contained.
func normalize(d model.ResumeData) model.ResumeData {
	if d.Skills == nil {
		d.Skills = []model.Skill{}
	}
	if d.Experience == nil {
		d.Experience = []model.Experience{}
	}
	if d.Projects == nil {
		d.Projects = []model.Project{}
	}
	if d.Education == nil {
		d.Education = []model.Education{}
	}
	if d.Awards == nil {
		d.Awards = []model.Award{}
	}
	return d
}

// Resume returns a deep copy of the current document.
func (s *Store) Resume() model.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Close persists the current document one last time.
func (s *Store) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(ctx, s.data); err != nil {
		log.Printf("warning: failed to persist resume snapshot: %v", err)
	}
}

// mutate runs fn under the lock and persists the result.
func (s *Store) mutate(ctx context.Context, fn func(*model.ResumeData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
	s.persistLocked(ctx)
}

func (s *Store) UpdateContactInfo(ctx context.Context, patch model.ContactInfoPatch) {
	s.mutate(ctx, func(d *model.ResumeData) {
		patch.Apply(&d.ContactInfo)
	})
}

func (s *Store) UpdateSummary(ctx context.Context, summary string) {
	s.mutate(ctx, func(d *model.ResumeData) {
		d.Summary = summary
	})
}

// SetSkills replaces the whole skills sequence. The editing surface works on
// its own copy and commits it atomically, so there are no per-item ops.
func (s *Store) SetSkills(ctx context.Context, skills []model.Skill) {
	s.mutate(ctx, func(d *model.ResumeData) {
		if skills == nil {
			skills = []model.Skill{}
		}
		d.Skills = skills
	})
}

func (s *Store) AddExperience(ctx context.Context, exp model.Experience) {
	s.mutate(ctx, func(d *model.ResumeData) {
		d.Experience = append(d.Experience, exp)
	})
}

// UpdateExperience merges patch into the record with the given id. Unknown
// ids are a silent no-op.
func (s *Store) UpdateExperience(ctx context.Context, id string, patch model.ExperiencePatch) {
	s.mutate(ctx, func(d *model.ResumeData) {
		for i := range d.Experience {
			if d.Experience[i].ID == id {
				patch.Apply(&d.Experience[i])
				return
			}
		}
	})
}

func (s *Store) RemoveExperience(ctx context.Context, id string) {
	s.mutate(ctx, func(d *model.ResumeData) {
		for i := range d.Experience {
			if d.Experience[i].ID == id {
				d.Experience = append(d.Experience[:i], d.Experience[i+1:]...)
				return
			}
		}
	})
}

func (s *Store) AddProject(ctx context.Context, p model.Project) {
	s.mutate(ctx, func(d *model.ResumeData) {
		d.Projects = append(d.Projects, p)
	})
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) {
	s.mutate(ctx, func(d *model.ResumeData) {
		for i := range d.Projects {
			if d.Projects[i].ID == id {
				patch.Apply(&d.Projects[i])
				return
			}
		}
	})
}

func (s *Store) RemoveProject(ctx context.Context, id string) {
	s.mutate(ctx, func(d *model.ResumeData) {
		for i := range d.Projects {
			if d.Projects[i].ID == id {
				d.Projects = append(d.Projects[:i], d.Projects[i+1:]...)
				return
			}
		}
	})
}

func (s *Store) AddEducation(ctx context.Context, e model.Education) {
	s.mutate(ctx, func(d *model.ResumeData) {
		d.Education = append(d.Education, e)
	})
}

func (s *Store) UpdateEducation(ctx context.Context, id string, patch model.EducationPatch) {
	s.mutate(ctx, func(d *model.ResumeData) {
		for i := range d.Education {
			if d.Education[i].ID == id {
				patch.Apply(&d.Education[i])
				return
			}
		}
	})
}

func (s *Store) RemoveEducation(ctx context.Context, id string) {
	s.mutate(ctx, func(d *model.ResumeData) {
		for i := range d.Education {
			if d.Education[i].ID == id {
				d.Education = append(d.Education[:i], d.Education[i+1:]...)
				return
			}
		}
	})
}

func (s *Store) AddAward(ctx context.Context, a model.Award) {
	s.mutate(ctx, func(d *model.ResumeData) {
		d.Awards = append(d.Awards, a)
	})
}

func (s *Store) UpdateAward(ctx context.Context, id string, patch model.AwardPatch) {
	s.mutate(ctx, func(d *model.ResumeData) {
		for i := range d.Awards {
			if d.Awards[i].ID == id {
				patch.Apply(&d.Awards[i])
				return
			}
		}
	})
}

func (s *Store) RemoveAward(ctx context.Context, id string) {
	s.mutate(ctx, func(d *model.ResumeData) {
		for i := range d.Awards {
			if d.Awards[i].ID == id {
				d.Awards = append(d.Awards[:i], d.Awards[i+1:]...)
				return
			}
		}
	})
}

// Reset discards everything and goes back to the default empty document.
func (s *Store) Reset(ctx context.Context) {
	s.mutate(ctx, func(d *model.ResumeData) {
		*d = model.DefaultResumeData()
	})
}
