package mentorhub

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Skills is the curated skill-name store
type Skills interface {
	List(ctx context.Context) ([]*Skill, error)
	Names(ctx context.Context) ([]string, error)
	Create(ctx context.Context, record *Skill) (*Skill, error)
}

type skills struct {
	repository.Repository[*Skill]
	db *bun.DB
}

var _ Skills = (*skills)(nil)

// NewSkillsRepository builds the bun-backed Skills store
func NewSkillsRepository(db *bun.DB) Skills {
	repo := repository.NewRepository[*Skill](db, repository.ModelHandlers[*Skill]{
		NewRecord: func() *Skill { return &Skill{} },
		GetID: func(s *Skill) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Skill, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
		GetIdentifier: func() string {
			return "skill_name"
		},
	})

	return &skills{Repository: repo, db: db}
}

func (a *skills) List(ctx context.Context) ([]*Skill, error) {
	var records []*Skill
	err := a.db.NewSelect().Model(&records).
		Order("skl.skill_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *skills) Names(ctx context.Context) ([]string, error) {
	records, err := a.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for _, s := range records {
		names = append(names, s.SkillName)
	}
	return names, nil
}

func (a *skills) Create(ctx context.Context, record *Skill) (*Skill, error) {
	if record != nil {
		record.SkillName = strings.TrimSpace(record.SkillName)
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
	}

	created, err := a.Repository.Create(ctx, record)
	if err != nil {
		if isUniqueViolation(err, "skills.skill_name") {
			return nil, errors.Wrap(err, errors.CategoryConflict, "Skill already exists").
				WithTextCode("SKILL_EXISTS").
				WithCode(errors.CodeConflict)
		}
		return nil, err
	}

	return created, nil
}
