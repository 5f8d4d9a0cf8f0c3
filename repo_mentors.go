package mentorhub

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Mentors is the mentor-profile store
type Mentors interface {
	GetByEmail(ctx context.Context, email string) (*Mentor, error)
	Create(ctx context.Context, record *Mentor) (*Mentor, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Mentor) (*Mentor, error)
	ListWithUsers(ctx context.Context) ([]*Mentor, error)
}

type mentors struct {
	repository.Repository[*Mentor]
	db *bun.DB
}

var _ Mentors = (*mentors)(nil)

// NewMentorsRepository builds the bun-backed Mentors store
func NewMentorsRepository(db *bun.DB) Mentors {
	repo := repository.NewRepository[*Mentor](db, repository.ModelHandlers[*Mentor]{
		NewRecord: func() *Mentor { return &Mentor{} },
		GetID: func(m *Mentor) uuid.UUID {
			if m == nil {
				return uuid.Nil
			}
			return m.ID
		},
		SetID: func(m *Mentor, id uuid.UUID) {
			if m != nil {
				m.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &mentors{Repository: repo, db: db}
}

func (a *mentors) GetByEmail(ctx context.Context, email string) (*Mentor, error) {
	record := &Mentor{}
	err := a.db.NewSelect().Model(record).
		Where("?TableAlias.email = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": email})
		}
		return nil, err
	}

	return record, nil
}

func (a *mentors) Create(ctx context.Context, record *Mentor) (*Mentor, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *mentors) CreateTx(ctx context.Context, tx bun.IDB, record *Mentor) (*Mentor, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	created, err := a.Repository.CreateTx(ctx, tx, record)
	if err != nil {
		if isUniqueViolation(err, "mentors.email") {
			return nil, errors.Wrap(err, errors.CategoryConflict, "Mentor with this email already exists.").
				WithTextCode("MENTOR_EXISTS").
				WithCode(errors.CodeBadRequest)
		}
		return nil, err
	}

	return created, nil
}

// ListWithUsers returns every mentor joined with the owning user's name and
// picture, the way the original listing populated its user reference.
func (a *mentors) ListWithUsers(ctx context.Context) ([]*Mentor, error) {
	var records []*Mentor

	err := a.db.NewSelect().Model(&records).
		Relation("User", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("id", "first_name", "last_name", "profile_picture")
		}).
		Order("mnt.created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}
