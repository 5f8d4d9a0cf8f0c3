package mentorhub_test

import (
	"context"
	"database/sql"
	"sync"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"

	"github.com/mentorhubapp/mentorhub"
)

// MockUsers implements mentorhub.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*mentorhub.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*mentorhub.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id uuid.UUID) (*mentorhub.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*mentorhub.User)
	return user, args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, record *mentorhub.User) (*mentorhub.User, error) {
	args := m.Called(ctx, record)
	// Return(func(...)) lets a test echo back the record it was handed
	if fn, ok := args.Get(0).(func(context.Context, *mentorhub.User) (*mentorhub.User, error)); ok {
		return fn(ctx, record)
	}
	user, _ := args.Get(0).(*mentorhub.User)
	return user, args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *mentorhub.User) (*mentorhub.User, error) {
	args := m.Called(ctx, tx, record)
	user, _ := args.Get(0).(*mentorhub.User)
	return user, args.Error(1)
}

// memUsers is a map-backed Users store for stateful controller tests. It
// enforces the email uniqueness constraint the way the real index does.
type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*mentorhub.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*mentorhub.User{}}
}

func (s *memUsers) GetByEmail(_ context.Context, email string) (*mentorhub.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.byEmail[email]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{"email": email})
}

func (s *memUsers) GetByID(_ context.Context, id uuid.UUID) (*mentorhub.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.byEmail {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{"id": id.String()})
}

func (s *memUsers) Create(_ context.Context, record *mentorhub.User) (*mentorhub.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[record.Email]; ok {
		return nil, mentorhub.ErrAlreadyRegistered
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	clone := *record
	s.byEmail[record.Email] = &clone

	return record, nil
}

func (s *memUsers) CreateTx(ctx context.Context, _ bun.IDB, record *mentorhub.User) (*mentorhub.User, error) {
	return s.Create(ctx, record)
}

func (s *memUsers) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byEmail)
}

type memMentors struct {
	mu      sync.Mutex
	byEmail map[string]*mentorhub.Mentor
}

func newMemMentors() *memMentors {
	return &memMentors{byEmail: map[string]*mentorhub.Mentor{}}
}

func (s *memMentors) GetByEmail(_ context.Context, email string) (*mentorhub.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mentor, ok := s.byEmail[email]; ok {
		clone := *mentor
		return &clone, nil
	}
	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{"email": email})
}

func (s *memMentors) Create(_ context.Context, record *mentorhub.Mentor) (*mentorhub.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[record.Email]; ok {
		return nil, errors.New("Mentor with this email already exists.", errors.CategoryConflict).
			WithCode(errors.CodeBadRequest)
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	clone := *record
	s.byEmail[record.Email] = &clone

	return record, nil
}

func (s *memMentors) CreateTx(ctx context.Context, _ bun.IDB, record *mentorhub.Mentor) (*mentorhub.Mentor, error) {
	return s.Create(ctx, record)
}

func (s *memMentors) ListWithUsers(_ context.Context) ([]*mentorhub.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*mentorhub.Mentor, 0, len(s.byEmail))
	for _, mentor := range s.byEmail {
		clone := *mentor
		out = append(out, &clone)
	}
	return out, nil
}

type memSkills struct {
	mu     sync.Mutex
	skills []*mentorhub.Skill
}

func (s *memSkills) List(_ context.Context) ([]*mentorhub.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*mentorhub.Skill{}, s.skills...), nil
}

func (s *memSkills) Names(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.skills))
	for _, skill := range s.skills {
		out = append(out, skill.SkillName)
	}
	return out, nil
}

func (s *memSkills) Create(_ context.Context, record *mentorhub.Skill) (*mentorhub.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, skill := range s.skills {
		if skill.SkillName == record.SkillName {
			return nil, errors.New("Skill already exists", errors.CategoryConflict).
				WithTextCode("SKILL_EXISTS").
				WithCode(errors.CodeConflict)
		}
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.skills = append(s.skills, record)

	return record, nil
}

// memRepo satisfies RepositoryManager over the in-memory stores
type memRepo struct {
	users   *memUsers
	mentors *memMentors
	skills  *memSkills
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:   newMemUsers(),
		mentors: newMemMentors(),
		skills:  &memSkills{},
	}
}

func (r *memRepo) Users() mentorhub.Users     { return r.users }
func (r *memRepo) Mentors() mentorhub.Mentors { return r.mentors }
func (r *memRepo) Skills() mentorhub.Skills   { return r.skills }
func (r *memRepo) Validate() error            { return nil }
func (r *memRepo) MustValidate()              {}

func (r *memRepo) RunInTx(ctx context.Context, _ *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}
