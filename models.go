package mentorhub

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleStudent is the default role for new accounts
	RoleStudent UserRole = "student"
	// RoleMentor marks accounts that may own a mentor profile
	RoleMentor UserRole = "mentor"
	// RoleAdmin is reserved for operators
	RoleAdmin UserRole = "admin"
)

// User is the identity record. The stored password hash is never serialized.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role           UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	FirstName      string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName       string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Username       string     `bun:"username,notnull" json:"username,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone          string     `bun:"phone_number" json:"phone_number,omitempty"`
	ProfilePicture string     `bun:"profile_picture" json:"profile_picture,omitempty"`
	PasswordHash   string     `bun:"password_hash" json:"-"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// MentorExperience is the experience band of a mentor profile
type MentorExperience = string

const (
	ExperienceJunior MentorExperience = "0-3 years"
	ExperienceMid    MentorExperience = "3-10 years"
	ExperienceSenior MentorExperience = "10+ years"
)

// MentorExperienceBands lists the accepted experience values
var MentorExperienceBands = []any{ExperienceJunior, ExperienceMid, ExperienceSenior}

// MaxMentorBioLength caps the mentor bio
const MaxMentorBioLength = 500

// Mentor is a mentor profile owned by a User, joined by user_id.
type Mentor struct {
	bun.BaseModel  `bun:"table:mentors,alias:mnt"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID         uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User           *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Expertise      string     `bun:"expertise,notnull" json:"expertise,omitempty"`
	Qualifications string     `bun:"educational_qualifications,notnull" json:"educational_qualifications,omitempty"`
	JobTitle       string     `bun:"job_title,notnull" json:"job_title,omitempty"`
	Experience     string     `bun:"experience,notnull" json:"experience,omitempty"`
	Bio            string     `bun:"bio,notnull" json:"bio,omitempty"`
	ProfilePicture string     `bun:"profile_picture" json:"profile_picture,omitempty"`
	Skills         []string   `bun:"skills" json:"skills,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Skill is a curated skill name, unique across the platform.
type Skill struct {
	bun.BaseModel `bun:"table:skills,alias:skl"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	SkillName     string     `bun:"skill_name,notnull,unique" json:"skill_name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// PublicProfile is the response shape shared by sign-in, sign-up and the
// identity check. It never carries the password hash.
type PublicProfile struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// PublicProfileFromUser maps a user record to its public fields
func PublicProfileFromUser(u *User) PublicProfile {
	if u == nil {
		return PublicProfile{}
	}
	return PublicProfile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
	}
}
