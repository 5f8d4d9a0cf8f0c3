package mentorhub

import (
	"encoding/base64"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// MentorController serves mentor-profile creation and listing plus the
// curated skill catalog.
type MentorController struct {
	Logger Logger
	Repo   RepositoryManager
	Config Config
}

// NewMentorController builds the controller; Repo is mandatory
func NewMentorController(repo RepositoryManager, cfg Config, logger Logger) *MentorController {
	if repo == nil {
		panic("Missing RepositoryManager in mentor controller...")
	}
	if logger == nil {
		logger = defLogger{}
	}
	return &MentorController{
		Logger: logger,
		Repo:   repo,
		Config: cfg,
	}
}

// RegisterMentorRoutes mounts the mentor and skill endpoints
func (m *MentorController) RegisterMentorRoutes(app *fiber.App) {
	app.Post("/mentor", m.CreateMentor)
	app.Get("/mentors", m.ListMentors)
	app.Get("/skills", m.ListSkills)
	app.Post("/skills", m.CreateSkill)
}

// CreateMentor creates a mentor profile for an existing user. The profile
// picture is stored base64-encoded; an optional resume PDF is scanned for
// registered skill names.
func (m *MentorController) CreateMentor(c *fiber.Ctx) error {
	payload := new(MentorCreatePayload)

	if err := c.BodyParser(payload); err != nil {
		m.Logger.Error("mentor parse payload", "error", err)
		return NewValidationError(map[string]string{"payload": "Failed to parse form"})
	}

	if err := payload.Validate(); err != nil {
		return NewValidationError(FormatValidationErrorToMap(err))
	}

	ctx := c.UserContext()

	if _, err := m.Repo.Mentors().GetByEmail(ctx, payload.Email); err == nil {
		return errors.New("Mentor with this email already exists.", errors.CategoryConflict).
			WithTextCode("MENTOR_EXISTS").
			WithCode(errors.CodeBadRequest)
	} else if !IsRecordNotFound(err) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check existing mentor")
	}

	user, err := m.Repo.Users().GetByEmail(ctx, payload.Email)
	if err != nil {
		if IsRecordNotFound(err) {
			return errors.New("No user found with this email.", errors.CategoryNotFound).
				WithTextCode("USER_NOT_FOUND").
				WithCode(errors.CodeBadRequest)
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to resolve mentor user")
	}

	mentor := &Mentor{
		UserID:         user.ID,
		Email:          payload.Email,
		Expertise:      payload.Expertise,
		Qualifications: payload.Qualifications,
		JobTitle:       payload.JobTitle,
		Experience:     payload.Experience,
		Bio:            payload.Bio,
	}

	if picture, err := m.readUpload(c, "profilePicture"); err != nil {
		return err
	} else if picture != nil {
		mentor.ProfilePicture = base64.StdEncoding.EncodeToString(picture)
	}

	if resume, err := m.readUpload(c, "resume"); err != nil {
		return err
	} else if resume != nil {
		skills, err := m.skillsFromResume(c, resume)
		if err != nil {
			m.Logger.Warn("resume skill scan failed", "error", err)
		} else {
			mentor.Skills = skills
		}
	}

	created, err := m.Repo.Mentors().Create(ctx, mentor)
	if err != nil {
		if IsConflict(err) {
			return err
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to create mentor profile")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Mentor profile created successfully.",
		"mentor":  created,
	})
}

// ListMentors returns every mentor joined with the owning user's name and
// profile picture.
func (m *MentorController) ListMentors(c *fiber.Ctx) error {
	records, err := m.Repo.Mentors().ListWithUsers(c.UserContext())
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "Failed to fetch mentors")
	}

	return c.Status(fiber.StatusOK).JSON(records)
}

// ListSkills returns the curated skill catalog
func (m *MentorController) ListSkills(c *fiber.Ctx) error {
	records, err := m.Repo.Skills().List(c.UserContext())
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "Failed to fetch skills")
	}

	return c.Status(fiber.StatusOK).JSON(records)
}

// CreateSkill registers a new skill name
func (m *MentorController) CreateSkill(c *fiber.Ctx) error {
	payload := new(SkillCreatePayload)

	if err := c.BodyParser(payload); err != nil {
		return NewValidationError(map[string]string{"payload": "Failed to parse body"})
	}

	if err := payload.Validate(); err != nil {
		return NewValidationError(FormatValidationErrorToMap(err))
	}

	created, err := m.Repo.Skills().Create(c.UserContext(), &Skill{SkillName: payload.SkillName})
	if err != nil {
		if IsConflict(err) {
			return err
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to create skill")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// readUpload returns the named multipart file's bytes, nil when absent.
func (m *MentorController) readUpload(c *fiber.Ctx, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// fiber returns an error for a missing file field
		return nil, nil
	}

	max := m.Config.MaxUploadBytes
	if max <= 0 {
		max = defaultMaxUploadBytes
	}

	if fh.Size > max {
		return nil, NewValidationError(map[string]string{
			field: "file exceeds the upload size limit",
		})
	}

	return readMultipartFile(fh, max)
}

func (m *MentorController) skillsFromResume(c *fiber.Ctx, resume []byte) ([]string, error) {
	known, err := m.Repo.Skills().Names(c.UserContext())
	if err != nil {
		return nil, err
	}

	text, err := ExtractPDFText(resume)
	if err != nil {
		return nil, err
	}

	return MatchSkills(text, known), nil
}

func readMultipartFile(fh *multipart.FileHeader, max int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, max))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to read upload")
	}

	return data, nil
}
