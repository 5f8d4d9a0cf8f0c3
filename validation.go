package mentorhub

import (
	stderrors "errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// SignInRequest payload
type SignInRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// SignUpRequest is the registration payload
type SignUpRequest struct {
	FirstName string `form:"firstName" json:"firstName"`
	LastName  string `form:"lastName" json:"lastName"`
	Phone     string `form:"phone" json:"phone"`
	Role      string `form:"role" json:"role"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Phone, validation.Required, validation.By(ValidatePhoneNumber)),
		validation.Field(&r.Role, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

// Message converts the payload into the workflow message
func (r SignUpRequest) Message() RegisterUserMessage {
	return RegisterUserMessage{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Role:      r.Role,
		Password:  r.Password,
	}
}

// MentorCreatePayload is the multipart mentor-profile form
type MentorCreatePayload struct {
	Email          string `form:"email" json:"email"`
	Expertise      string `form:"expertise" json:"expertise"`
	Qualifications string `form:"educationalQualifications" json:"educationalQualifications"`
	JobTitle       string `form:"jobTitle" json:"jobTitle"`
	Experience     string `form:"experience" json:"experience"`
	Bio            string `form:"bio" json:"bio"`
}

// Validate will validate the payload
func (r MentorCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Expertise, validation.Required),
		validation.Field(&r.Qualifications, validation.Required),
		validation.Field(&r.JobTitle, validation.Required),
		validation.Field(&r.Experience, validation.Required, validation.In(MentorExperienceBands...)),
		validation.Field(&r.Bio, validation.Required, validation.Length(1, MaxMentorBioLength)),
	)
}

// SkillCreatePayload names a new curated skill
type SkillCreatePayload struct {
	SkillName string `form:"skillName" json:"skillName"`
}

// Validate will validate the payload
func (r SkillCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SkillName, validation.Required, validation.Length(1, 100)),
	)
}

// ValidatePhoneNumber checks that the value parses as a plausible phone
// number. Numbers without a country code are assumed to be US.
func ValidatePhoneNumber(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, "US")
	if err != nil {
		return stderrors.New("must be a valid phone number")
	}

	if !phonenumbers.IsPossibleNumber(num) {
		return stderrors.New("must be a valid phone number")
	}

	return nil
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field -> message map for the response body.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["payload"] = err.Error()
	return out
}
