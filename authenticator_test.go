package mentorhub_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mentorhubapp/mentorhub"
)

func registerMessage() mentorhub.RegisterUserMessage {
	return mentorhub.RegisterUserMessage{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+12125551234",
		Role:      mentorhub.RoleStudent,
		Password:  "password123",
	}
}

func TestRegister(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	msg := registerMessage()

	users.On("GetByEmail", mock.Anything, msg.Email).
		Return(nil, repository.NewRecordNotFound())

	users.On("Create", mock.Anything, mock.AnythingOfType("*mentorhub.User")).
		Return(func(_ context.Context, record *mentorhub.User) (*mentorhub.User, error) {
			return record, nil
		})

	user, token, err := auther.Register(context.Background(), msg)
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, token)

	assert.Equal(t, msg.Email, user.Email)
	assert.Equal(t, msg.Role, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, msg.Password, user.PasswordHash)

	// account IDs are derived from the email so re-registration attempts
	// collide deterministically
	wantID, err := hashid.NewUUID(msg.Email)
	assert.NoError(t, err)
	assert.Equal(t, wantID, user.ID)

	claims, err := newTestTokenService().Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID())

	users.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	msg := registerMessage()

	users.On("GetByEmail", mock.Anything, msg.Email).
		Return(testUser(), nil)

	user, token, err := auther.Register(context.Background(), msg)
	assert.ErrorIs(t, err, mentorhub.ErrAlreadyRegistered)
	assert.Nil(t, user)
	assert.Empty(t, token)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterLosesCreationRace(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	msg := registerMessage()

	users.On("GetByEmail", mock.Anything, msg.Email).
		Return(nil, repository.NewRecordNotFound())
	users.On("Create", mock.Anything, mock.Anything).
		Return(nil, mentorhub.ErrAlreadyRegistered)

	_, _, err := auther.Register(context.Background(), msg)
	assert.ErrorIs(t, err, mentorhub.ErrAlreadyRegistered)
}

func TestRegisterEmptyPassword(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	msg := registerMessage()
	msg.Password = ""

	users.On("GetByEmail", mock.Anything, msg.Email).
		Return(nil, repository.NewRecordNotFound())

	_, _, err := auther.Register(context.Background(), msg)
	assert.ErrorIs(t, err, mentorhub.ErrNoEmptyString)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	hash, err := mentorhub.HashPassword("password123")
	assert.NoError(t, err)

	stored := testUser()
	stored.PasswordHash = hash

	users.On("GetByEmail", mock.Anything, stored.Email).
		Return(stored, nil)

	user, token, err := auther.Login(context.Background(), stored.Email, "password123")
	assert.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
	assert.NotEmpty(t, token)

	claims, err := newTestTokenService().Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, stored.ID.String(), claims.UserID())
	assert.Equal(t, string(stored.Role), claims.Role())
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	users.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.NewRecordNotFound())

	user, token, err := auther.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, mentorhub.ErrNotRegistered)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	hash, err := mentorhub.HashPassword("password123")
	assert.NoError(t, err)

	stored := testUser()
	stored.PasswordHash = hash

	users.On("GetByEmail", mock.Anything, stored.Email).
		Return(stored, nil)

	user, token, err := auther.Login(context.Background(), stored.Email, "password124")
	assert.ErrorIs(t, err, mentorhub.ErrMismatchedHashAndPassword)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestLoginStoreFailure(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	users.On("GetByEmail", mock.Anything, mock.Anything).
		Return(nil, errors.New("db is down", errors.CategoryInternal))

	_, _, err := auther.Login(context.Background(), "ada@example.com", "password123")
	assert.Error(t, err)

	var richErr *errors.Error
	assert.True(t, errors.As(err, &richErr))
	assert.Equal(t, errors.CategoryInternal, richErr.Category)
}

func TestSessionFromToken(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	user := testUser()
	token, err := newTestTokenService().Generate(mentorhub.NewIdentityFromUser(user))
	assert.NoError(t, err)

	session, err := auther.SessionFromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), session.GetUserID())
	assert.Equal(t, string(user.Role), session.GetRole())

	_, err = auther.SessionFromToken("garbage")
	assert.Error(t, err)
}

func TestIdentityFromSession(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	stored := testUser()
	users.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)

	session := &mentorhub.SessionObject{
		UserID: stored.ID.String(),
		Role:   string(stored.Role),
	}

	user, err := auther.IdentityFromSession(context.Background(), session)
	assert.NoError(t, err)
	assert.Equal(t, stored.Email, user.Email)
}

func TestIdentityFromSessionEdgeCases(t *testing.T) {
	users := new(MockUsers)
	auther := mentorhub.NewAuthenticator(users, newTestTokenService())

	t.Run("nil session", func(t *testing.T) {
		_, err := auther.IdentityFromSession(context.Background(), nil)
		assert.ErrorIs(t, err, mentorhub.ErrUnauthenticated)
	})

	t.Run("malformed subject", func(t *testing.T) {
		session := &mentorhub.SessionObject{UserID: "not-a-uuid"}
		_, err := auther.IdentityFromSession(context.Background(), session)
		assert.ErrorIs(t, err, mentorhub.ErrTokenMalformed)
	})

	t.Run("deleted user", func(t *testing.T) {
		gone := testUser()
		users.On("GetByID", mock.Anything, gone.ID).
			Return(nil, repository.NewRecordNotFound())

		session := &mentorhub.SessionObject{UserID: gone.ID.String()}
		_, err := auther.IdentityFromSession(context.Background(), session)
		assert.True(t, mentorhub.IsRecordNotFound(err))
	})
}
