package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/accountweb/accountweb/internal/model"
	"github.com/accountweb/accountweb/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Store
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.service = New(s.storage, s.storage, NewPasswordHasher(bcrypt.MinCost), logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) register(id, name, password string) *model.User {
	resp, err := s.service.Register(s.ctx, RegisterRequest{ID: id, Name: name, Password: password})
	s.Require().NoError(err)
	return resp.User
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	user := s.register("ari", "Ari", "rahasia")

	s.Equal(model.UserID("ari"), user.ID)
	s.Equal("Ari", user.Name)
	s.NotEmpty(user.PasswordHash)
	s.NotEqual("rahasia", user.PasswordHash) // Should be hashed
}

func (s *ServiceSuite) TestRegisterPersistsUser() {
	s.register("ari", "Ari", "rahasia")

	user, err := s.storage.FindUserByID(s.ctx, "ari")
	s.Require().NoError(err)
	s.Equal("Ari", user.Name)
}

func (s *ServiceSuite) TestRegisterFailsWhenFieldsBlank() {
	cases := []RegisterRequest{
		{ID: "", Name: "Ari", Password: "rahasia"},
		{ID: "ari", Name: "", Password: "rahasia"},
		{ID: "ari", Name: "Ari", Password: ""},
		{ID: "   ", Name: "Ari", Password: "rahasia"},
	}

	for _, req := range cases {
		_, err := s.service.Register(s.ctx, req)
		verr, ok := model.AsValidationError(err)
		s.Require().True(ok)
		s.Equal("Id, Name, Password can not blank", verr.Message)
	}
}

func (s *ServiceSuite) TestRegisterFailsWhenIDExists() {
	s.register("ari", "Ari", "rahasia")

	_, err := s.service.Register(s.ctx, RegisterRequest{ID: "ari", Name: "Ari Lagi", Password: "lain"})
	verr, ok := model.AsValidationError(err)
	s.Require().True(ok)
	s.Equal("User id already exist", verr.Message)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	s.register("ari", "Ari", "rahasia")

	resp, err := s.service.Login(s.ctx, LoginRequest{ID: "ari", Password: "rahasia"})
	s.Require().NoError(err)
	s.Equal(model.UserID("ari"), resp.User.ID)
	s.Equal("Ari", resp.User.Name)
}

func (s *ServiceSuite) TestLoginFailsWhenFieldsBlank() {
	_, err := s.service.Login(s.ctx, LoginRequest{ID: "ari", Password: ""})
	verr, ok := model.AsValidationError(err)
	s.Require().True(ok)
	s.Equal("Id, Password can not blank", verr.Message)
}

func (s *ServiceSuite) TestLoginWrongPasswordAndUnknownIDAreIndistinguishable() {
	s.register("ari", "Ari", "rahasia")

	_, errWrongPassword := s.service.Login(s.ctx, LoginRequest{ID: "ari", Password: "salah"})
	_, errUnknownID := s.service.Login(s.ctx, LoginRequest{ID: "tidak-ada", Password: "rahasia"})

	verr1, ok := model.AsValidationError(errWrongPassword)
	s.Require().True(ok)
	verr2, ok := model.AsValidationError(errUnknownID)
	s.Require().True(ok)

	s.Equal("Id or password is wrong", verr1.Message)
	s.Equal(verr1.Message, verr2.Message)
}

// UpdateProfile tests

func (s *ServiceSuite) TestUpdateProfileSucceeds() {
	s.register("ari", "Ari", "rahasia")

	resp, err := s.service.UpdateProfile(s.ctx, ProfileUpdateRequest{ID: "ari", Name: "Ari Baru"})
	s.Require().NoError(err)
	s.Equal("Ari Baru", resp.User.Name)

	user, err := s.storage.FindUserByID(s.ctx, "ari")
	s.Require().NoError(err)
	s.Equal("Ari Baru", user.Name)
}

func (s *ServiceSuite) TestUpdateProfileKeepsPassword() {
	s.register("ari", "Ari", "rahasia")

	_, err := s.service.UpdateProfile(s.ctx, ProfileUpdateRequest{ID: "ari", Name: "Ari Baru"})
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, LoginRequest{ID: "ari", Password: "rahasia"})
	s.NoError(err)
}

func (s *ServiceSuite) TestUpdateProfileFailsWhenNameBlank() {
	s.register("ari", "Ari", "rahasia")

	_, err := s.service.UpdateProfile(s.ctx, ProfileUpdateRequest{ID: "ari", Name: ""})
	verr, ok := model.AsValidationError(err)
	s.Require().True(ok)
	s.Equal("Id, Name can not blank", verr.Message)
}

func (s *ServiceSuite) TestUpdateProfileFailsWhenUserMissing() {
	_, err := s.service.UpdateProfile(s.ctx, ProfileUpdateRequest{ID: "tidak-ada", Name: "Siapa"})
	verr, ok := model.AsValidationError(err)
	s.Require().True(ok)
	s.Equal("User not found", verr.Message)
}

// UpdatePassword tests

func (s *ServiceSuite) TestUpdatePasswordSucceeds() {
	s.register("ari", "Ari", "rahasia")

	_, err := s.service.UpdatePassword(s.ctx, PasswordUpdateRequest{
		ID:          "ari",
		OldPassword: "rahasia",
		NewPassword: "rahasia-baru",
	})
	s.Require().NoError(err)

	// Old password no longer works, new one does
	_, err = s.service.Login(s.ctx, LoginRequest{ID: "ari", Password: "rahasia"})
	s.Error(err)
	_, err = s.service.Login(s.ctx, LoginRequest{ID: "ari", Password: "rahasia-baru"})
	s.NoError(err)
}

func (s *ServiceSuite) TestUpdatePasswordFailsWhenFieldsBlank() {
	s.register("ari", "Ari", "rahasia")

	_, err := s.service.UpdatePassword(s.ctx, PasswordUpdateRequest{ID: "ari", OldPassword: "", NewPassword: "baru"})
	verr, ok := model.AsValidationError(err)
	s.Require().True(ok)
	s.Equal("Id, Old password,New Password can not blank", verr.Message)
}

func (s *ServiceSuite) TestUpdatePasswordFailsWhenOldPasswordWrong() {
	s.register("ari", "Ari", "rahasia")

	_, err := s.service.UpdatePassword(s.ctx, PasswordUpdateRequest{
		ID:          "ari",
		OldPassword: "salah",
		NewPassword: "rahasia-baru",
	})
	verr, ok := model.AsValidationError(err)
	s.Require().True(ok)
	s.Equal("Old password is wrong", verr.Message)

	// Password unchanged
	_, err = s.service.Login(s.ctx, LoginRequest{ID: "ari", Password: "rahasia"})
	s.NoError(err)
}

func (s *ServiceSuite) TestUpdatePasswordFailsWhenUserMissing() {
	_, err := s.service.UpdatePassword(s.ctx, PasswordUpdateRequest{
		ID:          "tidak-ada",
		OldPassword: "a",
		NewPassword: "b",
	})
	verr, ok := model.AsValidationError(err)
	s.Require().True(ok)
	s.Equal("User not found", verr.Message)
}

// Session tests

func (s *ServiceSuite) TestCreateSessionIssuesUniqueTokens() {
	s.register("ari", "Ari", "rahasia")

	first, err := s.service.CreateSession(s.ctx, "ari")
	s.Require().NoError(err)
	second, err := s.service.CreateSession(s.ctx, "ari")
	s.Require().NoError(err)

	s.NotEmpty(first.ID)
	s.NotEqual(first.ID, second.ID)
}

func (s *ServiceSuite) TestSessionUserResolvesUser() {
	s.register("ari", "Ari", "rahasia")
	session, err := s.service.CreateSession(s.ctx, "ari")
	s.Require().NoError(err)

	user, err := s.service.SessionUser(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.UserID("ari"), user.ID)
}

func (s *ServiceSuite) TestSessionUserFailsForUnknownSession() {
	_, err := s.service.SessionUser(s.ctx, "sess_unknown")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ServiceSuite) TestDestroySessionInvalidatesToken() {
	s.register("ari", "Ari", "rahasia")
	session, err := s.service.CreateSession(s.ctx, "ari")
	s.Require().NoError(err)

	s.Require().NoError(s.service.DestroySession(s.ctx, session.ID))

	_, err = s.service.SessionUser(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ServiceSuite) TestDestroySessionIsIdempotent() {
	s.NoError(s.service.DestroySession(s.ctx, "sess_unknown"))
}
