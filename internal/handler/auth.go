package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/config"
	"github.com/iliyamo/mindful/internal/logging"
	"github.com/iliyamo/mindful/internal/metrics"
	"github.com/iliyamo/mindful/internal/model"
	"github.com/iliyamo/mindful/internal/repository"
	"github.com/iliyamo/mindful/internal/utils"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// The two cases are never distinguished in the response.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthHandler serves signup and login.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

// maxPasswordBytes is bcrypt's input limit.  The validate tag counts runes,
// so multibyte passwords need a separate byte check.
const maxPasswordBytes = 72

type signupReq struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResp struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Signup creates the account, then issues a token for it.  Email uniqueness
// is left to the store: a duplicate surfaces as ErrEmailExists from Create.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if len(req.Password) > maxPasswordBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at most 72 bytes"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		metrics.RecordAuthAttempt("signup", "error")
		return serverError(c, err, "hash password")
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			metrics.RecordAuthAttempt("signup", "rejected")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already exists"})
		}
		metrics.RecordAuthAttempt("signup", "error")
		return serverError(c, err, "create user")
	}

	tok, err := utils.IssueToken(h.Cfg.JWTSecret, u.ID)
	if err != nil {
		metrics.RecordAuthAttempt("signup", "error")
		return serverError(c, err, "issue token")
	}
	metrics.RecordAuthAttempt("signup", "success")
	logging.Ctx(ctx).Info().Uint64("user_id", u.ID).Msg("user signed up")
	return c.JSON(http.StatusCreated, authResp{Token: tok, User: u})
}

// Login checks the password and issues a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.RecordAuthAttempt("login", "rejected")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid credentials"})
		}
		metrics.RecordAuthAttempt("login", "error")
		return serverError(c, err, "find user")
	}

	tok, err := utils.IssueToken(h.Cfg.JWTSecret, u.ID)
	if err != nil {
		metrics.RecordAuthAttempt("login", "error")
		return serverError(c, err, "issue token")
	}
	metrics.RecordAuthAttempt("login", "success")
	return c.JSON(http.StatusOK, authResp{Token: tok, User: u})
}

// authenticate returns the user for a matching email/password pair.  An
// unknown email still pays for one bcrypt comparison so both failure paths
// take about as long.
func (h *AuthHandler) authenticate(ctx context.Context, email, password string) (model.User, error) {
	u, err := h.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.BurnPasswordCheck(password)
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}
