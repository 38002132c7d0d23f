package http

import (
	"errors"
	"net/http"

	"themis-backend/internal/domain/user"
	"themis-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type signupReq struct {
	Username     string `json:"username"      validate:"required,min=3,max=50"`
	Password     string `json:"password"      validate:"required,min=6,max=72"`
	Email        string `json:"email"         validate:"omitempty,email,max=100"`
	FullName     string `json:"full_name"     validate:"max=100"`
	FirstName    string `json:"first_name"    validate:"max=50"`
	LastName     string `json:"last_name"     validate:"max=50"`
	Relationship string `json:"relationship"  validate:"max=50"`
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Signup(c.Request().Context(), auth.SignupInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	s, err := h.uc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, user.ErrUserNotFound) {
		return auth.ErrInvalidCredentials
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AuthHandler) Profile(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	p, err := h.uc.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
