package auth

import (
	"errors"
	"net/http"
	"strings"

	"taskdeck/internal/api"
	"taskdeck/internal/database"
	"taskdeck/internal/model"
	"taskdeck/internal/service"
	"taskdeck/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
)

// RegisterHandler creates a new account.
// @Summary     Register a new user
// @Description Create an account from email, password and name. Email must be unique.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.RegisterRequest true "Registration payload"
// @Success     201 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		_, err = createUser(c.Request().Context(), db, &model.User{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: hash,
		})
		if errors.Is(err, store.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "User already exists"})
		}
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to register user"})
		}

		return c.JSON(http.StatusCreated, api.MessageResponse{Message: "User registered successfully"})
	}
}

// LoginHandler verifies credentials and issues a bearer token.
// @Summary     Log in
// @Description Verify email and password, returning a 1-hour bearer token and the public user info.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.LoginRequest true "Login payload"
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)

		user, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if errors.Is(err, store.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "User not found"})
		}
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to look up user"})
		}

		authUser, err := authenticateUser(*user, req.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid credentials"})
		}

		token, err := issueAccessToken(*authUser, service.AccessTokenTTL)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			Token: token,
			User: api.UserInfo{
				Name:  authUser.Name,
				Email: authUser.Email,
			},
		})
	}
}
