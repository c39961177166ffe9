// Auth HTTP handlers.
//
// This file exposes the credential endpoints:
//   - POST /auth/login     (exchange credentials for a bearer token)
//   - POST /auth/register  (create an account and log it in)
//
// Request envelopes are validated explicitly before any credential check;
// violations are reported field by field in the caller's language.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-auth-backend/internal/dto"
	"github.com/tbourn/go-auth-backend/internal/http/middleware"
	"github.com/tbourn/go-auth-backend/internal/services"
)

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Validates the credentials envelope, checks the password and returns a signed bearer token.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       Accept-Language  header  string            false  "Language of validation messages (ru, en)"  example(ru)
// @Param       body             body    dto.LoginRequest  true   "Credentials"
//
// @Success     200  {object}  dto.AuthResponse
// @Failure     400  {object}  dto.ErrorResponse  "Validation failed"
// @Failure     413  {object}  dto.ErrorResponse  "Body too large"
// @Failure     401  {object}  dto.ErrorResponse  "Invalid credentials"
// @Failure     429  {object}  dto.ErrorResponse  "Too many requests"
// @Failure     500  {object}  dto.ErrorResponse  "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		middleware.ObserveLogin(middleware.LoginInvalidRequest)
		return
	}
	if fes := req.Validate(h.locale(c)); len(fes) > 0 {
		middleware.ObserveLogin(middleware.LoginInvalidRequest)
		failValidation(c, fes)
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req.UsernameOrEmail, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		middleware.ObserveLogin(middleware.LoginInvalidCredentials)
		middleware.LoggerFrom(c).Warn().Msg("login rejected")
		fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid username/email or password")
		return
	case err != nil:
		middleware.ObserveLogin(middleware.LoginError)
		internalError(c, err)
		return
	}

	middleware.ObserveLogin(middleware.LoginSuccess)
	middleware.LoggerFrom(c).Info().Str("user_id", resp.User.ID).Msg("login succeeded")
	ok(c, http.StatusOK, resp)
}

// Register godoc
// @ID          register
// @Summary     Register an account
// @Description Creates a user with a bcrypt-hashed password and returns a bearer token for it.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       Accept-Language  header  string               false  "Language of validation messages (ru, en)"  example(en)
// @Param       body             body    dto.RegisterRequest  true   "New account"
//
// @Success     201  {object}  dto.AuthResponse
// @Failure     400  {object}  dto.ErrorResponse  "Validation failed"
// @Failure     413  {object}  dto.ErrorResponse  "Body too large"
// @Failure     409  {object}  dto.ErrorResponse  "Username or email taken"
// @Failure     429  {object}  dto.ErrorResponse  "Too many requests"
// @Failure     500  {object}  dto.ErrorResponse  "Internal error"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	if fes := req.Validate(h.locale(c)); len(fes) > 0 {
		failValidation(c, fes)
		return
	}

	resp, err := h.authSvc.Register(c.Request.Context(), req)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		fail(c, http.StatusConflict, ErrCodeUsernameTaken, "username already taken")
		return
	case errors.Is(err, services.ErrEmailTaken):
		fail(c, http.StatusConflict, ErrCodeEmailTaken, "email already registered")
		return
	case err != nil:
		internalError(c, err)
		return
	}

	middleware.LoggerFrom(c).Info().Str("user_id", resp.User.ID).Msg("user registered")
	ok(c, http.StatusCreated, resp)
}
