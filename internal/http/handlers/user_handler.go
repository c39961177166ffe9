// User HTTP handlers.
//
// This file exposes the bearer-authenticated user endpoints:
//   - GET /users/me             (caller's profile)
//   - GET /users                (list, paginated, ETag support)
//   - PUT /users/display-names  (bulk rename from parallel arrays)
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-auth-backend/internal/dto"
	"github.com/tbourn/go-auth-backend/internal/http/middleware"
	"github.com/tbourn/go-auth-backend/internal/seqs"
	"github.com/tbourn/go-auth-backend/internal/services"
	"github.com/tbourn/go-auth-backend/internal/utils"
)

// Me godoc
// @ID          me
// @Summary     Current user
// @Description Returns the profile of the user the bearer token was issued to.
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  dto.UserDTO
// @Failure     401  {object}  dto.ErrorResponse  "Missing or invalid token"
// @Failure     404  {object}  dto.ErrorResponse  "User no longer exists"
// @Failure     500  {object}  dto.ErrorResponse  "Internal error"
// @Router      /users/me [get]
func (h *Handlers) Me(c *gin.Context) {
	uid := middleware.UserIDFrom(c)
	if uid == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	u, err := h.userSvc.Get(c.Request.Context(), uid)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	case err != nil:
		internalError(c, err)
		return
	}
	ok(c, http.StatusOK, dto.UserFromDomain(u))
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users (paginated)
// @Description Returns a page of users ordered by creation time. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
//
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"  example(W/\"users:1:20:3:1700000000\")
// @Param       page           query   int     false  "Page number"                 minimum(1) default(1)
// @Param       page_size      query   int     false  "Items per page"              minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  dto.ListUsersResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     401  {object}  dto.ErrorResponse  "Missing or invalid token"
// @Failure     500  {object}  dto.ErrorResponse  "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := utils.ClampPage(c.Query("page"), c.Query("page_size"))

	// ETag pre-check (best effort).
	if count, maxTS, err := h.userSvc.Stats(ctx); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		etag := fmt.Sprintf(`W/"users:%d:%d:%d:%d"`, page, pageSize, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.userSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		internalError(c, err)
		return
	}

	ok(c, http.StatusOK, dto.ListUsersResponse{
		Users:      dto.UsersFromDomain(items),
		Pagination: dto.NewPagination(page, pageSize, total),
	})
}

// BulkRename godoc
// @ID          bulkRenameUsers
// @Summary     Rename several users
// @Description Assigns displayNames[i] to ids[i]. Both arrays must have the same length; otherwise nothing is written and the request fails with different_length_of_arrays. Non-admin callers may only rename themselves. The update is atomic.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       Accept-Language  header  string                 false  "Language of validation messages (ru, en)"
// @Param       body             body    dto.BulkRenameRequest  true   "Parallel arrays of ids and display names"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  dto.ErrorResponse  "Validation failed or arrays of different length"
// @Failure     401  {object}  dto.ErrorResponse  "Missing or invalid token"
// @Failure     403  {object}  dto.ErrorResponse  "Caller may not rename other users"
// @Failure     404  {object}  dto.ErrorResponse  "Unknown user id"
// @Failure     413  {object}  dto.ErrorResponse  "Body too large"
// @Failure     500  {object}  dto.ErrorResponse  "Internal error"
// @Router      /users/display-names [put]
func (h *Handlers) BulkRename(c *gin.Context) {
	uid := middleware.UserIDFrom(c)
	if uid == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	var req dto.BulkRenameRequest
	if !bindJSON(c, &req) {
		return
	}
	if fes := req.Validate(h.locale(c)); len(fes) > 0 {
		failValidation(c, fes)
		return
	}

	err := h.userSvc.BulkRename(c.Request.Context(), uid, req.IDs, req.DisplayNames)
	var lenErr *seqs.DifferentLengthOfArraysError
	switch {
	case errors.As(err, &lenErr):
		fail(c, http.StatusBadRequest, ErrCodeDifferentLengthOfArrays, lenErr.Error())
		return
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "only admins may rename other users")
		return
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	case err != nil:
		internalError(c, err)
		return
	}
	noContent(c)
}
