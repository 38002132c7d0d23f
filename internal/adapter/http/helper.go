package http

import (
	"net/http"
	"strconv"
	"time"

	mw "themis-backend/internal/adapter/middleware"
	"themis-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// requestError is a client error whose payload is already decided.
type requestError struct {
	code int
	resp ErrorResponse
}

func (e *requestError) Error() string { return e.resp.Error }

func badRequest(msg string) error {
	return &requestError{code: http.StatusBadRequest, resp: ErrorResponse{Error: msg}}
}

// bindRequest binds the JSON body into req and validates it.
func bindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid body")
	}
	if err := c.Validate(req); err != nil {
		return &requestError{code: http.StatusUnprocessableEntity, resp: ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		}}
	}
	return nil
}

func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid " + name)
	}
	return id, nil
}

// parseDate reads an optional YYYY-MM-DD value as UTC midnight.
func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, *s, time.UTC)
	if err != nil {
		return nil, badRequest(field + " must be YYYY-MM-DD")
	}
	return &t, nil
}

// actor is the authenticated caller; routes behind Auth always have one.
func actor(c echo.Context) (user.Identity, error) {
	id, ok := mw.IdentityFrom(c)
	if !ok {
		return user.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token is missing")
	}
	return id, nil
}
