package http

import (
	"errors"
	"fmt"
	"net/http"

	"themis-backend/internal/domain/blacklist"
	"themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/report"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visit"
	"themis-backend/internal/domain/visitor"
	"themis-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var errorStatus = []struct {
	err  error
	code int
}{
	{puc.ErrNameRequired, http.StatusBadRequest},
	{visit.ErrInvalidDecision, http.StatusBadRequest},
	{visit.ErrNoLinkedVisitor, http.StatusBadRequest},
	{visit.ErrInvalidTime, http.StatusBadRequest},
	{visit.ErrInvalidStatus, http.StatusBadRequest},
	{blacklist.ErrAlreadyBlacklisted, http.StatusBadRequest},
	{user.ErrCannotDeleteSelf, http.StatusBadRequest},
	{user.ErrInvalidRole, http.StatusBadRequest},
	{report.ErrUnsupportedFormat, http.StatusBadRequest},
	{report.ErrUnknownKind, http.StatusBadRequest},
	{report.ErrInvalidDateRange, http.StatusBadRequest},

	{auth.ErrUnauthorized, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized},

	{user.ErrForbidden, http.StatusForbidden},
	{visit.ErrVisitorBlacklisted, http.StatusForbidden},

	{puc.ErrNotFound, http.StatusNotFound},
	{visitor.ErrNotFound, http.StatusNotFound},
	{visit.ErrNotFound, http.StatusNotFound},
	{blacklist.ErrNotFound, http.StatusNotFound},
	{user.ErrUserNotFound, http.StatusNotFound},

	{user.ErrUsernameTaken, http.StatusConflict},
	{user.ErrEmailTaken, http.StatusConflict},
	{visit.ErrAlreadyDecided, http.StatusConflict},
}

// statusFor maps a domain error to its status code and client message.
func statusFor(err error) (int, string) {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return m.code, m.err.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// NewErrorHandler renders every error as ErrorResponse and logs server errors.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			code int
			resp ErrorResponse
			re   *requestError
			he   *echo.HTTPError
		)
		switch {
		case errors.As(err, &re):
			code, resp = re.code, re.resp
		case errors.As(err, &he):
			code = he.Code
			resp = ErrorResponse{Error: fmt.Sprint(he.Message)}
			if he.Internal != nil {
				err = he.Internal
			}
		default:
			var msg string
			code, msg = statusFor(err)
			resp = ErrorResponse{Error: msg}
		}
		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, resp)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
