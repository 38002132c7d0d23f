package http

import (
	"net/http"
	"strconv"

	"themis-backend/internal/usecase/dashboard"
	"themis-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

type AdminHandler struct {
	users *user.Usecase
	stats *dashboard.Usecase
}

func NewAdminHandler(users *user.Usecase, stats *dashboard.Usecase) *AdminHandler {
	return &AdminHandler{users: users, stats: stats}
}

type roleReq struct {
	RoleID uint `json:"role_id" validate:"required,role"`
}

func (h *AdminHandler) GlobalStats(c echo.Context) error {
	s, err := h.stats.Global(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) AdminStats(c echo.Context) error {
	s, err := h.stats.Admin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) OfficerStats(c echo.Context) error {
	s, err := h.stats.Officer(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) StatusChanges(c echo.Context) error {
	s, err := h.stats.StatusChanges(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) AuditLogs(c echo.Context) error {
	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return badRequest("limit must be a positive integer")
		}
		limit = min(n, maxAuditLimit)
	}
	logs, err := h.stats.AuditLogs(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *AdminHandler) Users(c echo.Context) error {
	list, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) ApprovedVisitors(c echo.Context) error {
	list, err := h.users.ApprovedVisitors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) Visitors(c echo.Context) error {
	list, err := h.users.Visitors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), who, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *AdminHandler) UpdateRole(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req roleReq
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	u, err := h.users.UpdateRole(c.Request().Context(), who, id, req.RoleID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
