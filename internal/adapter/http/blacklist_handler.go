package http

import (
	"net/http"

	"themis-backend/internal/usecase/blacklist"

	"github.com/labstack/echo/v4"
)

type BlacklistHandler struct{ uc *blacklist.Usecase }

func NewBlacklistHandler(uc *blacklist.Usecase) *BlacklistHandler { return &BlacklistHandler{uc: uc} }

type addBlacklistReq struct {
	VisitorID uint64  `json:"visitor_id" validate:"required"`
	PUCID     *uint64 `json:"pupc_id"`
	Reason    string  `json:"reason"     validate:"max=255"`
}

func (h *BlacklistHandler) Add(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req addBlacklistReq
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Add(c.Request().Context(), who, blacklist.AddInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BlacklistHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *BlacklistHandler) Remove(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Remove(c.Request().Context(), who, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "removed from blacklist"})
}
