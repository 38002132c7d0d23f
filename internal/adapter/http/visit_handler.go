package http

import (
	"net/http"
	"time"

	domain "themis-backend/internal/domain/visit"
	"themis-backend/internal/usecase/visit"

	"github.com/labstack/echo/v4"
)

type VisitHandler struct{ uc *visit.Usecase }

func NewVisitHandler(uc *visit.Usecase) *VisitHandler { return &VisitHandler{uc: uc} }

type submitVisitReq struct {
	PUCID     uint64  `json:"pupc_id"     validate:"required"`
	VisitorID *uint64 `json:"visitor_id"`
	VisitDate string  `json:"visit_date"  validate:"required,datetime=2006-01-02"`
	VisitTime string  `json:"visit_time"  validate:"required,hhmm"`
	Purpose   string  `json:"purpose"     validate:"required,max=255"`
	PhotoPath string  `json:"photo_path"  validate:"max=255"`
}

func (h *VisitHandler) Submit(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req submitVisitReq
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	day, err := time.ParseInLocation(dateLayout, req.VisitDate, time.UTC)
	if err != nil {
		return badRequest("visit_date must be YYYY-MM-DD")
	}
	dto, err := h.uc.Submit(c.Request().Context(), who, visit.SubmitInput{
		PUCID:     req.PUCID,
		VisitorID: req.VisitorID,
		VisitDate: day,
		VisitTime: req.VisitTime,
		Purpose:   req.Purpose,
		PhotoPath: req.PhotoPath,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto)
}

// List shows visitors their own requests and staff every request.
func (h *VisitHandler) List(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	list, err := h.uc.List(c.Request().Context(), who, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *VisitHandler) Mine(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	list, err := h.uc.ListMine(c.Request().Context(), who, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *VisitHandler) Pending(c echo.Context) error {
	list, err := h.uc.Pending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *VisitHandler) Approve(c echo.Context) error { return h.decide(c, domain.StatusApproved) }
func (h *VisitHandler) Reject(c echo.Context) error  { return h.decide(c, domain.StatusRejected) }

func (h *VisitHandler) decide(c echo.Context, decision domain.Status) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Decide(c.Request().Context(), who, id, decision)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}
