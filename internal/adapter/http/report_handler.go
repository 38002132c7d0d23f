package http

import (
	"fmt"
	"net/http"

	"themis-backend/internal/usecase/report"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct{ uc *report.Usecase }

func NewReportHandler(uc *report.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

// Export streams /export/:kind/:format as a file download.
func (h *ReportHandler) Export(c echo.Context) error {
	f, err := h.uc.Export(c.Request().Context(), c.Param("kind"), c.Param("format"), report.Query{
		Status:    c.QueryParam("status"),
		Category:  c.QueryParam("category"),
		DateRange: c.QueryParam("dateRange"),
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return c.Blob(http.StatusOK, f.ContentType, f.Data)
}
