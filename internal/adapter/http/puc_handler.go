package http

import (
	"net/http"
	"strings"

	"themis-backend/internal/usecase/provisioning"
	"themis-backend/internal/usecase/puc"

	"github.com/labstack/echo/v4"
)

type PUCHandler struct {
	uc        *puc.Usecase
	provision *provisioning.Usecase
}

func NewPUCHandler(uc *puc.Usecase, provision *provisioning.Usecase) *PUCHandler {
	return &PUCHandler{uc: uc, provision: provision}
}

type approvedVisitorReq struct {
	ApprovalID   *uint64 `json:"approval_id"`
	FirstName    string  `json:"first_name"    validate:"required_without=ApprovalID,max=50"`
	LastName     string  `json:"last_name"     validate:"required_without=ApprovalID,max=50"`
	Relationship string  `json:"relationship"  validate:"max=50"`
	Email        string  `json:"email"         validate:"omitempty,email,max=100"`
	Phone        string  `json:"phone"         validate:"max=20"`
}

type createPUCReq struct {
	FirstName        string               `json:"first_name"    validate:"required,max=50"`
	LastName         string               `json:"last_name"     validate:"required,max=50"`
	Gender           string               `json:"gender"        validate:"max=20"`
	Age              *int                 `json:"age"           validate:"omitempty,gte=0,lte=150"`
	ArrestDate       *string              `json:"arrest_date"   validate:"omitempty,datetime=2006-01-02"`
	ReleaseDate      *string              `json:"release_date"  validate:"omitempty,datetime=2006-01-02"`
	Status           string               `json:"status"        validate:"max=50"`
	CategoryID       *uint64              `json:"category_id"`
	CrimeID          *uint64              `json:"crime_id"`
	MugshotPath      string               `json:"mugshot_path"  validate:"max=255"`
	ApprovedVisitors []approvedVisitorReq `json:"approved_visitors" validate:"dive"`
}

type updatePUCReq struct {
	FirstName        *string              `json:"first_name"    validate:"omitempty,max=50"`
	LastName         *string              `json:"last_name"     validate:"omitempty,max=50"`
	Gender           *string              `json:"gender"        validate:"omitempty,max=20"`
	Age              *int                 `json:"age"           validate:"omitempty,gte=0,lte=150"`
	ArrestDate       *string              `json:"arrest_date"   validate:"omitempty,datetime=2006-01-02"`
	ReleaseDate      *string              `json:"release_date"  validate:"omitempty,datetime=2006-01-02"`
	Status           *string              `json:"status"        validate:"omitempty,max=50"`
	CategoryID       *uint64              `json:"category_id"`
	CrimeID          *uint64              `json:"crime_id"`
	MugshotPath      *string              `json:"mugshot_path"  validate:"omitempty,max=255"`
	ApprovedVisitors []approvedVisitorReq `json:"approved_visitors" validate:"dive"`
}

type provisionReq struct {
	FirstName    string `json:"first_name"    validate:"required,max=50"`
	LastName     string `json:"last_name"     validate:"required,max=50"`
	Relationship string `json:"relationship"  validate:"max=50"`
	Email        string `json:"email"         validate:"omitempty,email,max=100"`
	Phone        string `json:"phone"         validate:"max=20"`
}

func visitorInputs(in []approvedVisitorReq) []puc.VisitorInput {
	out := make([]puc.VisitorInput, 0, len(in))
	for _, v := range in {
		out = append(out, puc.VisitorInput(v))
	}
	return out
}

func (h *PUCHandler) Search(c echo.Context) error {
	list, err := h.uc.Search(c.Request().Context(), strings.TrimSpace(c.QueryParam("search")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *PUCHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *PUCHandler) Create(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req createPUCReq
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	arrest, err := parseDate("arrest_date", req.ArrestDate)
	if err != nil {
		return err
	}
	release, err := parseDate("release_date", req.ReleaseDate)
	if err != nil {
		return err
	}
	res, err := h.uc.Create(c.Request().Context(), who, puc.CreateInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Gender:           req.Gender,
		Age:              req.Age,
		ArrestDate:       arrest,
		ReleaseDate:      release,
		Status:           req.Status,
		CategoryID:       req.CategoryID,
		CrimeID:          req.CrimeID,
		MugshotPath:      req.MugshotPath,
		ApprovedVisitors: visitorInputs(req.ApprovedVisitors),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PUCHandler) Update(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req updatePUCReq
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	arrest, err := parseDate("arrest_date", req.ArrestDate)
	if err != nil {
		return err
	}
	release, err := parseDate("release_date", req.ReleaseDate)
	if err != nil {
		return err
	}
	res, err := h.uc.Update(c.Request().Context(), who, id, puc.UpdateInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Gender:           req.Gender,
		Age:              req.Age,
		ArrestDate:       arrest,
		ReleaseDate:      release,
		Status:           req.Status,
		CategoryID:       req.CategoryID,
		CrimeID:          req.CrimeID,
		MugshotPath:      req.MugshotPath,
		ApprovedVisitors: visitorInputs(req.ApprovedVisitors),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// ProvisionVisitor registers an approved visitor and returns the one-time credentials.
func (h *PUCHandler) ProvisionVisitor(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req provisionReq
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	res, err := h.provision.Provision(c.Request().Context(), provisioning.Input{
		PUCID:        id,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Relationship: req.Relationship,
		Email:        req.Email,
		Phone:        req.Phone,
		ActorID:      who.UserID,
		IP:           who.IP,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PUCHandler) Categories(c echo.Context) error {
	list, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *PUCHandler) CrimeTypes(c echo.Context) error {
	list, err := h.uc.CrimeTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
