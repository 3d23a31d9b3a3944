package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainLoan "loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Title             string          `json:"title"             validate:"required,max=200"`
	Description       string          `json:"description"       validate:"max=5000"`
	Category          string          `json:"category"          validate:"max=100"`
	InterestRate      decimal.Decimal `json:"interestRate"      validate:"dgte=0,dlte=100,dec2"`
	MaxLoanLimit      decimal.Decimal `json:"maxLoanLimit"      validate:"dgt=0,dec2"`
	RequiredDocuments []string        `json:"requiredDocuments" validate:"max=20"`
	EMIPlans          []string        `json:"emiPlans"          validate:"max=20"`
	Images            []string        `json:"images"            validate:"max=10,dive,url"`
	ShowOnHome        bool            `json:"showOnHome"`
}

type updateLoanReq struct {
	Title             *string          `json:"title"             validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"       validate:"omitempty,max=5000"`
	Category          *string          `json:"category"          validate:"omitempty,max=100"`
	InterestRate      *decimal.Decimal `json:"interestRate"      validate:"omitnil,dgte=0,dlte=100,dec2"`
	MaxLoanLimit      *decimal.Decimal `json:"maxLoanLimit"      validate:"omitnil,dgt=0,dec2"`
	RequiredDocuments *[]string        `json:"requiredDocuments" validate:"omitempty,max=20"`
	EMIPlans          *[]string        `json:"emiPlans"          validate:"omitempty,max=20"`
	Images            *[]string        `json:"images"            validate:"omitempty,max=10,dive,url"`
	ShowOnHome        *bool            `json:"showOnHome"`
}

func (r updateLoanReq) patch() domainLoan.Patch {
	return domainLoan.Patch{
		Title:             r.Title,
		Description:       r.Description,
		Category:          r.Category,
		RequiredDocuments: r.RequiredDocuments,
		EMIPlans:          r.EMIPlans,
		Images:            r.Images,
		ShowOnHome:        r.ShowOnHome,
		InterestRate:      r.InterestRate,
		MaxLoanLimit:      r.MaxLoanLimit,
	}
}

// List godoc
// @Summary  Every loan in the catalog
// @Tags     loans
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	loans, err := h.uc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"loans": loans})
}

// Home godoc
// @Summary  Loans featured on the home page
// @Tags     loans
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/loans/home [get]
func (h *LoanHandler) Home(c echo.Context) error {
	loans, err := h.uc.Home(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"loans": loans})
}

// Get godoc
// @Summary  One loan
// @Tags     loans
// @Produce  json
// @Param    id path string true "loan id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /api/loans/{id} [get]
func (h *LoanHandler) Get(c echo.Context) error {
	loanID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"loan": dto})
}

// Mine godoc
// @Summary  Loans owned by the calling manager
// @Tags     manager
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/manager/loans [get]
func (h *LoanHandler) Mine(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	loans, err := h.uc.Mine(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"loans": loans})
}

// Create godoc
// @Summary  Add a loan product
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    body body createLoanReq true "loan"
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Router   /api/loans [post]
func (h *LoanHandler) Create(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req createLoanReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), who, loan.CreateLoanInput{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		InterestRate:      req.InterestRate,
		MaxLoanLimit:      req.MaxLoanLimit,
		RequiredDocuments: req.RequiredDocuments,
		EMIPlans:          req.EMIPlans,
		Images:            req.Images,
		ShowOnHome:        req.ShowOnHome,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Loan created successfully", echo.Map{"loan": dto})
}

// Update godoc
// @Summary  Edit a loan you own
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    id   path string        true "loan id"
// @Param    body body updateLoanReq true "changed fields"
// @Success  200 {object} map[string]any
// @Failure  403 {object} map[string]any
// @Router   /api/loans/{id} [put]
func (h *LoanHandler) Update(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	loanID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateLoanReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), who, loanID, req.patch())
	if err != nil {
		return forbiddenAs(err, "You can only update your own loans")
	}
	return success(c, http.StatusOK, "Loan updated successfully", echo.Map{"loan": dto})
}

// Delete godoc
// @Summary  Remove a loan you own
// @Tags     loans
// @Produce  json
// @Param    id path string true "loan id"
// @Success  200 {object} map[string]any
// @Failure  403 {object} map[string]any
// @Router   /api/loans/{id} [delete]
func (h *LoanHandler) Delete(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	loanID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), who, loanID); err != nil {
		return forbiddenAs(err, "You can only delete your own loans")
	}
	return success(c, http.StatusOK, "Loan deleted successfully", nil)
}

// ToggleHome godoc
// @Summary  Show or hide a loan on the home page
// @Tags     admin
// @Produce  json
// @Param    id path string true "loan id"
// @Success  200 {object} map[string]any
// @Router   /api/loans/{id}/toggle-home [patch]
func (h *LoanHandler) ToggleHome(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	loanID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.ToggleHome(c.Request().Context(), who, loanID)
	if err != nil {
		return err
	}
	msg := "Loan hidden from homepage"
	if dto.ShowOnHome {
		msg = "Loan shown on homepage"
	}
	return success(c, http.StatusOK, msg, echo.Map{"loan": dto})
}
