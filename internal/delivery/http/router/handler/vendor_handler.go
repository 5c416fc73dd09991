package handler

import (
	"log/slog"
	"net/http"

	"purposepay/internal/delivery/http/middleware"
	"purposepay/internal/delivery/http/response"
	"purposepay/internal/domain/entity"
	"purposepay/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// VendorHandlerParams holds dependencies for VendorHandler, injected by Fx.
type VendorHandlerParams struct {
	fx.In

	VendorUC usecase.VendorUsecase
	Logger   *slog.Logger
}

// VendorHandler holds dependencies for vendor lifecycle handlers
type VendorHandler struct {
	vendorUC usecase.VendorUsecase
	logger   *slog.Logger
}

// NewVendorHandler is the constructor for VendorHandler
func NewVendorHandler(params VendorHandlerParams) *VendorHandler {
	return &VendorHandler{
		vendorUC: params.VendorUC,
		logger:   params.Logger,
	}
}

// VendorProfileRequest represents the request body for creating or updating a profile
type VendorProfileRequest struct {
	BusinessName        string `json:"business_name" validate:"required,max=255"`
	Category            string `json:"category" validate:"required,oneof=pharmacy school hardware other"`
	PayoutAccountNumber string `json:"payout_account_number" validate:"max=50"`
	PayoutBankName      string `json:"payout_bank_name" validate:"max=100"`
}

// AddDocumentRequest represents the request body for attaching a document
type AddDocumentRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Reference string `json:"reference" validate:"required,max=512"`
}

// AddLocationRequest represents the request body for attaching a location
type AddLocationRequest struct {
	Label   string `json:"label" validate:"required,max=100"`
	Address string `json:"address" validate:"required"`
}

// CreditRequest represents the request body for crediting a vendor balance
type CreditRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// CreateProfile handles opening a draft vendor profile
func (h *VendorHandler) CreateProfile(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	var req VendorProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	profile, err := h.vendorUC.CreateProfile(c.Request().Context(), identity, &usecase.CreateVendorInput{
		BusinessName:        req.BusinessName,
		Category:            entity.VendorCategory(req.Category),
		PayoutAccountNumber: req.PayoutAccountNumber,
		PayoutBankName:      req.PayoutBankName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, profile)
}

// GetOwnProfile returns the caller's profile in any state
func (h *VendorHandler) GetOwnProfile(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	profile, err := h.vendorUC.GetOwnProfile(c.Request().Context(), identity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// UpdateOwnProfile modifies the caller's profile while it is editable
func (h *VendorHandler) UpdateOwnProfile(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	var req VendorProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	profile, err := h.vendorUC.UpdateOwnProfile(c.Request().Context(), identity, &usecase.UpdateVendorInput{
		BusinessName:        req.BusinessName,
		Category:            entity.VendorCategory(req.Category),
		PayoutAccountNumber: req.PayoutAccountNumber,
		PayoutBankName:      req.PayoutBankName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// Submit moves the caller's draft profile to pending review
func (h *VendorHandler) Submit(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	profile, err := h.vendorUC.Submit(c.Request().Context(), identity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// Reopen returns the caller's rejected profile to draft
func (h *VendorHandler) Reopen(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	profile, err := h.vendorUC.Reopen(c.Request().Context(), identity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// AddDocument attaches a verification document to the caller's profile
func (h *VendorHandler) AddDocument(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	var req AddDocumentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid document input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	doc, err := h.vendorUC.AddDocument(c.Request().Context(), identity, &usecase.AddDocumentInput{
		Title:     req.Title,
		Reference: req.Reference,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, doc)
}

// RemoveDocument detaches a verification document from the caller's profile
func (h *VendorHandler) RemoveDocument(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid document ID")
	}

	if err := h.vendorUC.RemoveDocument(c.Request().Context(), identity, docID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Document removed successfully"})
}

// AddLocation attaches a business location to the caller's profile
func (h *VendorHandler) AddLocation(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	var req AddLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	loc, err := h.vendorUC.AddLocation(c.Request().Context(), identity, &usecase.AddLocationInput{
		Label:   req.Label,
		Address: req.Address,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, loc)
}

// RemoveLocation detaches a business location from the caller's profile
func (h *VendorHandler) RemoveLocation(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	locID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid location ID")
	}

	if err := h.vendorUC.RemoveLocation(c.Request().Context(), identity, locID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Location removed successfully"})
}

// ListPublic returns the customer-facing view of approved vendors
func (h *VendorHandler) ListPublic(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	vendors, err := h.vendorUC.ListPublic(c.Request().Context(), identity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, vendors)
}

// GetPublic returns the customer-facing view of one approved vendor
func (h *VendorHandler) GetPublic(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid vendor ID")
	}

	vendor, err := h.vendorUC.GetPublic(c.Request().Context(), identity, profileID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, vendor)
}

// AdminList returns full vendor profiles, optionally filtered by state
func (h *VendorHandler) AdminList(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	input := &usecase.AdminListInput{}
	if stateParam := c.QueryParam("state"); stateParam != "" {
		state := entity.VerificationState(stateParam)
		input.State = &state
	}

	profiles, err := h.vendorUC.AdminList(c.Request().Context(), identity, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profiles)
}

// AdminGet returns one full vendor profile in any state
func (h *VendorHandler) AdminGet(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid vendor ID")
	}

	profile, err := h.vendorUC.AdminGet(c.Request().Context(), identity, profileID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// AdminUpdate modifies any vendor profile's business fields
func (h *VendorHandler) AdminUpdate(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid vendor ID")
	}

	var req VendorProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	profile, err := h.vendorUC.AdminUpdate(c.Request().Context(), identity, profileID, &usecase.UpdateVendorInput{
		BusinessName:        req.BusinessName,
		Category:            entity.VendorCategory(req.Category),
		PayoutAccountNumber: req.PayoutAccountNumber,
		PayoutBankName:      req.PayoutBankName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// Approve moves a pending profile to approved
func (h *VendorHandler) Approve(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid vendor ID")
	}

	profile, err := h.vendorUC.Approve(c.Request().Context(), identity, profileID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// Reject moves a pending profile to rejected
func (h *VendorHandler) Reject(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid vendor ID")
	}

	profile, err := h.vendorUC.Reject(c.Request().Context(), identity, profileID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// Credit adds settled funds to a vendor balance
func (h *VendorHandler) Credit(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid vendor ID")
	}

	var req CreditRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid credit input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return response.BadRequest(c, "INVALID_AMOUNT", "Amount must be a decimal number")
	}

	profile, err := h.vendorUC.Credit(c.Request().Context(), identity, profileID, amount)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}
