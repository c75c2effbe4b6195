package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	donationuc "charity-fund-backend/internal/usecase/donation"
)

type DonationHandler struct{ uc *donationuc.Usecase }

func NewDonationHandler(uc *donationuc.Usecase) *DonationHandler { return &DonationHandler{uc: uc} }

type createDonationReq struct {
	FullAmount int64  `json:"full_amount" validate:"gt=0"`
	Comment    string `json:"comment"`
}

func (h *DonationHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create records a donation for the caller in X-User-Id, or an anonymous one.
func (h *DonationHandler) Create(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return invalidBody(c)
	}
	var req createDonationReq
	if len(bytes.TrimSpace(body)) > 0 {
		if field, err := decodeStrict(body, &req); err != nil {
			if field != "" {
				return validationFailed(c, notAllowed(field))
			}
			return invalidBody(c)
		}
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, ToFieldErrors(err))
	}

	in := donationuc.CreateInput{FullAmount: req.FullAmount, Comment: req.Comment}
	if user := strings.TrimSpace(c.Request().Header.Get(headerUserID)); user != "" {
		in.UserID = &user
	}
	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DonationHandler) ListMine(c echo.Context) error {
	user := strings.TrimSpace(c.Request().Header.Get(headerUserID))
	if user == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + headerUserID})
	}
	out, err := h.uc.ListMine(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DonationHandler) Allocate(c echo.Context) error {
	id, ok := pathID(c, "donation_id")
	if !ok {
		return validationFailed(c, []FieldError{{Field: "donation_id", Message: "must be a positive integer"}})
	}
	dto, err := h.uc.Allocate(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
