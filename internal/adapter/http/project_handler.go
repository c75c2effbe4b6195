package http

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	projectuc "charity-fund-backend/internal/usecase/project"
)

type ProjectHandler struct{ uc *projectuc.Usecase }

func NewProjectHandler(uc *projectuc.Usecase) *ProjectHandler { return &ProjectHandler{uc: uc} }

type createProjectReq struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"required,notblank"`
	FullAmount  int64  `json:"full_amount" validate:"gt=0"`
}

type updateProjectReq struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	FullAmount  *int64  `json:"full_amount" validate:"omitempty,gt=0"`
}

func (h *ProjectHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return validationFailed(c, []FieldError{{Field: "project_id", Message: "must be a positive integer"}})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, ToFieldErrors(err))
	}
	dto, err := h.uc.Create(c.Request().Context(), projectuc.CreateInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return validationFailed(c, []FieldError{{Field: "project_id", Message: "must be a positive integer"}})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return invalidBody(c)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return validationFailed(c, []FieldError{{Field: "_", Message: "at least one field is required"}})
	}
	var req updateProjectReq
	if field, err := decodeStrict(body, &req); err != nil {
		if field != "" {
			return validationFailed(c, notAllowed(field))
		}
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, ToFieldErrors(err))
	}

	dto, err := h.uc.Update(c.Request().Context(), id, projectuc.UpdateInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return validationFailed(c, []FieldError{{Field: "project_id", Message: "must be a positive integer"}})
	}
	dto, err := h.uc.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProjectHandler) Allocate(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return validationFailed(c, []FieldError{{Field: "project_id", Message: "must be a positive integer"}})
	}
	dto, err := h.uc.Allocate(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}
