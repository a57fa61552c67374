package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/roster/api/http/presenter"
	"github.com/artem13815/roster/pkg/member"
)

type MemberHandler struct {
	uc member.UseCase
	// Limit uploaded file size read from the request (bytes)
	maxBytes int64
}

func NewMemberHandler(uc member.UseCase, maxBytes int64) *MemberHandler {
	return &MemberHandler{uc: uc, maxBytes: maxBytes}
}

type memberResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(m member.Member) memberResponse {
	return memberResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Role:      m.Role,
		Email:     m.Email,
		Contact:   m.Contact,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// @Summary Список участников
// @Description Возвращает всех участников команды, новые первыми.
// @Tags    Участники
// @Produce json
// @Success 200 {array} handlers.memberResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	ms, err := h.uc.List(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "Database error occurred")
	}
	res := make([]memberResponse, 0, len(ms))
	for _, m := range ms {
		res = append(res, toResponse(m))
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary Получить участника по ID
// @Tags    Участники
// @Produce json
// @Param   id path string true "ID участника (UUID)"
// @Success 200 {object} handlers.memberResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /members/{id} [get]
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Member not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "Database error occurred")
	}
	return presenter.JSON(c, http.StatusOK, toResponse(m))
}

// @Summary Создать участника
// @Description Принимает multipart-форму с текстовыми полями и фото профиля.
// @Tags    Участники
// @Accept  multipart/form-data
// @Produce json
// @Param   name formData string true "Имя"
// @Param   role formData string true "Роль в команде"
// @Param   email formData string true "Email (уникальный)"
// @Param   contact formData string true "Контактный телефон"
// @Param   image formData file true "Фото профиля"
// @Success 201 {object} handlers.memberResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	in := member.CreateInput{
		Name:    c.FormValue("name"),
		Role:    c.FormValue("role"),
		Email:   c.FormValue("email"),
		Contact: c.FormValue("contact"),
	}

	var upload *member.ImageUpload
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		if fh.Size > h.maxBytes {
			return presenter.Error(c, http.StatusBadRequest, "Image is too large")
		}
		f, err := fh.Open()
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "Failed to open uploaded file")
		}
		defer f.Close()
		upload = &member.ImageUpload{Filename: fh.Filename, Size: fh.Size, Reader: f}
	}

	m, err := h.uc.Create(c.Context(), in, upload)
	if err != nil {
		return createError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, toResponse(m))
}

// createError maps every pipeline outcome to its status and envelope.
func createError(c *fiber.Ctx, err error) error {
	var missing *member.MissingFieldsError
	var invalid *member.ValidationError
	switch {
	case errors.Is(err, member.ErrStoreUnavailable):
		return presenter.Error(c, http.StatusInternalServerError, "Database connection error")
	case errors.Is(err, member.ErrMissingImage):
		return presenter.Error(c, http.StatusBadRequest, "Profile image is required")
	case errors.As(err, &missing):
		return presenter.Error(c, http.StatusBadRequest,
			"Missing required fields: "+strings.Join(missing.Fields, ", "))
	case errors.As(err, &invalid):
		return presenter.Validation(c, http.StatusBadRequest, "Validation Error", invalid.Messages)
	case errors.Is(err, member.ErrDuplicateEmail):
		return presenter.Error(c, http.StatusBadRequest, "A member with this email already exists")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "Database error occurred")
	}
}
