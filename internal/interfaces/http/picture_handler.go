package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/reconciliemos/cuentas-api/internal/application/dto"
	"github.com/reconciliemos/cuentas-api/internal/application/usecase"
)

// maxPictureSize tope por imagen de perfil (5 MB).
const maxPictureSize = 5 * 1024 * 1024

// PictureHandler foto de perfil: subida y borrado propios, lectura pública.
type PictureHandler struct {
	uc *usecase.UserUseCase
}

// NewPictureHandler construye el handler de fotos de perfil.
func NewPictureHandler(uc *usecase.UserUseCase) *PictureHandler {
	return &PictureHandler{uc: uc}
}

// UploadMine godoc
// @Summary      Subir la foto de perfil propia (campo multipart "picture")
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        picture  formData  file  true  "imagen, máximo 5 MB"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/me/picture [post]
func (h *PictureHandler) UploadMine(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere un archivo de imagen en el campo 'picture'"})
	}
	if fileHeader.Size > maxPictureSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la imagen supera el límite de 5 MB"})
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de archivo no permitido, solo se aceptan imágenes"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	user, err := h.uc.AttachPicture(c.Context(), GetUserID(c), f, fileHeader.Size, contentType, fileHeader.Filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteMine godoc
// @Summary      Eliminar la foto de perfil propia
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/me/picture [delete]
func (h *PictureHandler) DeleteMine(c *fiber.Ctx) error {
	user, err := h.uc.DetachPicture(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Get godoc
// @Summary      Foto de perfil de una cuenta (binario)
// @Tags         users
// @Produce      octet-stream
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/picture [get]
func (h *PictureHandler) Get(c *fiber.Ctx) error {
	stream, contentType, err := h.uc.OpenPicture(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	// fasthttp cierra el ReadCloser al terminar de servir el body.
	return c.SendStream(stream)
}
