package http

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/usecase"
	"github.com/micla/access-console/internal/domain/entity"
)

// EmployeeHandler registro, perfil propio, documentos y borrado de empleados.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
	r  *responder
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, r *responder) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, r: r}
}

// Register godoc
// @Summary      Registro público de empleado
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  dto.NoticeResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/register [post]
func (h *EmployeeHandler) Register(c *fiber.Ctx) error {
	return h.register(c, usecase.ScreenRegister, "")
}

// AddUser godoc
// @Summary      Alta de empleado por el administrador
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  dto.NoticeResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/admin/employees [post]
func (h *EmployeeHandler) AddUser(c *fiber.Ctx) error {
	return h.register(c, usecase.ScreenAddUser, GetSession(c).AccessToken)
}

func (h *EmployeeHandler) register(c *fiber.Ctx, screen usecase.Screen, token string) error {
	var form dto.RegisterEmployeeForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	files, err := readUploads(c)
	if err != nil {
		return badBody(c)
	}
	return h.r.submit(c, screen, func(ctx context.Context) (string, error) {
		return h.uc.Register(ctx, token, form, files)
	})
}

// Me godoc
// @Summary      Datos propios y órdenes asignadas
// @Tags         employees
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Router       /api/me [get]
func (h *EmployeeHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.MyInfo(c.UserContext(), GetSession(c).AccessToken)
	if err != nil {
		return h.r.failRead(c, usecase.ScreenEditInfo, err)
	}
	return c.JSON(out)
}

// Form godoc
// @Summary      Formulario de edición precargado
// @Tags         employees
// @Produce      json
// @Success      200  {object}  dto.EmployeeForm
// @Router       /api/me/form [get]
func (h *EmployeeHandler) Form(c *fiber.Ctx) error {
	out, err := h.uc.Form(c.UserContext(), GetSession(c).AccessToken)
	if err != nil {
		return h.r.failRead(c, usecase.ScreenEditInfo, err)
	}
	return c.JSON(out)
}

// UpdateMe godoc
// @Summary      Editar datos propios (solo campos modificados)
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Param        dirty  formData  string  true  "campos modificados, separados por coma"
// @Success      200  {object}  dto.NoticeResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/me [patch]
func (h *EmployeeHandler) UpdateMe(c *fiber.Ctx) error {
	var form dto.EmployeeForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	files, err := readUploads(c)
	if err != nil {
		return badBody(c)
	}
	dirty := dirtyNames(c)
	sess := GetSession(c)
	return h.r.submit(c, usecase.ScreenEditInfo, func(ctx context.Context) (string, error) {
		return h.uc.Update(ctx, sess.AccessToken, sess.FiscalCode, form, dirty, files)
	})
}

// Document godoc
// @Summary      Descargar documento
// @Tags         employees
// @Produce      octet-stream
// @Param        fc     path  string  true  "código fiscal"
// @Param        field  path  string  true  "profile_image | id_card | visa | unilav"
// @Router       /api/employees/{fc}/documents/{field} [get]
func (h *EmployeeHandler) Document(c *fiber.Ctx) error {
	doc, err := h.uc.Document(c.UserContext(), GetSession(c), c.Params("fc"), c.Params("field"))
	if err != nil {
		return h.r.failRead(c, usecase.ScreenDashboard, err)
	}
	return sendDocument(c, doc, "attachment")
}

// Avatar godoc
// @Summary      Imagen de perfil
// @Tags         employees
// @Produce      image/jpeg
// @Param        fc  path  string  true  "código fiscal"
// @Router       /api/employees/{fc}/avatar [get]
func (h *EmployeeHandler) Avatar(c *fiber.Ctx) error {
	doc, err := h.uc.Avatar(c.UserContext(), GetSession(c), c.Params("fc"))
	if err != nil {
		return h.r.failRead(c, usecase.ScreenDashboard, err)
	}
	return sendDocument(c, doc, "inline")
}

// Delete godoc
// @Summary      Borrar empleado
// @Tags         employees
// @Produce      json
// @Param        fc  path  string  true  "código fiscal"
// @Success      200  {object}  dto.NoticeResponse
// @Router       /api/admin/employees/{fc} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	token, fc := GetSession(c).AccessToken, c.Params("fc")
	return h.r.submit(c, usecase.ScreenDeleteUser, func(ctx context.Context) (string, error) {
		return h.uc.Delete(ctx, token, fc)
	})
}

// readUploads lee los archivos de un cuerpo multipart, uno por campo.
// Un cuerpo que no es multipart no trae archivos.
func readUploads(c *fiber.Ctx) (map[string]entity.Upload, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := make(map[string]entity.Upload, len(mf.File))
	for name, headers := range mf.File {
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", name, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", name, err)
		}
		files[name] = entity.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Data:        data,
		}
	}
	return files, nil
}

// dirtyNames campos "dirty" del formulario: repetidos o separados por coma.
// Los documentos se omiten; viajan como archivos.
func dirtyNames(c *fiber.Ctx) []string {
	var raw []string
	if mf, err := c.MultipartForm(); err == nil {
		raw = mf.Value["dirty"]
	} else if v := c.FormValue("dirty"); v != "" {
		raw = []string{v}
	}
	var out []string
	for _, v := range raw {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" && !entity.IsDocumentField(name) {
				out = append(out, name)
			}
		}
	}
	return out
}
