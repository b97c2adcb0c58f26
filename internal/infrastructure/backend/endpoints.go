package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"

	"github.com/micla/access-console/internal/application/patch"
	"github.com/micla/access-console/internal/domain/entity"
)

// ── Autenticación ─────────────────────────────────────────────────────────────

// Login POST /login con username y password en form-urlencoded.
func (c *Client) Login(ctx context.Context, username, password string) (*entity.LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/login",
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		accept:      "application/json",
	}, maxJSONBody)
	if err != nil {
		return nil, err
	}
	var out entity.LoginResult
	if err := decode(resp.body, &out); err != nil {
		return nil, fmt.Errorf("backend: deserializar login: %w", err)
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("backend: login sin access_token")
	}
	return &out, nil
}

// ── Empleados ─────────────────────────────────────────────────────────────────

// ListEmployees GET /all.
func (c *Client) ListEmployees(ctx context.Context, token string) ([]entity.Employee, error) {
	var out []entity.Employee
	if err := c.doJSON(ctx, http.MethodGet, "/all", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyInfo GET /my_info/ con el empleado dueño del token.
func (c *Client) MyInfo(ctx context.Context, token string) (*entity.Employee, error) {
	var out entity.Employee
	if err := c.doJSON(ctx, http.MethodGet, "/my_info/", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEmployee POST /create/ multipart.
func (c *Client) CreateEmployee(ctx context.Context, token string, fields []patch.FormField, files map[string]entity.Upload) (string, error) {
	return c.multipart(ctx, http.MethodPost, "/create/", token, fields, files)
}

// UpdateEmployee PATCH /update/{fiscal_code} multipart con los campos modificados.
func (c *Client) UpdateEmployee(ctx context.Context, token, fiscalCode string, p patch.EmployeePatch) (string, error) {
	fields, err := p.FormFields()
	if err != nil {
		return "", err
	}
	return c.multipart(ctx, http.MethodPatch, "/update/"+segment(fiscalCode), token, fields, p.Files)
}

// DeleteEmployee DELETE /delete/{fiscal_code}.
func (c *Client) DeleteEmployee(ctx context.Context, token, fiscalCode string) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "/delete/"+segment(fiscalCode), token, nil)
}

// DownloadDocument GET /download/{fiscal_code}/{field}.
func (c *Client) DownloadDocument(ctx context.Context, token, fiscalCode, field string) (*entity.Document, error) {
	return c.download(ctx, "/download/"+segment(fiscalCode)+"/"+segment(field), token, field)
}

// ProfileImage GET /retrieve_files/{fiscal_code}/.
func (c *Client) ProfileImage(ctx context.Context, token, fiscalCode string) (*entity.Document, error) {
	return c.download(ctx, "/retrieve_files/"+segment(fiscalCode)+"/", token, entity.DocumentProfileImage)
}

// ── Órdenes de compra ─────────────────────────────────────────────────────────

type createPurchaseOrderBody struct {
	FiscalCodes   []string             `json:"fiscal_codes"`
	PurchaseOrder entity.PurchaseOrder `json:"purchase_order"`
}

// CreatePurchaseOrder PATCH /create_purchase_order/ para todos los fiscalCodes.
func (c *Client) CreatePurchaseOrder(ctx context.Context, token string, fiscalCodes []string, po entity.PurchaseOrder) (string, error) {
	body := createPurchaseOrderBody{FiscalCodes: fiscalCodes, PurchaseOrder: normalizeOrder(po)}
	return c.mutate(ctx, http.MethodPatch, "/create_purchase_order/", token, body)
}

// AttachPurchaseOrder PATCH /insert_purchase_order/{fiscal_code}.
func (c *Client) AttachPurchaseOrder(ctx context.Context, token, fiscalCode string, po entity.PurchaseOrder) (string, error) {
	return c.mutate(ctx, http.MethodPatch, "/insert_purchase_order/"+segment(fiscalCode), token, normalizeOrder(po))
}

// UpdatePurchaseOrder PATCH /update_purchase_order/{po_number}.
func (c *Client) UpdatePurchaseOrder(ctx context.Context, token, poNumber string, p patch.PurchaseOrderPatch) (string, error) {
	return c.mutate(ctx, http.MethodPatch, "/update_purchase_order/"+segment(poNumber), token, p)
}

// DeletePurchaseOrder DELETE /{po_number}.
func (c *Client) DeletePurchaseOrder(ctx context.Context, token, poNumber string) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "/"+segment(poNumber), token, nil)
}

// ── Permisos de acceso ────────────────────────────────────────────────────────

type insertAccessPermissionBody struct {
	PONumbers        []string                `json:"po_numbers"`
	AccessPermission entity.AccessPermission `json:"access_permission"`
}

// InsertAccessPermission PATCH /insert_access_permission/{fiscal_code}.
func (c *Client) InsertAccessPermission(ctx context.Context, token, fiscalCode string, poNumbers []string, ap entity.AccessPermission) (string, error) {
	if ap.Gates == nil {
		ap.Gates = []int{}
	}
	body := insertAccessPermissionBody{PONumbers: poNumbers, AccessPermission: ap}
	return c.mutate(ctx, http.MethodPatch, "/insert_access_permission/"+segment(fiscalCode), token, body)
}

// UpdateAccessPermission PATCH /update_access_permission/{po_number}/{protocol_number}.
func (c *Client) UpdateAccessPermission(ctx context.Context, token, poNumber, protocolNumber string, p patch.AccessPermissionPatch) (string, error) {
	path := "/update_access_permission/" + segment(poNumber) + "/" + segment(protocolNumber)
	return c.mutate(ctx, http.MethodPatch, path, token, p)
}

// ── Auxiliares ────────────────────────────────────────────────────────────────

// normalizeOrder evita que las listas viajen como null.
func normalizeOrder(po entity.PurchaseOrder) entity.PurchaseOrder {
	if po.Locations == nil {
		po.Locations = []string{}
	}
	aps := make([]entity.AccessPermission, len(po.AccessPermissions))
	for i, ap := range po.AccessPermissions {
		if ap.Gates == nil {
			ap.Gates = []int{}
		}
		aps[i] = ap
	}
	po.AccessPermissions = aps
	return po
}

// multipart arma un cuerpo multipart/form-data con las partes de texto y los archivos.
// Los archivos se escriben en orden de nombre para que el cuerpo sea determinista.
func (c *Client) multipart(ctx context.Context, method, path, token string, fields []patch.FormField, files map[string]entity.Upload) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return "", fmt.Errorf("backend: campo %s: %w", f.Name, err)
		}
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		up := files[name]
		filename := up.Filename
		if filename == "" {
			filename = name
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, filename))
		ct := up.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return "", fmt.Errorf("backend: archivo %s: %w", name, err)
		}
		if _, err := part.Write(up.Data); err != nil {
			return "", fmt.Errorf("backend: archivo %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("backend: cerrar multipart: %w", err)
	}

	resp, err := c.do(ctx, request{
		method:      method,
		path:        path,
		token:       token,
		body:        buf.Bytes(),
		contentType: w.FormDataContentType(),
		accept:      "application/json",
	}, maxJSONBody)
	if err != nil {
		return "", err
	}
	var out messageResponse
	if len(bytes.TrimSpace(resp.body)) > 0 {
		if err := decode(resp.body, &out); err != nil {
			return "", fmt.Errorf("backend: deserializar respuesta %s %s: %w", method, path, err)
		}
	}
	return out.Message, nil
}

// download GET binario; el nombre sale de Content-Disposition o del campo.
func (c *Client) download(ctx context.Context, path, token, field string) (*entity.Document, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, maxFileBody)
	if err != nil {
		return nil, err
	}
	ct := resp.header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(resp.body)
	}
	return &entity.Document{
		Field:       field,
		Filename:    filenameFrom(resp.header, field),
		ContentType: strings.TrimSpace(ct),
		Data:        resp.body,
	}, nil
}
