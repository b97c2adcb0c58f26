package backend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micla/access-console/internal/application/patch"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
	"github.com/micla/access-console/internal/infrastructure/backend"
)

// captured petición recibida por el servidor de prueba.
type captured struct {
	method string
	path   string
	auth   string
	ctype  string
	body   []byte
}

func newServer(t *testing.T, status int, reply string, got *captured) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if got != nil {
			*got = captured{
				method: r.Method,
				path:   r.URL.EscapedPath(),
				auth:   r.Header.Get("Authorization"),
				ctype:  r.Header.Get("Content-Type"),
				body:   body,
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL+"/", 2*time.Second, nil)
}

func decodeBody(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

// ─────────────────────────────────────────────────────────────────────────────
// Autenticación
// ─────────────────────────────────────────────────────────────────────────────

func TestLogin_FormularioYClaims(t *testing.T) {
	var got captured
	c := newServer(t, 200, `{"access_token":"abc","token_type":"bearer","us":"mrossi","ut":"admin","fs":"RSSMRA80A01H501U"}`, &got)

	res, err := c.Login(context.Background(), "mrossi", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.AccessToken)
	assert.Equal(t, "admin", res.UserType)
	assert.Equal(t, "RSSMRA80A01H501U", res.FiscalCode)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/login", got.path)
	assert.Equal(t, "application/x-www-form-urlencoded", got.ctype)
	assert.Equal(t, "password=secret&username=mrossi", string(got.body))
	assert.Empty(t, got.auth)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	c := newServer(t, 401, `{"detail":"Incorrect username or password"}`, nil)

	_, err := c.Login(context.Background(), "x", "y")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Incorrect username or password", apiErr.Detail)
}

// ─────────────────────────────────────────────────────────────────────────────
// Permisos de acceso
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateAccessPermission_SoloCamposModificados(t *testing.T) {
	var got captured
	c := newServer(t, 200, `{"message":"Access permission updated"}`, &got)

	msg, err := c.UpdateAccessPermission(context.Background(), "tok", "PO1", "AP1",
		patch.AccessPermissionPatch{Status: ptr("Active")})
	require.NoError(t, err)
	assert.Equal(t, "Access permission updated", msg)

	assert.Equal(t, http.MethodPatch, got.method)
	assert.Equal(t, "/update_access_permission/PO1/AP1", got.path)
	assert.Equal(t, "Bearer tok", got.auth)
	assert.JSONEq(t, `{"status":"Active"}`, string(got.body))
}

func TestInsertAccessPermission_Cuerpo(t *testing.T) {
	var got captured
	c := newServer(t, 200, `{"message":"ok"}`, &got)

	_, err := c.InsertAccessPermission(context.Background(), "tok", "RSSMRA80A01H501U", []string{"PO1", "PO2"},
		entity.AccessPermission{ProtocolNumber: "AP9", Plant: "Torino", Status: "Requested", ValidityEndDate: entity.NewDate(2030, 1, 2)})
	require.NoError(t, err)

	assert.Equal(t, "/insert_access_permission/RSSMRA80A01H501U", got.path)
	body := decodeBody(t, got.body)
	assert.Equal(t, []any{"PO1", "PO2"}, body["po_numbers"])
	ap := body["access_permission"].(map[string]any)
	assert.Equal(t, "2030-01-02", ap["validity_end_date"])
	assert.Equal(t, []any{}, ap["gates"])
}

// ─────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ─────────────────────────────────────────────────────────────────────────────

func TestCreatePurchaseOrder_CuerpoAnidado(t *testing.T) {
	var got captured
	c := newServer(t, 200, `{"message":"2 Purchase Order(s) inserted successfully."}`, &got)

	po := entity.PurchaseOrder{PONumber: "PO1", ValidityEndDate: entity.NewDate(2030, 6, 1)}
	msg, err := c.CreatePurchaseOrder(context.Background(), "tok", []string{"A", "B"}, po)
	require.NoError(t, err)
	assert.Equal(t, "2 Purchase Order(s) inserted successfully.", msg)

	assert.Equal(t, "/create_purchase_order/", got.path)
	body := decodeBody(t, got.body)
	assert.Equal(t, []any{"A", "B"}, body["fiscal_codes"])
	order := body["purchase_order"].(map[string]any)
	assert.Equal(t, "PO1", order["po_number"])
	assert.Equal(t, []any{}, order["access_permission"])
	assert.Equal(t, []any{}, order["locations"])
	assert.Nil(t, order["issue_date"])
}

func TestDeletePurchaseOrder_Ruta(t *testing.T) {
	var got captured
	c := newServer(t, 200, `{"message":"deleted"}`, &got)

	_, err := c.DeletePurchaseOrder(context.Background(), "tok", "PO 1/A")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/PO%201%2FA", got.path)
}

func TestUpdatePurchaseOrder_DetailEnLista(t *testing.T) {
	c := newServer(t, 422, `{"detail":[{"loc":["body","validity_end_date"],"msg":"invalid date","type":"value_error"}]}`, nil)

	_, err := c.UpdatePurchaseOrder(context.Background(), "tok", "PO1", patch.PurchaseOrderPatch{Description: ptr("x")})
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "validity_end_date: invalid date", apiErr.Detail)
}

// ─────────────────────────────────────────────────────────────────────────────
// Empleados
// ─────────────────────────────────────────────────────────────────────────────

func TestListEmployees(t *testing.T) {
	var got captured
	c := newServer(t, 200, `[{"first_name":"Mario","fiscal_code":"A","purchase_order":[{"po_number":"PO1","access_permission":[]}]}]`, &got)

	list, err := c.ListEmployees(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mario", list[0].FirstName)
	require.Len(t, list[0].PurchaseOrders, 1)
	assert.Equal(t, "/all", got.path)
}

func TestUpdateEmployee_Multipart(t *testing.T) {
	var form map[string][]string
	var files map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		form = r.MultipartForm.Value
		files = map[string]string{}
		for name, fh := range r.MultipartForm.File {
			files[name] = fh[0].Filename
		}
		assert.Equal(t, "/update/RSSMRA80A01H501U", r.URL.Path)
		_, _ = io.WriteString(w, `{"message":"User updated"}`)
	}))
	defer srv.Close()
	c := backend.NewClient(srv.URL, time.Second, nil)

	p := patch.EmployeePatch{
		FirstName:       ptr("Mario"),
		UserCredentials: &entity.UserCredentials{Email: "mario@micla.it"},
		Files:           map[string]entity.Upload{"visa": {Filename: "visa.pdf", Data: []byte("%PDF")}},
	}
	msg, err := c.UpdateEmployee(context.Background(), "tok", "RSSMRA80A01H501U", p)
	require.NoError(t, err)
	assert.Equal(t, "User updated", msg)

	assert.Equal(t, []string{"Mario"}, form["first_name"])
	assert.JSONEq(t, `{"email":"mario@micla.it"}`, form["user_credentials"][0])
	assert.Equal(t, map[string]string{"visa": "visa.pdf"}, files)
}

func TestDownloadDocument_NombreDeContentDisposition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download/A/id_card", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="id_card.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()
	c := backend.NewClient(srv.URL, time.Second, nil)

	doc, err := c.DownloadDocument(context.Background(), "tok", "A", "id_card")
	require.NoError(t, err)
	assert.Equal(t, "id_card.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), doc.Data)
}

func TestProfileImage_NoEncontrada(t *testing.T) {
	c := newServer(t, 404, `{"detail":"File not found"}`, nil)

	_, err := c.ProfileImage(context.Background(), "tok", "A")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestErrorSinDetail(t *testing.T) {
	c := newServer(t, 500, `Internal Server Error`, nil)

	_, err := c.DeleteEmployee(context.Background(), "tok", "A")
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Empty(t, apiErr.Detail)
}

func TestContextoCancelado(t *testing.T) {
	c := newServer(t, 200, `{}`, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.MyInfo(ctx, "tok")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackendCaido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := backend.NewClient(url, time.Second, nil)

	_, err := c.ListEmployees(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDownloadDocument_SobreElLimite(t *testing.T) {
	big := bytes.Repeat([]byte{'x'}, 32<<20+1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(big)
	}))
	t.Cleanup(srv.Close)
	c := backend.NewClient(srv.URL, 10*time.Second, nil)

	doc, err := c.DownloadDocument(context.Background(), "tok", "A", "id_card")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrTooLarge)
}

func TestDownloadDocument_JustoEnElLimite(t *testing.T) {
	exact := bytes.Repeat([]byte{'x'}, 32<<20)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(exact)
	}))
	t.Cleanup(srv.Close)
	c := backend.NewClient(srv.URL, 10*time.Second, nil)

	doc, err := c.DownloadDocument(context.Background(), "tok", "A", "id_card")
	require.NoError(t, err)
	assert.Len(t, doc.Data, 32<<20)
}

func TestListEmployees_JSONSobreElLimite(t *testing.T) {
	body := `[{"first_name":"` + strings.Repeat("a", 4<<20) + `"}]`
	c := newServer(t, 200, body, nil)

	_, err := c.ListEmployees(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrTooLarge)
}

func ptr[T any](v T) *T { return &v }
