// Package backend adaptador HTTP hacia la API REST del sistema de registro de accesos.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa todos los puertos del backend.
var _ ports.Backend = (*Client)(nil)

const (
	// maxJSONBody límite de lectura de respuestas JSON.
	maxJSONBody = 4 << 20
	// maxFileBody límite de lectura de documentos descargados.
	maxFileBody = 32 << 20

	defaultTimeout = 30 * time.Second
)

// Client cliente del backend. Es seguro para uso concurrente.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el adaptador. timeout <= 0 usa 30 s.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("backend"),
	}
}

// ── Cuerpos del protocolo ─────────────────────────────────────────────────────

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// validationItem elemento de un detail en forma de lista (errores de validación del backend).
type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// ── Petición genérica ─────────────────────────────────────────────────────────

// request petición ya serializada.
type request struct {
	method      string
	path        string
	token       string
	body        []byte
	contentType string
	accept      string
}

// response respuesta 2xx leída completa.
type response struct {
	status int
	header http.Header
	body   []byte
}

// do ejecuta la petición. Las respuestas no-2xx se devuelven como *domain.APIError.
func (c *Client) do(ctx context.Context, r request, limit int64) (*response, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.accept != "" {
		req.Header.Set("Accept", r.accept)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("backend: llamada HTTP fallida: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	// Un byte más que el límite distingue "justo en el límite" de "truncado".
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("backend: leer respuesta: %w", err)
	}
	if int64(len(raw)) > limit {
		c.log.Warn().Str("method", r.method).Str("path", r.path).Int64("limit", limit).Msg("respuesta del backend excede el límite")
		return nil, fmt.Errorf("backend: %s %s: %w (límite %d bytes)", r.method, r.path, domain.ErrTooLarge, limit)
	}
	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.APIError{Status: resp.StatusCode, Detail: parseDetail(raw)}
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: raw}, nil
}

// doJSON envía in como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	r := request{method: method, path: path, token: token, accept: "application/json"}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		r.body = b
		r.contentType = "application/json"
	}
	resp, err := c.do(ctx, r, maxJSONBody)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("backend: deserializar respuesta %s %s: %w", method, path, err)
	}
	return nil
}

// mutate petición de escritura; devuelve el "message" de la respuesta.
func (c *Client) mutate(ctx context.Context, method, path, token string, in any) (string, error) {
	var out messageResponse
	if err := c.doJSON(ctx, method, path, token, in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// parseDetail extrae el "detail" de un cuerpo de error. Acepta un string o una
// lista de errores de validación, cuyos mensajes se unen con "; ".
func parseDetail(raw []byte) string {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err != nil || len(er.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(er.Detail, &s); err == nil {
		return s
	}
	var items []validationItem
	if err := json.Unmarshal(er.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg == "" {
				continue
			}
			if field := lastLoc(it.Loc); field != "" {
				msgs = append(msgs, field+": "+it.Msg)
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok && s != "body" {
		return s
	}
	return ""
}

// segment escapa un segmento de ruta.
func segment(s string) string { return url.PathEscape(s) }

// filenameFrom nombre del archivo según Content-Disposition; fallback si no viene.
func filenameFrom(h http.Header, fallback string) string {
	if cd := h.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return name
			}
		}
	}
	return fallback
}

func decode(raw []byte, out any) error { return json.Unmarshal(raw, out) }
