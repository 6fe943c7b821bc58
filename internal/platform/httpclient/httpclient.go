package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout cubre llamadas normales de CRUD.
	// El backend en Render puede tener cold starts largos, de ahí los 30s.
	DefaultTimeout = 30 * time.Second

	// SlowTimeout cubre generación de archivos (PDF / email de relatórios),
	// que es pesada del lado del backend.
	SlowTimeout = 120 * time.Second
)

// Client envuelve *http.Client con helpers comunes para los adapters del
// cliente FisiMaster. Mantiene dos clients internos: uno con timeout normal
// y otro con timeout largo para endpoints de generación de archivos.
type Client struct {
	std     *http.Client
	slow    *http.Client
	baseURL string
}

// Options de construcción. Cualquier campo en cero usa el default.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	SlowTimeout time.Duration
	Transport   http.RoundTripper // inyectable para tests
}

func New(opts Options) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		return nil, errors.New("httpclient: base url required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("httpclient: invalid base url: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	slow := opts.SlowTimeout
	if slow <= 0 {
		slow = SlowTimeout
	}

	tr := opts.Transport
	if tr == nil {
		tr = http.DefaultTransport
	}

	return &Client{
		std:     &http.Client{Timeout: timeout, Transport: tr},
		slow:    &http.Client{Timeout: slow, Transport: tr},
		baseURL: strings.TrimRight(base, "/"),
	}, nil
}

// HTTPError representa una respuesta no-2xx, con el body crudo para que
// capas superiores puedan extraer el campo "message" del backend.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// Message extrae el campo "message" del body JSON, si existe.
func (e *HTTPError) Message() string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

// DoJSON hace un request JSON contra el backend.
// - path: relativo al BaseURL (p.ej. "pacientes/" o "pacientes/"+id)
// - headers: headers extra (Authorization, etc.)
// - in: body a enviar; nil => sin body
// - out: destino del decode; nil => ignora el body de respuesta
// Retorna *HTTPError si el status no es 2xx.
func (c *Client) DoJSON(ctx context.Context, method, path string, headers map[string]string, in, out any) error {
	return c.do(ctx, c.std, method, path, headers, in, out)
}

// DoJSONSlow es DoJSON con el timeout largo (generación de archivos).
func (c *Client) DoJSONSlow(ctx context.Context, method, path string, headers map[string]string, in, out any) error {
	return c.do(ctx, c.slow, method, path, headers, in, out)
}

// DoBinary descarga un stream binario (PDF) hacia w, con timeout largo.
func (c *Client) DoBinary(ctx context.Context, path string, headers map[string]string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, headers, nil)
	if err != nil {
		return err
	}

	resp, err := c.slow.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := readAtMost(resp.Body, 1<<20)
		return &HTTPError{StatusCode: resp.StatusCode, Body: raw}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("httpclient: copy body: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, headers map[string]string, in, out any) error {
	if c == nil || hc == nil {
		return errors.New("httpclient: nil client")
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, headers, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := readAtMost(resp.Body, 1<<20) // 1MB max

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: raw}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, headers map[string]string, body io.Reader) (*http.Request, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("httpclient: empty path")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}
	return req, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = 1 << 20
	}
	return io.ReadAll(io.LimitReader(r, max))
}
