package relatorios

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fisiomaster-admin/internal/adapters/api"
	"fisiomaster-admin/internal/platform/httpclient"
	"fisiomaster-admin/internal/ports/backend"
)

const (
	fetchPath = "relatorios"
	emailPath = "relatorios/email"
	pdfPath   = "relatorios/pdf"

	// Formato yyyy-MM-dd de los query params startDate/endDate.
	dateLayout = "2006-01-02"
)

// Client pide el relatório y dispara los side-channels de export.
// Fetch usa el timeout normal; email y PDF el largo (generación pesada).
type Client struct {
	http   *httpclient.Client
	creds  backend.CredentialProvider
	purger backend.SessionPurger
}

func NewClient(h *httpclient.Client, creds backend.CredentialProvider, purger backend.SessionPurger) *Client {
	return &Client{http: h, creds: creds, purger: purger}
}

func (c *Client) Fetch(ctx context.Context, startDate, endDate string) (Relatorio, error) {
	q, err := rangeQuery(startDate, endDate)
	if err != nil {
		return Relatorio{}, err
	}
	headers, err := c.authHeaders(ctx)
	if err != nil {
		return Relatorio{}, err
	}

	var out Relatorio
	if err := c.http.DoJSON(ctx, http.MethodGet, fetchPath+"?"+q, headers, nil, &out); err != nil {
		return Relatorio{}, c.mapped(err)
	}
	return out, nil
}

// Email manda el relatório del scope al address indicado. Retorna el
// mensaje de confirmación del backend.
func (c *Client) Email(ctx context.Context, address string, scope Scope, startDate, endDate string) (string, error) {
	if strings.TrimSpace(address) == "" {
		return "", backend.Wrap(backend.ErrValidation, "Por favor, informe um endereço de email")
	}
	q, err := rangeQuery(startDate, endDate)
	if err != nil {
		return "", err
	}
	headers, err := c.authHeaders(ctx)
	if err != nil {
		return "", err
	}

	path := emailPath
	switch scope {
	case ScopeCompleto, "":
		// path base
	case ScopeParticular, ScopePlanoSaude:
		path += "/" + string(scope)
	default:
		return "", backend.Wrap(backend.ErrValidation, "Tipo de relatório inválido")
	}

	in := map[string]string{"email": address}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.http.DoJSONSlow(ctx, http.MethodPost, path+"?"+q, headers, in, &out); err != nil {
		return "", c.mapped(err)
	}
	return out.Message, nil
}

// DownloadPDF escribe el stream binario del relatório en w.
func (c *Client) DownloadPDF(ctx context.Context, startDate, endDate string, w io.Writer) error {
	q, err := rangeQuery(startDate, endDate)
	if err != nil {
		return err
	}
	headers, err := c.authHeaders(ctx)
	if err != nil {
		return err
	}

	if err := c.http.DoBinary(ctx, pdfPath+"?"+q, headers, w); err != nil {
		return c.mapped(err)
	}
	return nil
}

func (c *Client) authHeaders(ctx context.Context) (map[string]string, error) {
	tok, err := c.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{"Authorization": "Bearer " + tok}, nil
}

func (c *Client) mapped(err error) error {
	out := api.MapError(err)
	if errors.Is(out, backend.ErrAuth) && c.purger != nil {
		_ = c.purger.Purge()
	}
	return out
}

func rangeQuery(startDate, endDate string) (string, error) {
	if _, err := time.Parse(dateLayout, startDate); err != nil {
		return "", backend.Wrap(backend.ErrValidation, "Data inicial inválida (use yyyy-MM-dd)")
	}
	if _, err := time.Parse(dateLayout, endDate); err != nil {
		return "", backend.Wrap(backend.ErrValidation, "Data final inválida (use yyyy-MM-dd)")
	}
	v := url.Values{}
	v.Set("startDate", startDate)
	v.Set("endDate", endDate)
	return v.Encode(), nil
}
