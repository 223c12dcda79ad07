package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/octabyte/becas-client/enums"
)

type CompatiblePositionsFilter struct {
	TipoAyudantia    string
	PeriodoAcademico string
}

type ApplyToPositionRequest struct {
	PlazaID string `json:"plazaId" validate:"required"`
}

// CompatiblePositions lists the plazas the authenticated becario can apply to.
func (c *Client) CompatiblePositions(ctx context.Context, token string, filter CompatiblePositionsFilter) (json.RawMessage, error) {
	q := url.Values{}
	if filter.TipoAyudantia != "" {
		q.Set("tipoAyudantia", filter.TipoAyudantia)
	}
	if filter.PeriodoAcademico != "" {
		q.Set("periodoAcademico", filter.PeriodoAcademico)
	}

	body, err := c.send(ctx, request{
		resource:  enums.BecarioResource,
		operation: "compatible-positions",
		method:    http.MethodGet,
		path:      "/becarios/me/plazas-compatibles",
		query:     q,
		token:     token,
		fallback:  "Error al obtener las plazas compatibles",
	})
	if err != nil {
		return nil, err
	}
	return raw("compatible-positions", body)
}

func (c *Client) ApplyToPosition(ctx context.Context, token string, req ApplyToPositionRequest) (json.RawMessage, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, request{
		resource:  enums.BecarioResource,
		operation: "apply-to-position",
		method:    http.MethodPost,
		path:      "/becarios/me/postular-plaza",
		body:      req,
		token:     token,
		fallback:  "Error al postularse a la plaza",
	})
	if err != nil {
		return nil, err
	}
	return raw("apply-to-position", body)
}

func (c *Client) MyApplications(ctx context.Context, token string) (json.RawMessage, error) {
	body, err := c.send(ctx, request{
		resource:  enums.BecarioResource,
		operation: "my-applications",
		method:    http.MethodGet,
		path:      "/becarios/me/postulaciones-plazas",
		token:     token,
		fallback:  "Error al obtener sus postulaciones",
	})
	if err != nil {
		return nil, err
	}
	return raw("my-applications", body)
}
