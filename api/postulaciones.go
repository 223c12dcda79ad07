package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/octabyte/becas-client/enums"
)

type ApplicationFilter struct {
	Estado              enums.PostulacionStatus
	PlazaID             string
	EstudianteBecarioID string
	Limit               int `validate:"gte=0"`
	Offset              int `validate:"gte=0"`
}

func (f ApplicationFilter) values() url.Values {
	q := url.Values{}
	if f.Estado != "" {
		q.Set("estado", string(f.Estado))
	}
	if f.PlazaID != "" {
		q.Set("plazaId", f.PlazaID)
	}
	if f.EstudianteBecarioID != "" {
		q.Set("estudianteBecarioId", f.EstudianteBecarioID)
	}
	setPage(q, f.Limit, f.Offset)
	return q
}

type ApproveApplicationRequest struct {
	Observaciones string `json:"observaciones,omitempty"`
}

type RejectApplicationRequest struct {
	MotivoRechazo string `json:"motivoRechazo" validate:"required"`
	Observaciones string `json:"observaciones,omitempty"`
}

// CreateApplicationRequest submits a scholarship postulación.
type CreateApplicationRequest struct {
	TipoBeca         string `json:"tipoBeca" validate:"required"`
	PeriodoAcademico string `json:"periodoAcademico" validate:"required"`
	Motivacion       string `json:"motivacion,omitempty"`
}

// ListApplications is the admin view over every plaza postulación.
func (c *Client) ListApplications(ctx context.Context, token string, filter ApplicationFilter) (json.RawMessage, error) {
	if err := c.check(filter); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, request{
		resource:  enums.PlazaPostulacionResource,
		operation: "list-applications",
		method:    http.MethodGet,
		path:      "/postulaciones-plazas",
		query:     filter.values(),
		token:     token,
		fallback:  "Error al obtener las postulaciones",
	})
	if err != nil {
		return nil, err
	}
	return raw("list-applications", body)
}

func (c *Client) ApproveApplication(ctx context.Context, token, id string, req ApproveApplicationRequest) (json.RawMessage, error) {
	if id == "" {
		return nil, &ValidationError{Fields: map[string]string{"id": "es requerido"}}
	}

	body, err := c.send(ctx, request{
		resource:   enums.PlazaPostulacionResource,
		operation:  "approve-application",
		method:     http.MethodPut,
		path:       "/postulaciones-plazas/{id}/aprobar",
		pathParams: map[string]string{"id": id},
		body:       req,
		token:      token,
		fallback:   "Error al aprobar la postulación",
	})
	if err != nil {
		return nil, err
	}
	return raw("approve-application", body)
}

func (c *Client) RejectApplication(ctx context.Context, token, id string, req RejectApplicationRequest) (json.RawMessage, error) {
	if id == "" {
		return nil, &ValidationError{Fields: map[string]string{"id": "es requerido"}}
	}
	if err := c.check(req); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, request{
		resource:   enums.PlazaPostulacionResource,
		operation:  "reject-application",
		method:     http.MethodPut,
		path:       "/postulaciones-plazas/{id}/rechazar",
		pathParams: map[string]string{"id": id},
		body:       req,
		token:      token,
		fallback:   "Error al rechazar la postulación",
	})
	if err != nil {
		return nil, err
	}
	return raw("reject-application", body)
}

func (c *Client) CreateApplication(ctx context.Context, token string, req CreateApplicationRequest) (json.RawMessage, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, request{
		resource:  enums.PostulacionResource,
		operation: "create-application",
		method:    http.MethodPost,
		path:      "/postulaciones",
		body:      req,
		token:     token,
		fallback:  "Error al enviar la postulación",
	})
	if err != nil {
		return nil, err
	}
	return raw("create-application", body)
}
