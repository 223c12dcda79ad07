package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/octabyte/becas-client/enums"
	"github.com/octabyte/becas-client/models"
)

type UserFilter struct {
	Role   enums.Role
	Activo *bool
	Search string
	Limit  int `validate:"gte=0"`
	Offset int `validate:"gte=0"`
}

func (f UserFilter) values() url.Values {
	q := url.Values{}
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	if f.Activo != nil {
		q.Set("activo", strconv.FormatBool(*f.Activo))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	setPage(q, f.Limit, f.Offset)
	return q
}

func setPage(q url.Values, limit, offset int) {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
}

func (c *Client) ListUsers(ctx context.Context, token string, filter UserFilter) (*models.UserPageResponse, error) {
	if err := c.check(filter); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, request{
		resource:  enums.UserResource,
		operation: "list-users",
		method:    http.MethodGet,
		path:      "/users",
		query:     filter.values(),
		token:     token,
		fallback:  "Error al obtener los usuarios",
	})
	if err != nil {
		return nil, err
	}
	return decode[models.UserPageResponse]("list-users", body)
}

func (c *Client) GetUser(ctx context.Context, token, id string) (*models.UserResponse, error) {
	if id == "" {
		return nil, &ValidationError{Fields: map[string]string{"id": "es requerido"}}
	}

	body, err := c.send(ctx, request{
		resource:   enums.UserResource,
		operation:  "get-user",
		method:     http.MethodGet,
		path:       "/users/{id}",
		pathParams: map[string]string{"id": id},
		token:      token,
		fallback:   "Error al obtener el usuario",
	})
	if err != nil {
		return nil, err
	}
	return decode[models.UserResponse]("get-user", body)
}
