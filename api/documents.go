package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/octabyte/becas-client/enums"
	"github.com/octabyte/becas-client/models"
	"github.com/tidwall/gjson"
)

type UploadDocumentRequest struct {
	File          io.Reader `form:"file" validate:"required"`
	FileName      string    `form:"fileName" validate:"required"`
	TipoDocumento string    `form:"tipoDocumento" validate:"required"`
	PostulacionID string    `form:"postulacionId" validate:"required"`
}

// ListApplicationDocuments returns the documents attached to a postulación.
// A response without data.documentos yields an empty list.
func (c *Client) ListApplicationDocuments(ctx context.Context, postulacionID string) ([]models.Document, error) {
	if postulacionID == "" {
		return nil, &ValidationError{Fields: map[string]string{"postulacionId": "es requerido"}}
	}

	body, err := c.send(ctx, request{
		resource:   enums.DocumentResource,
		operation:  "list-documents",
		method:     http.MethodGet,
		path:       "/documents/public/postulacion/{id}",
		pathParams: map[string]string{"id": postulacionID},
		fallback:   "Error al obtener los documentos",
	})
	if err != nil {
		return nil, err
	}

	documentos := gjson.GetBytes(body, "data.documentos")
	if !documentos.IsArray() {
		return []models.Document{}, nil
	}

	docs := []models.Document{}
	if err := json.Unmarshal([]byte(documentos.Raw), &docs); err != nil {
		return nil, fmt.Errorf("list-documents: decode response: %w", err)
	}
	return docs, nil
}

// UploadDocument sends the file as multipart form data.
func (c *Client) UploadDocument(ctx context.Context, req UploadDocumentRequest) (*models.DocumentResponse, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, request{
		resource:  enums.DocumentResource,
		operation: "upload-document",
		method:    http.MethodPost,
		path:      "/documents/upload",
		form: &multipartForm{
			fileField: "file",
			fileName:  req.FileName,
			file:      req.File,
			fields: map[string]string{
				"tipoDocumento": req.TipoDocumento,
				"postulacionId": req.PostulacionID,
			},
		},
		fallback: "Error al subir el documento",
	})
	if err != nil {
		return nil, err
	}
	return decode[models.DocumentResponse]("upload-document", body)
}
