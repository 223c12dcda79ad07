package models

type Document struct {
	ID            string `json:"id"`
	TipoDocumento string `json:"tipoDocumento"`
	NombreArchivo string `json:"nombreArchivo,omitempty"`
	URL           string `json:"url,omitempty"`
	Estado        string `json:"estado,omitempty"`
	PostulacionID string `json:"postulacionId,omitempty"`
	FechaSubida   string `json:"fechaSubida,omitempty"`
}
