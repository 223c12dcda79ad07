package enums

// API resources, used as span and metric names for client calls.
const (
	AuthResource             = "auth"
	UserResource             = "users"
	DocumentResource         = "documents"
	BecarioResource          = "becarios"
	PostulacionResource      = "postulaciones"
	PlazaPostulacionResource = "postulaciones-plazas"
)
