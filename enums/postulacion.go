package enums

type PostulacionStatus string

const (
	PostulacionStatusPendiente  PostulacionStatus = "pendiente"
	PostulacionStatusEnRevision PostulacionStatus = "en_revision"
	PostulacionStatusAprobada   PostulacionStatus = "aprobada"
	PostulacionStatusRechazada  PostulacionStatus = "rechazada"
)

const (
	DocumentStatusPendiente = "pendiente"
	DocumentStatusAprobado  = "aprobado"
	DocumentStatusRechazado = "rechazado"
)

const (
	TipoAyudantiaAcademica      = "academica"
	TipoAyudantiaAdministrativa = "administrativa"
)
