package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MedicationResponse un medicamento del catálogo.
type MedicationResponse struct {
	ID                int64           `json:"id_medicamento"`
	NombreComercial   string          `json:"nombre_comercial"`
	PrincipioActivo   string          `json:"principio_activo"`
	Concentracion     string          `json:"concentracion"`
	Presentacion      string          `json:"presentacion"`
	ViaAdministracion string          `json:"via_administracion"`
	Precio            decimal.Decimal `json:"precio"`
	RequiereFormula   bool            `json:"requiere_formula"`
}

// InsurerResponse una EPS.
type InsurerResponse struct {
	ID       int64  `json:"id_eps"`
	Nombre   string `json:"nombre_eps"`
	Regimen  string `json:"regimen"`
	Telefono string `json:"telefono,omitempty"`
	Email    string `json:"email,omitempty"`
	SitioWeb string `json:"sitio_web,omitempty"`
}

// FacilityResponse una sede con su EPS asociada.
type FacilityResponse struct {
	ID           int64            `json:"id_sede"`
	NombreSede   string           `json:"nombre_sede"`
	Ciudad       string           `json:"ciudad"`
	Departamento string           `json:"departamento,omitempty"`
	Direccion    string           `json:"direccion,omitempty"`
	Barrio       string           `json:"barrio,omitempty"`
	Telefono     string           `json:"telefono,omitempty"`
	Horario      string           `json:"horario,omitempty"`
	EPS          *InsurerResponse `json:"eps,omitempty"`
}

// EquivalenceResponse un equivalente de medicamento.
type EquivalenceResponse struct {
	ID                int64  `json:"id_equivalencia"`
	IDMedicamento     int64  `json:"id_medicamento"`
	NombreEquivalente string `json:"nombre_equivalente"`
	Laboratorio       string `json:"laboratorio,omitempty"`
}

// RoleResponse un rol del sistema.
type RoleResponse struct {
	ID     int64  `json:"id_rol"`
	Nombre string `json:"nombre_rol"`
}

// QueryLogResponse una consulta médica registrada.
type QueryLogResponse struct {
	ID                int64     `json:"id_consulta"`
	IDUsuario         string    `json:"id_usuario"`
	FechaHora         time.Time `json:"fecha_hora"`
	Canal             string    `json:"canal"`
	TerminoBuscado    string    `json:"termino_buscado"`
	Respuesta         string    `json:"respuesta"`
	TiempoRespuestaMs int       `json:"tiempo_respuesta_ms"`
	Disponible        bool      `json:"disponible"`
}
