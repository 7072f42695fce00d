package dto

// Estados de respuesta del asistente (etiqueta status en cada turno).
const (
	StatusAwaitingDocument     = "awaiting_document"
	StatusRegistrationStarted  = "registration_started"
	StatusCollectingData       = "collecting_data"
	StatusErrorInput           = "error_input"
	StatusUserVerified         = "user_verified"
	StatusRegistrationComplete = "registration_complete"
	StatusMedicalConsultation  = "medical_consultation"
	StatusServiceUnavailable   = "service_unavailable"
	StatusError                = "error"
)

// StartConversationResponse respuesta al iniciar sesión conversacional.
type StartConversationResponse struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// TurnRequest cuerpo de un turno del usuario. Documento es la variante
// antigua del cliente que enviaba el número de documento en campo propio;
// si viene, tiene prioridad sobre Message.
type TurnRequest struct {
	Message   string `json:"message"`
	Documento string `json:"documento"`
}

// Progress indicador de avance del registro guiado.
type Progress struct {
	Step  int `json:"step"`
	Total int `json:"total"`
}

// UserSummary resumen del usuario para las respuestas de verificación y
// registro completado.
type UserSummary struct {
	ID        string `json:"id,omitempty"`
	Nombre    string `json:"nombre"`
	Documento string `json:"documento"`
}

// TurnResponse respuesta del asistente a un turno.
type TurnResponse struct {
	SessionID string    `json:"sessionId"`
	Reply     string    `json:"reply"`
	Status    string    `json:"status"`
	Progress  *Progress `json:"progress,omitempty"`

	// UserData presente en user_verified y registration_complete.
	UserData *UserSummary `json:"user_data,omitempty"`

	// User nombre del usuario en consultas médicas.
	User string `json:"user,omitempty"`

	// ActionRequired "restart" cuando la creación del usuario falló.
	ActionRequired string `json:"action_required,omitempty"`

	// Metadatos de la consulta médica cuando hubo coincidencia de medicamento.
	MedicamentoConsultado  string `json:"medicamento_consultado,omitempty"`
	UbicacionesEncontradas *int   `json:"ubicaciones_encontradas,omitempty"`
}
