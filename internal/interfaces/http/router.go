package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medihelp/sally-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AssistantUC *usecase.AssistantUseCase
	CatalogUC   *usecase.CatalogUseCase
	UserUC      *usecase.UserUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Asistente conversacional
	ia := api.Group("/ia")
	assistantHandler := NewAssistantHandler(deps.AssistantUC)
	ia.Get("/", assistantHandler.Start)
	ia.Post("/:sessionId", assistantHandler.Message)

	// Catálogo de referencia (lecturas planas)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/medicamentos", catalogHandler.ListMedications)
	api.Get("/eps", catalogHandler.ListInsurers)
	api.Get("/sedes", catalogHandler.ListFacilities)
	api.Get("/roles", catalogHandler.ListRoles)
	api.Get("/equivalencias", catalogHandler.ListEquivalences)
	api.Get("/consultas", catalogHandler.ListQueryLogs)

	// Usuarios (administrativo)
	userHandler := NewUserHandler(deps.UserUC)
	api.Get("/usuarios", userHandler.List)
	api.Get("/usuarios/:documento", userHandler.GetByDocument)
}
