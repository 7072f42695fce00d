package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medihelp/sally-api/internal/domain/entity"
)

func promptUser() *entity.User {
	return &entity.User{NombreUsuario: "Carlos Gomez", Documento: "102446996"}
}

func TestBuildSystemPrompt_CoincidenciaConInventario(t *testing.T) {
	match := &inventoryMatch{
		Term: "acetaminofen",
		Lines: []entity.InventoryLine{
			inventoryLineFor("Acetaminofén", "Acetaminofén", "Sede Norte"),
		},
	}

	prompt := buildSystemPrompt(promptUser(), nil, nil, nil, nil, match)

	assert.Contains(t, prompt, "USUARIO VERIFICADO: Carlos Gomez")
	assert.Contains(t, prompt, "REGLAS ESTRICTAS")
	assert.Contains(t, prompt, `"acetaminofen"`)
	assert.Contains(t, prompt, "SÍ tenemos este medicamento")
	assert.Contains(t, prompt, "Sede Norte")
	assert.NotContains(t, prompt, "INFORMACIÓN GENERAL DE INVENTARIO")
}

func TestBuildSystemPrompt_CoincidenciaSinUbicaciones(t *testing.T) {
	// El término se buscó pero no hay líneas: el modelo recibe la orden
	// explícita de negar la disponibilidad.
	match := &inventoryMatch{Term: "ozempic"}

	prompt := buildSystemPrompt(promptUser(), nil, nil, nil, nil, match)

	assert.Contains(t, prompt, "NO tenemos este medicamento")
}

func TestBuildSystemPrompt_SinCoincidenciaUsaExtractoGeneral(t *testing.T) {
	inventory := []entity.InventoryLine{
		inventoryLineFor("Ibuprofeno", "Ibuprofeno", "Sede Centro"),
	}
	facilities := []entity.Facility{{ID: 10, NombreSede: "Sede Centro", Ciudad: "Bogotá"}}

	prompt := buildSystemPrompt(promptUser(), nil, inventory, facilities, nil, nil)

	assert.Contains(t, prompt, "INFORMACIÓN GENERAL DE INVENTARIO")
	assert.Contains(t, prompt, "SEDES PRINCIPALES")
	assert.Contains(t, prompt, "Ibuprofeno")
	assert.NotContains(t, prompt, "MEDICAMENTO ESPECÍFICO CONSULTADO")
}

func TestBuildSystemPrompt_CatalogoAcotadoATreinta(t *testing.T) {
	meds := make([]entity.Medication, 40)
	for i := range meds {
		meds[i] = entity.Medication{NombreComercial: "Med", PrincipioActivo: "Principio"}
	}

	prompt := buildSystemPrompt(promptUser(), meds, nil, nil, nil, nil)

	assert.Equal(t, promptCatalogLimit, strings.Count(prompt, `"nombre": "Med"`))
	assert.Contains(t, prompt, "40 medicamentos en catálogo", "el resumen cuenta el catálogo completo")
}

func TestBuildSystemPrompt_SinUsuarioOmiteBloque(t *testing.T) {
	prompt := buildSystemPrompt(nil, nil, nil, nil, nil, nil)
	assert.NotContains(t, prompt, "USUARIO VERIFICADO")
}
