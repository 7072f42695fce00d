package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/medihelp/sally-api/internal/domain/entity"
)

// Topes de los extractos incluidos en el prompt del sistema: el contexto del
// modelo es finito y el catálogo completo no cabe.
const (
	promptCatalogLimit   = 30
	promptInventoryLimit = 10
	promptFacilityLimit  = 10
)

// Formas compactas serializadas dentro del prompt.

type promptMedication struct {
	Nombre    string `json:"nombre"`
	Principio string `json:"principio"`
}

type promptLocation struct {
	Medicamento     string `json:"medicamento"`
	PrincipioActivo string `json:"principio_activo"`
	Concentracion   string `json:"concentracion,omitempty"`
	Presentacion    string `json:"presentacion,omitempty"`
	Sede            string `json:"sede"`
	Ciudad          string `json:"ciudad"`
	Direccion       string `json:"direccion,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	EPS             string `json:"eps"`
	Stock           int    `json:"stock"`
	Disponible      bool   `json:"disponible"`
}

type promptFacility struct {
	Sede         string `json:"sede"`
	Ciudad       string `json:"ciudad"`
	Departamento string `json:"departamento,omitempty"`
	Direccion    string `json:"direccion,omitempty"`
	Telefono     string `json:"telefono,omitempty"`
	Horario      string `json:"horario,omitempty"`
	EPS          string `json:"eps"`
}

// buildSystemPrompt arma la instrucción del sistema para la consulta médica:
// identidad de Sally, usuario verificado, reglas estrictas de anclaje a los
// datos, extracto del catálogo y, si hubo coincidencia por palabra clave, el
// bloque con las ubicaciones exactas del término buscado; si no, un extracto
// general de inventario y sedes. El modelo nunca recibe permiso para afirmar
// disponibilidad fuera de estos datos.
func buildSystemPrompt(
	user *entity.User,
	meds []entity.Medication,
	inventory []entity.InventoryLine,
	facilities []entity.Facility,
	insurers []entity.Insurer,
	match *inventoryMatch,
) string {
	var b strings.Builder

	b.WriteString("Eres Sally, asistente especializada en medicamentos para adultos mayores (50-80 años).\n\n")
	if user != nil {
		fmt.Fprintf(&b, "USUARIO VERIFICADO: %s (Documento: %s)\n\n", user.NombreUsuario, user.Documento)
	}

	b.WriteString(`REGLAS ESTRICTAS PARA MEDICAMENTOS:
1. SOLO puedes hablar de medicamentos que EXISTEN en la base de datos
2. Si un medicamento NO está en la lista, di claramente "No tenemos ese medicamento disponible"
3. Si un medicamento SÍ está disponible, indica EXACTAMENTE en qué sedes se encuentra
4. Usa lenguaje claro y simple para adultos mayores
5. Siempre recomienda consultar con un médico
6. Mantén respuestas cortas y directas

`)

	fmt.Fprintf(&b, "RESUMEN DE DATOS DISPONIBLES:\n- %d medicamentos en catálogo\n- %d ubicaciones de medicamentos en %d sedes\n- %d EPS disponibles\n\n",
		len(meds), len(inventory), len(facilities), len(insurers))

	b.WriteString("PRINCIPALES MEDICAMENTOS DISPONIBLES (muestra):\n")
	b.WriteString(marshalPrompt(medicationExcerpt(meds)))
	b.WriteString("\n")

	if match != nil {
		fmt.Fprintf(&b, "\nMEDICAMENTO ESPECÍFICO CONSULTADO: %q\nUBICACIONES EXACTAS:\n", match.Term)
		b.WriteString(marshalPrompt(locationExcerpt(match.Lines)))
		b.WriteString("\n")
		if len(match.Lines) > 0 {
			fmt.Fprintf(&b, "\nIMPORTANTE: El usuario preguntó específicamente por %q. SÍ tenemos este medicamento disponible en %d ubicación(es). Proporciona información detallada de dónde encontrarlo.\n",
				match.Term, len(match.Lines))
		} else {
			fmt.Fprintf(&b, "\nIMPORTANTE: El usuario preguntó específicamente por %q. NO tenemos este medicamento en nuestro inventario. Informa claramente que no está disponible.\n",
				match.Term)
		}
	} else {
		b.WriteString("\nINFORMACIÓN GENERAL DE INVENTARIO (limitada):\n")
		b.WriteString(marshalPrompt(locationExcerpt(firstLines(inventory, promptInventoryLimit))))
		b.WriteString("\n\nSEDES PRINCIPALES:\n")
		b.WriteString(marshalPrompt(facilityExcerpt(facilities)))
		b.WriteString("\n")
	}

	b.WriteString(`
INSTRUCCIONES FINALES:
- Si preguntan por un medicamento que NO aparece en la lista, responde: "No tenemos [nombre del medicamento] disponible en nuestras farmacias"
- Si preguntan por un medicamento que SÍ aparece, indica las sedes exactas donde está disponible
- Para consultas sobre EPS, usa solo las EPS de la lista
- Para consultas sobre sedes, proporciona información completa incluyendo la EPS asociada
- Siempre termina recomendando consultar con un médico`)

	return b.String()
}

func medicationExcerpt(meds []entity.Medication) []promptMedication {
	out := make([]promptMedication, 0, promptCatalogLimit)
	for i, m := range meds {
		if i >= promptCatalogLimit {
			break
		}
		out = append(out, promptMedication{Nombre: m.NombreComercial, Principio: m.PrincipioActivo})
	}
	return out
}

func locationExcerpt(lines []entity.InventoryLine) []promptLocation {
	out := make([]promptLocation, 0, len(lines))
	for _, l := range lines {
		eps := "Sin EPS"
		if l.Sede.EPS != nil {
			eps = l.Sede.EPS.NombreEPS
		}
		out = append(out, promptLocation{
			Medicamento:     l.Medicamento.NombreComercial,
			PrincipioActivo: l.Medicamento.PrincipioActivo,
			Concentracion:   l.Medicamento.Concentracion,
			Presentacion:    l.Medicamento.Presentacion,
			Sede:            l.Sede.NombreSede,
			Ciudad:          l.Sede.Ciudad,
			Direccion:       l.Sede.Direccion,
			Telefono:        l.Sede.Telefono,
			EPS:             eps,
			Stock:           l.Stock,
			Disponible:      l.Disponible(),
		})
	}
	return out
}

func facilityExcerpt(facilities []entity.Facility) []promptFacility {
	out := make([]promptFacility, 0, promptFacilityLimit)
	for i, f := range facilities {
		if i >= promptFacilityLimit {
			break
		}
		eps := "Sin EPS"
		if f.EPS != nil {
			eps = f.EPS.NombreEPS
		}
		out = append(out, promptFacility{
			Sede:         f.NombreSede,
			Ciudad:       f.Ciudad,
			Departamento: f.Departamento,
			Direccion:    f.Direccion,
			Telefono:     f.Telefono,
			Horario:      f.Horario,
			EPS:          eps,
		})
	}
	return out
}

func firstLines(lines []entity.InventoryLine, n int) []entity.InventoryLine {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}

// marshalPrompt serializa un extracto para el prompt; ante un error de
// serialización (no esperado con estos tipos) degrada a lista vacía.
func marshalPrompt(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
