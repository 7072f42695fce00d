package usecase

import (
	"context"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/domain/entity"
	"github.com/medihelp/sally-api/internal/domain/repository"
)

// CatalogUseCase lecturas planas del catálogo de referencia para los
// endpoints de listado.
type CatalogUseCase struct {
	repo repository.CatalogRepository
	logs repository.QueryLogRepository
}

// NewCatalogUseCase construye el caso de uso con los puertos de lectura.
func NewCatalogUseCase(repo repository.CatalogRepository, logs repository.QueryLogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, logs: logs}
}

// ListMedications lista el catálogo completo de medicamentos.
func (uc *CatalogUseCase) ListMedications(ctx context.Context) ([]dto.MedicationResponse, error) {
	meds, err := uc.repo.ListMedications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MedicationResponse, 0, len(meds))
	for _, m := range meds {
		out = append(out, dto.MedicationResponse{
			ID:                m.ID,
			NombreComercial:   m.NombreComercial,
			PrincipioActivo:   m.PrincipioActivo,
			Concentracion:     m.Concentracion,
			Presentacion:      m.Presentacion,
			ViaAdministracion: m.ViaAdministracion,
			Precio:            m.Precio,
			RequiereFormula:   m.RequiereFormula,
		})
	}
	return out, nil
}

// ListInsurers lista todas las EPS.
func (uc *CatalogUseCase) ListInsurers(ctx context.Context) ([]dto.InsurerResponse, error) {
	insurers, err := uc.repo.ListInsurers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InsurerResponse, 0, len(insurers))
	for _, e := range insurers {
		out = append(out, insurerToResponse(e))
	}
	return out, nil
}

// ListFacilities lista todas las sedes con su EPS.
func (uc *CatalogUseCase) ListFacilities(ctx context.Context) ([]dto.FacilityResponse, error) {
	facilities, err := uc.repo.ListFacilities(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		resp := dto.FacilityResponse{
			ID:           f.ID,
			NombreSede:   f.NombreSede,
			Ciudad:       f.Ciudad,
			Departamento: f.Departamento,
			Direccion:    f.Direccion,
			Barrio:       f.Barrio,
			Telefono:     f.Telefono,
			Horario:      f.Horario,
		}
		if f.EPS != nil {
			eps := insurerToResponse(*f.EPS)
			resp.EPS = &eps
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListEquivalences lista los equivalentes de medicamentos.
func (uc *CatalogUseCase) ListEquivalences(ctx context.Context) ([]dto.EquivalenceResponse, error) {
	eqs, err := uc.repo.ListEquivalences(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EquivalenceResponse, 0, len(eqs))
	for _, e := range eqs {
		out = append(out, dto.EquivalenceResponse{
			ID:                e.ID,
			IDMedicamento:     e.IDMedicamento,
			NombreEquivalente: e.NombreEquivalente,
			Laboratorio:       e.Laboratorio,
		})
	}
	return out, nil
}

// ListRoles lista los roles del sistema.
func (uc *CatalogUseCase) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleResponse{ID: r.ID, Nombre: r.NombreRol})
	}
	return out, nil
}

// ListQueryLogs lista las consultas médicas registradas.
func (uc *CatalogUseCase) ListQueryLogs(ctx context.Context) ([]dto.QueryLogResponse, error) {
	logs, err := uc.logs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QueryLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.QueryLogResponse{
			ID:                l.ID,
			IDUsuario:         l.IDUsuario,
			FechaHora:         l.FechaHora,
			Canal:             l.Canal,
			TerminoBuscado:    l.TerminoBuscado,
			Respuesta:         l.Respuesta,
			TiempoRespuestaMs: l.TiempoRespuestaMs,
			Disponible:        l.Disponible,
		})
	}
	return out, nil
}

func insurerToResponse(e entity.Insurer) dto.InsurerResponse {
	return dto.InsurerResponse{
		ID:       e.ID,
		Nombre:   e.NombreEPS,
		Regimen:  e.Regimen,
		Telefono: e.Telefono,
		Email:    e.Email,
		SitioWeb: e.SitioWeb,
	}
}
