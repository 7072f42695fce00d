package usecase

import (
	"context"

	"github.com/medihelp/sally-api/internal/application/dto"
	"github.com/medihelp/sally-api/internal/domain/entity"
	"github.com/medihelp/sally-api/internal/domain/repository"
)

// UserUseCase lecturas de usuarios para los endpoints administrativos.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	return out, nil
}

// GetByDocument busca un usuario por número de documento. Devuelve
// (nil, nil) si no existe.
func (uc *UserUseCase) GetByDocument(ctx context.Context, documento string) (*dto.UserResponse, error) {
	u, err := uc.repo.FindByDocument(ctx, documento)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	resp := userToResponse(u)
	return &resp, nil
}

func userToResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              u.ID,
		TipoDocumento:   u.TipoDocumento,
		Documento:       u.Documento,
		NombreUsuario:   u.NombreUsuario,
		Email:           u.Email,
		Edad:            u.Edad,
		Ciudad:          u.Ciudad,
		CanalPreferido:  u.CanalPreferido,
		IDSedePreferida: u.IDSedePreferida,
		IDRol:           u.IDRol,
		Estado:          u.Estado,
		FechaCreacion:   u.FechaCreacion,
		UltimoAcceso:    u.UltimoAcceso,
	}
}
