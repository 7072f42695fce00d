package repository

import (
	"context"

	"github.com/medihelp/sally-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	// FindByDocument busca por número de documento exacto. Devuelve (nil, nil)
	// si no existe; un error solo ante fallo de almacenamiento.
	FindByDocument(ctx context.Context, documento string) (*entity.User, error)

	// CreateIfAbsent inserta el usuario de forma atómica. Si ya existe otro
	// con el mismo documento devuelve domain.ErrDuplicate sin modificar nada.
	CreateIfAbsent(ctx context.Context, user *entity.User) error

	// List devuelve todos los usuarios.
	List(ctx context.Context) ([]*entity.User, error)

	// TouchLastAccess actualiza ultimo_acceso; mejor esfuerzo.
	TouchLastAccess(ctx context.Context, id string) error
}
