package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medihelp/sally-api/internal/domain"
	"github.com/medihelp/sally-api/internal/domain/entity"
	"github.com/medihelp/sally-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id_usuario, tipo_documento, documento, nombre_usuario, email, password_hash,
	edad, ciudad, canal_preferido, id_sede_preferida, id_rol, estado, fecha_creacion, ultimo_acceso`

// FindByDocument busca un usuario por número de documento exacto.
// Devuelve (nil, nil) si no existe.
func (r *UserRepo) FindByDocument(ctx context.Context, documento string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE documento = $1 LIMIT 1`
	u, err := r.scanUser(r.pool.QueryRow(ctx, query, documento))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by documento: %w", err)
	}
	return u, nil
}

// CreateIfAbsent inserta el usuario de forma atómica: la unicidad del
// documento la resuelve la base de datos (ON CONFLICT DO NOTHING), no una
// doble verificación con carrera.
func (r *UserRepo) CreateIfAbsent(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuarios (id_usuario, tipo_documento, documento, nombre_usuario, email, password_hash,
			edad, ciudad, canal_preferido, id_sede_preferida, id_rol, estado, fecha_creacion, ultimo_acceso)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (documento) DO NOTHING`
	tag, err := r.pool.Exec(ctx, query,
		user.ID, user.TipoDocumento, user.Documento, user.NombreUsuario, user.Email, user.PasswordHash,
		user.Edad, user.Ciudad, user.CanalPreferido, user.IDSedePreferida, user.IDRol, user.Estado,
		user.FechaCreacion, user.UltimoAcceso,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// List devuelve todos los usuarios ordenados por fecha de creación.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios ORDER BY fecha_creacion DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// TouchLastAccess actualiza la marca de último acceso del usuario.
func (r *UserRepo) TouchLastAccess(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE usuarios SET ultimo_acceso = now() WHERE id_usuario = $1`, id)
	if err != nil {
		return fmt.Errorf("touch ultimo_acceso: %w", err)
	}
	return nil
}

func (r *UserRepo) scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.TipoDocumento, &u.Documento, &u.NombreUsuario, &u.Email, &u.PasswordHash,
		&u.Edad, &u.Ciudad, &u.CanalPreferido, &u.IDSedePreferida, &u.IDRol, &u.Estado,
		&u.FechaCreacion, &u.UltimoAcceso,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
