package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medihelp/sally-api/internal/domain/entity"
	"github.com/medihelp/sally-api/internal/domain/repository"
)

var _ repository.QueryLogRepository = (*QueryLogRepo)(nil)

// QueryLogRepo implementación del puerto QueryLogRepository sobre PostgreSQL.
type QueryLogRepo struct {
	pool *pgxpool.Pool
}

// NewQueryLogRepository construye el adaptador de persistencia de consultas.
func NewQueryLogRepository(pool *pgxpool.Pool) *QueryLogRepo {
	return &QueryLogRepo{pool: pool}
}

// Create inserta el registro de una consulta médica.
func (r *QueryLogRepo) Create(ctx context.Context, log *entity.QueryLog) error {
	query := `
		INSERT INTO consultas (id_usuario, fecha_hora, canal, termino_buscado, respuesta, tiempo_respuesta_ms, disponible)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_consulta`
	err := r.pool.QueryRow(ctx, query,
		log.IDUsuario, log.FechaHora, log.Canal, log.TerminoBuscado,
		log.Respuesta, log.TiempoRespuestaMs, log.Disponible,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("insert consulta: %w", err)
	}
	return nil
}

// List devuelve todas las consultas registradas, las más recientes primero.
func (r *QueryLogRepo) List(ctx context.Context) ([]entity.QueryLog, error) {
	query := `
		SELECT id_consulta, id_usuario, fecha_hora, canal, termino_buscado, respuesta, tiempo_respuesta_ms, disponible
		FROM consultas ORDER BY fecha_hora DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list consultas: %w", err)
	}
	defer rows.Close()

	var list []entity.QueryLog
	for rows.Next() {
		var l entity.QueryLog
		if err := rows.Scan(&l.ID, &l.IDUsuario, &l.FechaHora, &l.Canal, &l.TerminoBuscado,
			&l.Respuesta, &l.TiempoRespuestaMs, &l.Disponible); err != nil {
			return nil, fmt.Errorf("scan consulta: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
