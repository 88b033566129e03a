package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/OlexiiMelnik/app-users/internal/domain/entity"
	"github.com/OlexiiMelnik/app-users/internal/domain/repository"
)

type RoleRepository struct {
	db DB
}

func NewRoleRepository(db DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	role := &entity.Role{}
	row := r.db.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, string(name))
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
