package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/OlexiiMelnik/app-users/internal/domain/entity"
	"github.com/OlexiiMelnik/app-users/internal/domain/repository"
	"github.com/OlexiiMelnik/app-users/pkg/types"
)

const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, first_name, last_name, birth_date,
		COALESCE(address, ''), COALESCE(phone, ''), created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and its role links in one transaction. The
// UNIQUE(email) constraint is the race guard against concurrent
// registrations with the same address.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, birth_date, address, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.FirstName, u.LastName, u.BirthDate, nullable(u.Address), nullable(u.Phone))

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}

	for _, role := range u.Roles {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
		`, u.ID, role.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.QueryRow(ctx, query, arg)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	roles, err := r.rolesOf(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return u, nil
}

func (r *UserRepository) rolesOf(ctx context.Context, userID int64) ([]entity.Role, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Update persists the mutable profile fields only. Email, password hash,
// and role links are untouched by this statement.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, birth_date = $3, address = $4, phone = $5, updated_at = now()
		WHERE id = $6
	`, u.FirstName, u.LastName, u.BirthDate, nullable(u.Address), nullable(u.Phone), u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByID removes the user row; user_roles links go with it via
// ON DELETE CASCADE. Deleting an unknown id is a silent no-op.
func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *UserRepository) FindByBirthDateRange(ctx context.Context, from, to types.Date, p repository.Pageable) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE birth_date BETWEEN $1 AND $2`
	if clause := sortClause(p.Sort); clause != "" {
		query += " ORDER BY " + clause
	}
	query += " LIMIT $3 OFFSET $4"

	rows, err := r.db.Query(ctx, query, from, to, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.BirthDate, &u.Address, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
}

// sortColumns whitelists sortable fields; anything else is ignored and
// leaves the ordering to the store.
var sortColumns = map[string]string{
	"id":         "id",
	"email":      "email",
	"firstName":  "first_name",
	"first_name": "first_name",
	"lastName":   "last_name",
	"last_name":  "last_name",
	"birthDate":  "birth_date",
	"birth_date": "birth_date",
}

func sortClause(sort string) string {
	if sort == "" {
		return ""
	}
	field, dir, _ := strings.Cut(sort, ",")
	col, ok := sortColumns[strings.TrimSpace(field)]
	if !ok {
		return ""
	}
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		return col + " DESC"
	}
	return col
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ repository.UserRepository = (*UserRepository)(nil)
