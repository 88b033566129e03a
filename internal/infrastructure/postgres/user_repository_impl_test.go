package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlexiiMelnik/app-users/internal/domain/entity"
	"github.com/OlexiiMelnik/app-users/internal/domain/repository"
	"github.com/OlexiiMelnik/app-users/pkg/types"
)

var userRows = []string{
	"id", "email", "password_hash", "first_name", "last_name",
	"birth_date", "address", "phone", "created_at", "updated_at",
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	birth := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found with roles", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, email, password_hash").
			WithArgs("a@b.com").
			WillReturnRows(pgxmock.NewRows(userRows).
				AddRow(int64(7), "a@b.com", "hash", "John", "Doe", birth, "Main Street 1", "+380501234567", now, now))
		mock.ExpectQuery("SELECT r.id, r.name").
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
				AddRow(int64(1), entity.RoleUser).
				AddRow(int64(2), entity.RoleAdmin))

		u, err := NewUserRepository(mock).GetByEmail(ctx, "a@b.com")

		require.NoError(t, err)
		assert.Equal(t, int64(7), u.ID)
		assert.Equal(t, "a@b.com", u.Email)
		assert.Equal(t, "hash", u.Password)
		assert.Equal(t, "1990-01-01", u.BirthDate.String())
		require.Len(t, u.Roles, 2)
		assert.True(t, u.HasRole(entity.RoleAdmin))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, email, password_hash").
			WithArgs("ghost@b.com").
			WillReturnError(pgx.ErrNoRows)

		u, err := NewUserRepository(mock).GetByEmail(ctx, "ghost@b.com")

		assert.Nil(t, u)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	newUser := func() *entity.User {
		return &entity.User{
			Email:     "a@b.com",
			Password:  "hash",
			FirstName: "John",
			LastName:  "Doe",
			BirthDate: types.NewDate(1990, time.January, 1),
			Address:   "Main Street 1",
			Phone:     "+380501234567",
			Roles:     []entity.Role{{ID: 1, Name: entity.RoleUser}},
		}
	}

	t.Run("inserts user and role links", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		u := newUser()
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.Email, u.Password, u.FirstName, u.LastName, u.BirthDate, "Main Street 1", "+380501234567").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), now, now))
		mock.ExpectExec("INSERT INTO user_roles").
			WithArgs(int64(42), int64(1)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		require.NoError(t, NewUserRepository(mock).Create(ctx, u))
		assert.Equal(t, int64(42), u.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to duplicate email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		u := newUser()
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.Email, u.Password, u.FirstName, u.LastName, u.BirthDate, "Main Street 1", "+380501234567").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
		mock.ExpectRollback()

		err = NewUserRepository(mock).Create(ctx, u)

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty optional fields insert as NULL", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		u := newUser()
		u.Address, u.Phone = "", ""
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.Email, u.Password, u.FirstName, u.LastName, u.BirthDate, nil, nil).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(43), now, now))
		mock.ExpectExec("INSERT INTO user_roles").
			WithArgs(int64(43), int64(1)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		require.NoError(t, NewUserRepository(mock).Create(ctx, u))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	u := &entity.User{
		ID:        7,
		FirstName: "Jane",
		LastName:  "Doe",
		BirthDate: types.NewDate(1990, time.January, 1),
		Address:   "X",
		Phone:     "Y",
	}

	t.Run("updates profile fields", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE users").
			WithArgs(u.FirstName, u.LastName, u.BirthDate, "X", "Y", int64(7)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, NewUserRepository(mock).Update(ctx, u))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means missing user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE users").
			WithArgs(u.FirstName, u.LastName, u.BirthDate, "X", "Y", int64(7)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = NewUserRepository(mock).Update(ctx, u)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(7)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, NewUserRepository(mock).DeleteByID(ctx, 7))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(999)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.NoError(t, NewUserRepository(mock).DeleteByID(ctx, 999))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store error propagates", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		dbErr := errors.New("connection reset")
		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(7)).
			WillReturnError(dbErr)

		err = NewUserRepository(mock).DeleteByID(ctx, 7)

		assert.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_FindByBirthDateRange(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	from := types.NewDate(1980, time.January, 1)
	to := types.NewDate(2000, time.December, 31)

	t.Run("pages inclusive range", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`BETWEEN \$1 AND \$2 LIMIT \$3 OFFSET \$4`).
			WithArgs(from, to, 20, 40).
			WillReturnRows(pgxmock.NewRows(userRows).
				AddRow(int64(1), "a@b.com", "hash-a", "John", "Doe",
					time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), "", "", now, now).
				AddRow(int64(2), "c@d.com", "hash-c", "Jane", "Roe",
					time.Date(1995, time.June, 15, 0, 0, 0, 0, time.UTC), "", "", now, now))

		users, err := NewUserRepository(mock).FindByBirthDateRange(ctx, from, to,
			repository.Pageable{Page: 2, Size: 20})

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "a@b.com", users[0].Email)
		assert.Equal(t, "1995-06-15", users[1].BirthDate.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("whitelisted sort adds order by", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`ORDER BY birth_date DESC LIMIT \$3 OFFSET \$4`).
			WithArgs(from, to, 20, 0).
			WillReturnRows(pgxmock.NewRows(userRows))

		users, err := NewUserRepository(mock).FindByBirthDateRange(ctx, from, to,
			repository.Pageable{Sort: "birthDate,desc"})

		require.NoError(t, err)
		assert.Empty(t, users)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sort field is ignored", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`BETWEEN \$1 AND \$2 LIMIT \$3 OFFSET \$4`).
			WithArgs(from, to, 20, 0).
			WillReturnRows(pgxmock.NewRows(userRows))

		_, err = NewUserRepository(mock).FindByBirthDateRange(ctx, from, to,
			repository.Pageable{Sort: "password_hash,desc"})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSortClause(t *testing.T) {
	cases := []struct {
		sort string
		want string
	}{
		{"", ""},
		{"birthDate", "birth_date"},
		{"birthDate,desc", "birth_date DESC"},
		{"birth_date,DESC", "birth_date DESC"},
		{"email,asc", "email"},
		{"lastName", "last_name"},
		{"drop table users", ""},
		{"password_hash", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sortClause(tc.sort), "sort=%q", tc.sort)
	}
}
