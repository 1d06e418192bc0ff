package repository

import (
	"context"
	"time"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, name, email, phone, password_hash, role, status, last_login, created_at, updated_at`

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	var phone *string
	if u.Phone() != nil {
		v := u.Phone().Value()
		phone = &v
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, email, phone, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID(), u.Name(), u.Email().Value(), pgconv.StringPtrToPgtype(phone), u.PasswordHash(), string(u.Role()), string(u.Status()),
	)
	if err != nil {
		wrapped := infra.WrapRepoErr("failed to create user", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) {
			return errs.Wrap(user.ErrEmailTaken, "create user")
		}
		return wrapped
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.Value())
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Update persists the administrable fields.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role = $2, status = $3, updated_at = $4 WHERE id = $1`,
		u.ID(), string(u.Role()), string(u.Status()), u.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// LockByID takes the row lock so concurrent admin edits serialize.
func (r *UserRepository) LockByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	return scanUser(row)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`, userID, at)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                   uuid.UUID
		name, email, hash    string
		role, status         string
		phone                pgtype.Text
		lastLogin            pgtype.Timestamptz
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &email, &phone, &hash, &role, &status, &lastLogin, &createdAt, &updatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, infra.WrapRepoErr("failed to scan user", err)
	}

	mail, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	var ph *user.Phone
	if p := pgconv.StringPtrFromPgtype(phone); p != nil {
		v, err := user.NewPhone(*p)
		if err == nil {
			ph = &v
		}
	}

	return user.ReconstructUser(
		id, name, mail, ph, hash,
		user.Role(role), user.Status(status),
		pgconv.TimePtrFromPgtype(lastLogin),
		createdAt, updatedAt,
	), nil
}
