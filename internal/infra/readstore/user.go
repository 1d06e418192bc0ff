package readstore

import (
	"context"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/pgconv"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const userViewColumns = `id, name, email, phone, role, status, last_login, created_at`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	v, err := scanUserView(r.db.QueryRow(ctx, `SELECT `+userViewColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return v, nil
}

// List orders newest accounts first.
func (r *UserReadStore) List(ctx context.Context, f queries.UserFilter) ([]*queries.UserView, int, error) {
	var w whereBuilder
	if len(f.Roles) > 0 {
		roles := make([]string, len(f.Roles))
		for i, role := range f.Roles {
			roles[i] = string(role)
		}
		w.add("role = ANY(?)", roles)
	}
	if f.Status != nil {
		w.add("status = ?", string(*f.Status))
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		w.add("(name ILIKE ? OR email ILIKE ? OR phone ILIKE ?)", p, p, p)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count users", err)
	}

	limit, args := w.page(f.Limit, f.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+userViewColumns+` FROM users`+w.sql()+` ORDER BY created_at DESC, id`+limit, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	out := make([]*queries.UserView, 0, f.Limit)
	for rows.Next() {
		v, err := scanUserView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan user", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate users", err)
	}
	return out, total, nil
}

func scanUserView(row pgx.Row) (*queries.UserView, error) {
	var (
		v         queries.UserView
		phone     pgtype.Text
		lastLogin pgtype.Timestamptz
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Email, &phone, &v.Role, &v.Status, &lastLogin, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.Phone = pgconv.StringPtrFromPgtype(phone)
	v.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &v, nil
}
