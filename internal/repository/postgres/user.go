package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, email, password_hash, image_url, role, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row scanner) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.ImageURL,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, username, email, password_hash, image_url, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.ImageURL, string(user.Role),
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", mapError(err))
	}
	return saved, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", mapError(err))
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", mapError(err))
	}
	return user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, username, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	query := `UPDATE users
			  SET username = $2, email = $3, password_hash = $4, image_url = $5, role = $6, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.ImageURL, string(user.Role),
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", mapError(err))
	}
	return saved, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, p model.Pagination) ([]model.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users
			  ORDER BY created_at DESC, id
			  LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}
