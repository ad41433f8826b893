package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	SetResetToken(ctx context.Context, email, token string, expires int64) error
	ClearResetToken(ctx context.Context, email string) error
	DeleteCascade(ctx context.Context, id int64) error
}

type userRepository struct {
	*SQLiteRepository
}

func NewUserRepository(db *sql.DB, cfg config.DatabaseConfig, logger zerolog.Logger) UserRepository {
	return &userRepository{
		SQLiteRepository: NewSQLiteRepository(db, cfg, logger),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, password, role)
		VALUES (?, ?, ?, ?)
	`

	res, err := r.Exec(ctx, query, user.Name, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

const userColumns = `id, name, email, password, role, reset_token, reset_expires`

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.ResetToken,
		&user.ResetExpires,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = ?`
	return r.scanUser(r.QueryRow(ctx, query, token))
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, name, email, role FROM users ORDER BY id ASC`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	query := `UPDATE users SET password = ? WHERE email = ?`
	_, err := r.Exec(ctx, query, passwordHash, email)
	return err
}

func (r *userRepository) SetResetToken(ctx context.Context, email, token string, expires int64) error {
	query := `UPDATE users SET reset_token = ?, reset_expires = ? WHERE email = ?`
	_, err := r.Exec(ctx, query, token, expires, email)
	return err
}

func (r *userRepository) ClearResetToken(ctx context.Context, email string) error {
	query := `UPDATE users SET reset_token = NULL, reset_expires = NULL WHERE email = ?`
	_, err := r.Exec(ctx, query, email)
	return err
}

// DeleteCascade removes the user's submissions, event logs and the user row
// in one transaction, so a crash cannot strand orphaned rows.
func (r *userRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM submissions WHERE student_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_logs WHERE student_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		return err
	})
}
