package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/db"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/dberrors"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// AdminRepository handles administrator accounts
type AdminRepository struct {
	db db.Querier
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(q db.Querier) *AdminRepository {
	return &AdminRepository{db: q}
}

// Create inserts a new admin and fills in its id and creation time
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	sql, args, err := psql.Insert("admins").
		Columns("username", "password").
		Values(admin.Username, admin.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return apperrors.NewStoreError("create admin", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "admins_username_key") {
			return apperrors.ErrAdminAlreadyExists
		}
		logger.Error().Err(err).Str("username", admin.Username).Msg("Error executing create admin query")
		return apperrors.NewStoreError("create admin", err)
	}
	return nil
}

// GetByUsername fetches an admin by username
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	sql, args, err := psql.Select("id", "username", "password", "created_at").
		From("admins").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("get admin", err)
	}

	var a models.Admin
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error executing get admin query")
		return nil, apperrors.NewStoreError("get admin", err)
	}
	return &a, nil
}

// Count returns the number of admin accounts
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM admins").Scan(&n); err != nil {
		logger.Error().Err(err).Msg("Error counting admins")
		return 0, apperrors.NewStoreError("count admins", err)
	}
	return n, nil
}
