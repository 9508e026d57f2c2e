package repositories

import (
	"context"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/db"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
)

// ParameterRepository reads the rating criteria
type ParameterRepository struct {
	db db.Querier
}

// NewParameterRepository creates a new ParameterRepository
func NewParameterRepository(q db.Querier) *ParameterRepository {
	return &ParameterRepository{db: q}
}

// ListAll returns every parameter ordered by category then name
func (r *ParameterRepository) ListAll(ctx context.Context) ([]models.Parameter, error) {
	sql, args, err := psql.Select("id", "category", "parameter_name").
		From("parameters").
		OrderBy("category", "parameter_name", "id").
		ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("list parameters", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list parameters query")
		return nil, apperrors.NewStoreError("list parameters", err)
	}
	defer rows.Close()

	params := make([]models.Parameter, 0)
	for rows.Next() {
		var p models.Parameter
		if err := rows.Scan(&p.ID, &p.Category, &p.Name); err != nil {
			return nil, apperrors.NewStoreError("list parameters", err)
		}
		params = append(params, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list parameters", err)
	}
	return params, nil
}

// InsertMissing adds the (category, name) pairs not yet present
func (r *ParameterRepository) InsertMissing(ctx context.Context, params []models.Parameter) (int64, error) {
	if len(params) == 0 {
		return 0, nil
	}
	ib := psql.Insert("parameters").Columns("category", "parameter_name")
	for _, p := range params {
		ib = ib.Values(p.Category, p.Name)
	}
	sql, args, err := ib.Suffix("ON CONFLICT (category, parameter_name) DO NOTHING").ToSql()
	if err != nil {
		return 0, apperrors.NewStoreError("insert parameters", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error inserting default parameters")
		return 0, apperrors.NewStoreError("insert parameters", err)
	}
	return tag.RowsAffected(), nil
}
