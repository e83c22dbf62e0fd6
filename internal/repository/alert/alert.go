package alert

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"ridersync/internal/entities"
	"ridersync/internal/repository"
	"ridersync/internal/service/alerts"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var columns = []string{
	"id", "kind", "title", "lines", "order_id", "short_id", "earning",
	"action_label", "action_target", "created_at", "expires_at", "dismissed_at",
}

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Append(ctx context.Context, a entities.Alert) error {
	model, err := FromDomain(&a)
	if err != nil {
		return fmt.Errorf("unexpected alert repository append error: %w", err)
	}

	query, args, err := qb.
		Insert("alert_history").
		Columns(columns...).
		Values(
			model.ID,
			model.Kind,
			model.Title,
			model.Lines,
			model.OrderID,
			model.ShortID,
			model.Earning,
			model.ActionLabel,
			model.ActionTarget,
			model.CreatedAt,
			model.ExpiresAt,
			model.DismissedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected alert repository append error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		if repository.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", alerts.ErrDuplicateAlert, a.ID)
		}
		return fmt.Errorf("unexpected alert repository append error: %w", err)
	}
	return nil
}

func (r *Repository) MarkDismissed(ctx context.Context, alertID string, at time.Time) error {
	query, args, err := qb.
		Update("alert_history").
		Set("dismissed_at", at.UTC()).
		Where(sq.Eq{"id": alertID}).
		Where(sq.Eq{"dismissed_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected alert repository dismiss error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected alert repository dismiss error: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected alert repository dismiss error: %w", err)
	}
	if rowsAffected == 0 {
		return alerts.ErrAlertNotFound
	}
	return nil
}

// List - последние limit уведомлений, новые первыми.
func (r *Repository) List(ctx context.Context, limit int) ([]entities.Alert, error) {
	query, args, err := qb.
		Select(columns...).
		From("alert_history").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected alert repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected alert repository list error: %w", err)
	}
	defer rows.Close()

	var result []entities.Alert
	for rows.Next() {
		var model AlertDB
		err := rows.Scan(
			&model.ID,
			&model.Kind,
			&model.Title,
			&model.Lines,
			&model.OrderID,
			&model.ShortID,
			&model.Earning,
			&model.ActionLabel,
			&model.ActionTarget,
			&model.CreatedAt,
			&model.ExpiresAt,
			&model.DismissedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected alert repository scan error: %w", err)
		}

		alert, err := ToDomain(&model)
		if err != nil {
			return nil, err
		}
		result = append(result, *alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected alert repository rows error: %w", err)
	}

	return result, nil
}
