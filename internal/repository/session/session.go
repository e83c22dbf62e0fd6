package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"ridersync/internal/entities"
	"ridersync/internal/repository"
	"ridersync/internal/service/session"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// singletonID - в таблице живет не больше одной сессии.
const singletonID = 1

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Get(ctx context.Context) (*entities.Session, error) {
	query, args, err := qb.
		Select("rider_id", "token", "signed_in_at").
		From("sessions").
		Where(sq.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected session repository get error: %w", err)
	}

	var sessionModel SessionDB
	err = r.querier.QueryRow(ctx, query, args...).
		Scan(
			&sessionModel.RiderID,
			&sessionModel.Token,
			&sessionModel.SignedInAt,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrNotSignedIn
		}
		return nil, fmt.Errorf("unexpected session repository get error: %w", err)
	}

	return ToDomain(&sessionModel), nil
}

func (r *Repository) Insert(ctx context.Context, s entities.Session) error {
	sessionModel := FromDomain(&s)

	query, args, err := qb.
		Insert("sessions").
		Columns("id", "rider_id", "token", "signed_in_at").
		Values(singletonID, sessionModel.RiderID, sessionModel.Token, sessionModel.SignedInAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected session repository insert error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		if repository.IsUniqueViolation(err) {
			return session.ErrSessionConflict
		}
		return fmt.Errorf("unexpected session repository insert error: %w", err)
	}
	return nil
}

// Delete идемпотентен: отсутствие сессии не ошибка.
func (r *Repository) Delete(ctx context.Context) error {
	query, args, err := qb.
		Delete("sessions").
		Where(sq.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected session repository delete error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected session repository delete error: %w", err)
	}
	return nil
}

// Token - bearer для REST-шлюза. Без сессии запросы уходят без авторизации.
func (r *Repository) Token(ctx context.Context) string {
	s, err := r.Get(ctx)
	if err != nil {
		return ""
	}
	return s.Token
}
