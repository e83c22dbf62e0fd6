package tx

import (
	"context"
	"database/sql"

	trmsql "github.com/avito-tech/go-transaction-manager/sql"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
)

// Manager инкапсулирует логику управления транзакциями.
// SQLite сериализует пишущие транзакции сам, уровень изоляции не настраиваем.
type Manager struct {
	internal *manager.Manager
}

func New(db *sql.DB) *Manager {
	return &Manager{
		internal: manager.Must(trmsql.NewDefaultFactory(db)),
	}
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.internal.Do(ctx, fn)
}
