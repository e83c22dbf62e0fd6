//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=session_test
package session

import (
	"context"

	"ridersync/internal/entities"
)

type Gateway interface {
	Login(ctx context.Context, email, password string) (*entities.Session, error)
	FetchRiders(ctx context.Context) ([]entities.Rider, error)
	Signup(ctx context.Context, req entities.Signup) (string, error)
	Universities(ctx context.Context) ([]entities.University, error)
}

type Repository interface {
	Get(ctx context.Context) (*entities.Session, error)
	Insert(ctx context.Context, session entities.Session) error
	Delete(ctx context.Context) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
