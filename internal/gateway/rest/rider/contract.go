//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_test
package rider

import (
	"context"
	"net/http"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

// TokenSource отдает bearer-токен текущей сессии. Пустая строка - запрос без авторизации.
type TokenSource interface {
	Token(ctx context.Context) string
}
