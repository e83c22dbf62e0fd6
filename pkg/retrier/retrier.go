package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

// Policy выбирает форму паузы между попытками.
type Policy int

const (
	// Exponential - растущая пауза с джиттером (REST-шлюз, пинги зависимостей).
	Exponential Policy = iota
	// Constant - фиксированная пауза InitialInterval (переподключение канала).
	Constant
)

type Config struct {
	Policy Policy

	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// 0 - без ограничения по количеству, действует только MaxElapsedTime
	MaxRetries uint64

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc
}
