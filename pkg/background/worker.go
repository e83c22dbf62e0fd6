package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"ridersync/pkg/logger"
)

// Task - периодическая фоновая задача.
type Task interface {
	// TTL - интервал между запусками. TTL <= 0 означает "только прогрев".
	TTL() time.Duration

	Do(context.Context) error

	// Info - имя задачи для логов.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Worker крутит набор задач до отмены контекста.
type Worker struct {
	log   handlerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает задачи и запускает их периодическое выполнение.
//
// Прогрев - синхронный параллельный запуск каждой задачи по одному разу: ошибка или паника
// любой задачи на прогреве возвращается из New, и воркер не создается. Для синхронизатора
// заказов прогрев и есть первоначальная загрузка списка.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}

	if err := worker.warmUp(ctx); err != nil {
		return nil, err
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go func(task Task) {
			defer worker.wg.Done()
			worker.runPeriodic(ctx, task)
		}(task)
	}

	return worker, nil
}

// Wait блокируется, пока все периодические циклы не завершатся (после отмены контекста New).
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) warmUp(ctx context.Context) error {
	if len(w.tasks) == 0 {
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, task := range w.tasks {
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					err = fmt.Errorf("task %q warm-up panic: %v", task.Info(), r)
					w.log.Error("task panic during warm-up",
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", string(stack)),
					)
				}
			}()

			w.log.Info("warming up task",
				logger.NewField("task", task.Info()),
			)
			return task.Do(groupCtx)
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("warm up tasks: %w", err)
	}
	return nil
}

func (w *Worker) runPeriodic(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Info("periodic execution disabled",
			logger.NewField("task", task.Info()),
		)
		return
	}

	taskLog := w.log.With(
		logger.NewField("task", task.Info()),
		logger.NewField("ttl", ttl.String()),
	)
	taskLog.Info("starting periodic execution")

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			taskLog.Info("stopping task (context cancelled)")
			return
		case <-ticker.C:
			w.runOnce(ctx, task)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
		}
	}()

	if err := task.Do(ctx); err != nil {
		w.log.Warn("background task failed",
			logger.NewField("task", task.Info()),
			logger.NewField("error", err),
		)
	}
}
