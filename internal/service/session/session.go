package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"ridersync/internal/entities"
)

type Service struct {
	gateway    Gateway
	repository Repository
	txManager  TxManager
}

func New(gateway Gateway, repository Repository, txManager TxManager) *Service {
	return &Service{
		gateway:    gateway,
		repository: repository,
		txManager:  txManager,
	}
}

// Login входит на сервере и заменяет сохраненную сессию в одной транзакции.
func (s *Service) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingLogin
	}

	session, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repository.Delete(ctx); err != nil {
			return fmt.Errorf("drop previous session: %w", err)
		}
		if err := s.repository.Insert(ctx, *session); err != nil {
			return fmt.Errorf("store session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Signup регистрирует курьера. Университет берется только из списка сервера, сессию регистрация не создает.
func (s *Service) Signup(ctx context.Context, req entities.Signup) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.University = strings.TrimSpace(req.University)
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" || req.University == "" {
		return "", ErrIncompleteSignup
	}

	universities, err := s.Universities(ctx)
	if err != nil {
		return "", err
	}
	if !slices.ContainsFunc(universities, func(u entities.University) bool { return u.Name == req.University }) {
		return "", fmt.Errorf("%w: %s", ErrUnknownUniversity, req.University)
	}

	riderID, err := s.gateway.Signup(ctx, req)
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}
	return riderID, nil
}

func (s *Service) Universities(ctx context.Context) ([]entities.University, error) {
	universities, err := s.gateway.Universities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	return universities, nil
}

func (s *Service) Current(ctx context.Context) (*entities.Session, error) {
	session, err := s.repository.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotSignedIn) {
			return nil, ErrNotSignedIn
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

// Logout стирает сессию. Повторный выход не ошибка.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.repository.Delete(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ResolveRider находит профиль вошедшего курьера: от него зависят университет и баланс.
func (s *Service) ResolveRider(ctx context.Context) (entities.Rider, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return entities.Rider{}, err
	}

	riders, err := s.gateway.FetchRiders(ctx)
	if err != nil {
		return entities.Rider{}, fmt.Errorf("resolve rider: %w", err)
	}

	for _, r := range riders {
		if r.ID == session.RiderID {
			return r, nil
		}
	}
	return entities.Rider{}, fmt.Errorf("%w: %s", ErrRiderNotFound, session.RiderID)
}
