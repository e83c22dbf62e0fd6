package session

import "ridersync/internal/entities"

func ToDomain(s *SessionDB) *entities.Session {
	if s == nil {
		return nil
	}
	return &entities.Session{
		RiderID:    s.RiderID,
		Token:      s.Token,
		SignedInAt: s.SignedInAt.UTC(),
	}
}

func FromDomain(s *entities.Session) *SessionDB {
	if s == nil {
		return nil
	}
	return &SessionDB{
		RiderID:    s.RiderID,
		Token:      s.Token,
		SignedInAt: s.SignedInAt.UTC(),
	}
}
