package alert

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"ridersync/internal/entities"
)

func ToDomain(a *AlertDB) (*entities.Alert, error) {
	if a == nil {
		return nil, nil
	}

	var lines []string
	if a.Lines != "" {
		if err := json.Unmarshal([]byte(a.Lines), &lines); err != nil {
			return nil, fmt.Errorf("decode alert lines %s: %w", a.ID, err)
		}
	}

	alert := &entities.Alert{
		ID:      a.ID,
		Kind:    entities.NotificationKind(a.Kind),
		Title:   a.Title,
		Lines:   lines,
		OrderID: a.OrderID,
		ShortID: a.ShortID,
		Earning: a.Earning,
		Action: entities.AlertAction{
			Label:  a.ActionLabel,
			Target: a.ActionTarget,
		},
		CreatedAt: a.CreatedAt.UTC(),
		ExpiresAt: a.ExpiresAt.UTC(),
	}
	if a.DismissedAt.Valid {
		dismissedAt := a.DismissedAt.Time.UTC()
		alert.DismissedAt = &dismissedAt
	}
	return alert, nil
}

func FromDomain(a *entities.Alert) (*AlertDB, error) {
	if a == nil {
		return nil, nil
	}

	lines := a.Lines
	if lines == nil {
		lines = []string{}
	}
	encoded, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode alert lines %s: %w", a.ID, err)
	}

	model := &AlertDB{
		ID:           a.ID,
		Kind:         a.Kind.String(),
		Title:        a.Title,
		Lines:        string(encoded),
		OrderID:      a.OrderID,
		ShortID:      a.ShortID,
		Earning:      a.Earning,
		ActionLabel:  a.Action.Label,
		ActionTarget: a.Action.Target,
		CreatedAt:    a.CreatedAt.UTC(),
		ExpiresAt:    a.ExpiresAt.UTC(),
	}
	if a.DismissedAt != nil {
		model.DismissedAt = sql.NullTime{Time: a.DismissedAt.UTC(), Valid: true}
	}
	return model, nil
}
