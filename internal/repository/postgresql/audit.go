package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
)

type auditSink struct {
	db *database.DB
}

func NewAuditSink(db *database.DB) audit.Sink {
	return &auditSink{db: db}
}

func (s *auditSink) Record(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, s.db)

	changeSet, err := json.Marshal(entry.ChangeSet)
	if err != nil {
		return fmt.Errorf("failed to marshal change set: %w", err)
	}

	query := `
		INSERT INTO audit_entries (id, entity, entity_id, change_set, actor_id, at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := q.Exec(ctx, query,
		entry.ID, entry.Entity, entry.EntityID, changeSet, entry.ActorID, entry.At,
	); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}

func (s *auditSink) ListByRange(ctx context.Context, from, to time.Time) ([]audit.Entry, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, entity, entity_id, change_set, actor_id, at
		FROM audit_entries
		WHERE at >= $1 AND at <= $2
		ORDER BY at
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		var changeSet []byte
		if err := rows.Scan(
			&entry.ID, &entry.Entity, &entry.EntityID, &changeSet, &entry.ActorID, &entry.At,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if err := json.Unmarshal(changeSet, &entry.ChangeSet); err != nil {
			return nil, fmt.Errorf("failed to unmarshal change set: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit entries: %w", err)
	}

	return entries, nil
}
