package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumahr/lms-backend-go/internal/domain/leave"
	"github.com/lumahr/lms-backend-go/internal/pkg/database"
)

type auditLogRepositoryImpl struct {
	db *database.DB
}

func NewAuditLogRepository(db *database.DB) leave.AuditLogRepository {
	return &auditLogRepositoryImpl{db: db}
}

// Create implements leave.AuditLogRepository.
func (r *auditLogRepositoryImpl) Create(ctx context.Context, entry leave.AuditLog) (leave.AuditLog, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.NewString()
	query := `
		INSERT INTO leave_audit_logs (id, leave_request_id, action, actor_id, remarks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query,
		entry.ID, entry.LeaveRequestID, entry.Action, entry.ActorID, entry.Remarks,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return leave.AuditLog{}, fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return entry, nil
}

// GetByLeaveRequestID implements leave.AuditLogRepository.
func (r *auditLogRepositoryImpl) GetByLeaveRequestID(ctx context.Context, leaveRequestID string) ([]leave.AuditLog, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT al.id, al.leave_request_id, al.action, al.actor_id, al.remarks, al.created_at,
			TRIM(u.first_name || ' ' || u.last_name) AS actor_name
		FROM leave_audit_logs al
		JOIN users u ON u.id = al.actor_id
		WHERE al.leave_request_id = $1
		ORDER BY al.created_at ASC
	`
	rows, err := q.Query(ctx, query, leaveRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []leave.AuditLog
	for rows.Next() {
		var e leave.AuditLog
		if err := rows.Scan(&e.ID, &e.LeaveRequestID, &e.Action, &e.ActorID, &e.Remarks, &e.CreatedAt, &e.ActorName); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
