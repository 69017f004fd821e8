package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/db"
)

var activityLogColumns = []string{
	"id", "user_id", "username", "action", "entity_type", "entity_id", "description", "ip_address", "created_at",
}

// ActivityLogRepository appends to and reads the activity_logs table. It never
// updates or deletes rows.
type ActivityLogRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

func NewActivityLogRepository(pg *db.PostgresDB) *ActivityLogRepository {
	return &ActivityLogRepository{db: pg, sb: newStatementBuilder()}
}

func (r *ActivityLogRepository) Create(ctx context.Context, log *models.ActivityLog) error {
	sql, args, err := r.sb.Insert("activity_logs").
		Columns("user_id", "username", "action", "entity_type", "entity_id", "description", "ip_address", "created_at").
		Values(log.UserID, log.Username, log.Action, log.EntityType, log.EntityID, log.Description, log.IPAddress, log.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create activity log query: %w", err)
	}

	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&log.ID); err != nil {
		return fmt.Errorf("error creating activity log: %w", err)
	}
	return nil
}

func (r *ActivityLogRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.ActivityLog, error) {
	sql, args, err := builder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build activity log query: %w", err)
	}

	rows, err := r.db.Conn().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying activity logs: %w", err)
	}
	defer rows.Close()

	logs := []*models.ActivityLog{}
	for rows.Next() {
		l := &models.ActivityLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.Username, &l.Action, &l.EntityType,
			&l.EntityID, &l.Description, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning activity log row: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity log rows: %w", err)
	}
	return logs, nil
}

func (r *ActivityLogRepository) selectLogs() squirrel.SelectBuilder {
	return r.sb.Select(activityLogColumns...).From("activity_logs")
}

func (r *ActivityLogRepository) count(ctx context.Context, where squirrel.Sqlizer) (int64, error) {
	builder := r.sb.Select("COUNT(*)").From("activity_logs")
	if where != nil {
		builder = builder.Where(where)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count activity logs query: %w", err)
	}

	var n int64
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting activity logs: %w", err)
	}
	return n, nil
}

func (r *ActivityLogRepository) GetAll(ctx context.Context, limit, offset uint64) ([]*models.ActivityLog, error) {
	return r.list(ctx, r.selectLogs().Limit(limit).Offset(offset))
}

func (r *ActivityLogRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, nil)
}

func (r *ActivityLogRepository) GetByUserID(ctx context.Context, userID int64, limit, offset uint64) ([]*models.ActivityLog, error) {
	return r.list(ctx, r.selectLogs().Where(squirrel.Eq{"user_id": userID}).Limit(limit).Offset(offset))
}

func (r *ActivityLogRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, squirrel.Eq{"user_id": userID})
}

func (r *ActivityLogRepository) GetByAction(ctx context.Context, action string, limit, offset uint64) ([]*models.ActivityLog, error) {
	return r.list(ctx, r.selectLogs().Where(squirrel.Eq{"action": action}).Limit(limit).Offset(offset))
}

func (r *ActivityLogRepository) CountByAction(ctx context.Context, action string) (int64, error) {
	return r.count(ctx, squirrel.Eq{"action": action})
}

func (r *ActivityLogRepository) GetRecent(ctx context.Context, count uint64) ([]*models.ActivityLog, error) {
	return r.list(ctx, r.selectLogs().Limit(count))
}
