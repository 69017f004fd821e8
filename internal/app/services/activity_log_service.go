package services

import (
	"context"
	"time"

	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/repositories"
	"github.com/yigit/sims/internal/pkg/logger"
)

// DefaultRecentLogCount is used when GetRecentLogs is asked for zero or fewer entries.
const DefaultRecentLogCount = 50

// logWriteTimeout bounds an activity insert once it is detached from the request.
const logWriteTimeout = 30 * time.Second

// Activity actions and entity types written by the HTTP layer.
const (
	ActionCreate         = "Create"
	ActionUpdate         = "Update"
	ActionDelete         = "Delete"
	ActionLogin          = "Login"
	ActionLogout         = "Logout"
	ActionAssign         = "Assign"
	ActionRemove         = "Remove"
	ActionGrade          = "Grade"
	ActionChangePassword = "ChangePassword"

	EntityUser           = "User"
	EntityStudent        = "Student"
	EntityCourse         = "Course"
	EntityEnrollment     = "Enrollment"
	EntityAuthentication = "Authentication"
)

// ActivityEntry is one audit record to append. UserID nil marks a system action.
type ActivityEntry struct {
	UserID      *int64
	Username    string
	Action      string
	EntityType  string
	EntityID    *int64
	Description string
	IPAddress   string
}

// ActivityLogService records and reads the audit trail.
type ActivityLogService interface {
	// LogActivity appends entry. It never fails: storage errors are logged and dropped.
	LogActivity(ctx context.Context, entry ActivityEntry)
	// The paged readers take a 1-based page and return that page plus the total row count.
	GetAllLogs(ctx context.Context, page, size int) ([]*models.ActivityLog, int64, error)
	GetLogsByUserID(ctx context.Context, userID int64, page, size int) ([]*models.ActivityLog, int64, error)
	GetLogsByAction(ctx context.Context, action string, page, size int) ([]*models.ActivityLog, int64, error)
	GetRecentLogs(ctx context.Context, count int) ([]*models.ActivityLog, error)
}

type activityLogServiceImpl struct {
	logRepo repositories.IActivityLogRepository
	now     func() time.Time
}

func NewActivityLogService(logRepo repositories.IActivityLogRepository) ActivityLogService {
	return &activityLogServiceImpl{logRepo: logRepo, now: time.Now}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *activityLogServiceImpl) LogActivity(ctx context.Context, entry ActivityEntry) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("action", entry.Action).Msg("Activity logging panicked")
		}
	}()

	record := &models.ActivityLog{
		UserID:      entry.UserID,
		Username:    entry.Username,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Description: optional(entry.Description),
		IPAddress:   optional(entry.IPAddress),
		CreatedAt:   s.now().UTC(),
	}

	// The caller's own work is already done; a cancelled request must not drop the record.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logWriteTimeout)
	defer cancel()
	if err := s.logRepo.Create(writeCtx, record); err != nil {
		logger.Warn().Err(err).
			Str("username", entry.Username).
			Str("action", entry.Action).
			Str("entityType", entry.EntityType).
			Msg("Failed to write activity log")
	}
}

func pageBounds(page, size int) (limit, offset uint64) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	return uint64(size), uint64(page-1) * uint64(size)
}

func (s *activityLogServiceImpl) GetAllLogs(ctx context.Context, page, size int) ([]*models.ActivityLog, int64, error) {
	total, err := s.logRepo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageBounds(page, size)
	logs, err := s.logRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *activityLogServiceImpl) GetLogsByUserID(ctx context.Context, userID int64, page, size int) ([]*models.ActivityLog, int64, error) {
	total, err := s.logRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageBounds(page, size)
	logs, err := s.logRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *activityLogServiceImpl) GetLogsByAction(ctx context.Context, action string, page, size int) ([]*models.ActivityLog, int64, error) {
	total, err := s.logRepo.CountByAction(ctx, action)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageBounds(page, size)
	logs, err := s.logRepo.GetByAction(ctx, action, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *activityLogServiceImpl) GetRecentLogs(ctx context.Context, count int) ([]*models.ActivityLog, error) {
	if count <= 0 {
		count = DefaultRecentLogCount
	}
	return s.logRepo.GetRecent(ctx, uint64(count))
}
