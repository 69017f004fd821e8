package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/db"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/helpers"
	"github.com/yigit/sims/internal/pkg/logger"
)

var userColumns = []string{
	"id", "username", "password", "email", "phone", "role", "status", "created_at", "updated_at",
}

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

func NewUserRepository(pg *db.PostgresDB) *UserRepository {
	return &UserRepository{db: pg, sb: newStatementBuilder()}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	var email *string
	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &email, &user.Phone,
		&user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Email = helpers.StringValue(email)
	return user, nil
}

// Create inserts user and fills in its id and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.insert(ctx, r.db.Conn(), user)
}

func (r *UserRepository) insert(ctx context.Context, q db.Querier, user *models.User) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("users").
		Columns("username", "password", "email", "phone", "role", "status", "created_at", "updated_at").
		Values(user.Username, user.Password, helpers.NullIfEmpty(user.Email), user.Phone,
			string(user.Role), user.Status, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&user.ID); err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}
	user.CreatedAt, user.UpdatedAt = now, now
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.Conn().QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error getting user")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

// GetByEmail reports ErrUserNotFound for a blank email without querying.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ErrUserNotFound
	}
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.User, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Conn().Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying users")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// GetAll returns every user ordered by username.
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, r.sb.Select(userColumns...).From("users").OrderBy("username ASC"))
}

// GetByRole returns the active users with role, ordered by username.
func (r *UserRepository) GetByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	return r.list(ctx, r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role": string(role), "status": models.StatusActive}).
		OrderBy("username ASC"))
}

// Update overwrites every mutable column of user and stamps updated_at.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"username":   user.Username,
			"password":   user.Password,
			"email":      helpers.NullIfEmpty(user.Email),
			"phone":      user.Phone,
			"role":       string(user.Role),
			"status":     user.Status,
			"updated_at": now,
		}).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	cmdTag, err := r.db.Conn().Exec(ctx, sql, args...)
	if err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error updating user")
		return fmt.Errorf("error updating user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, password string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", password).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	cmdTag, err := r.db.Conn().Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes the user. It reports false when nothing matched.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, r.db.Conn(), id)
}

func (r *UserRepository) delete(ctx context.Context, q db.Querier, id int64) (bool, error) {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete user query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error deleting user")
		return false, fmt.Errorf("error deleting user: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *UserRepository) exists(ctx context.Context, where squirrel.Sqlizer) (bool, error) {
	sql, args, err := r.sb.Select("1").From("users").Where(where).Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build user exists query: %w", err)
	}

	var exists bool
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"username": username})
}

// EmailExists is false for a blank email.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	return r.exists(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var n int64
	if err := r.db.Conn().QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return n, nil
}
