package repositories

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyLogRows() *pgxmock.Rows {
	return pgxmock.NewRows(activityLogColumns)
}

func TestActivityLogRepository_GetAll_PagesInSQL(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewActivityLogRepository(pg)

	mock.ExpectQuery(`FROM activity_logs ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 20$`).
		WillReturnRows(emptyLogRows())

	logs, err := repo.GetAll(context.Background(), 10, 20)

	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityLogRepository_GetByUserID_PagesInSQL(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewActivityLogRepository(pg)

	mock.ExpectQuery(`FROM activity_logs WHERE user_id = \$1 ORDER BY created_at DESC, id DESC LIMIT 5 OFFSET 0$`).
		WithArgs(int64(4)).
		WillReturnRows(emptyLogRows())

	_, err := repo.GetByUserID(context.Background(), 4, 5, 0)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityLogRepository_GetByAction_PagesInSQL(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewActivityLogRepository(pg)

	mock.ExpectQuery(`FROM activity_logs WHERE action = \$1 ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 40$`).
		WithArgs("Create").
		WillReturnRows(emptyLogRows())

	_, err := repo.GetByAction(context.Background(), "Create", 20, 40)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityLogRepository_Counts(t *testing.T) {
	mock, pg := newMockDB(t)
	repo := NewActivityLogRepository(pg)
	ctx := context.Background()

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM activity_logs$`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))
	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM activity_logs WHERE user_id = \$1$`).WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM activity_logs WHERE action = \$1$`).WithArgs("Login").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)

	total, err = repo.CountByUserID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)

	total, err = repo.CountByAction(ctx, "Login")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	assert.NoError(t, mock.ExpectationsWereMet())
}
