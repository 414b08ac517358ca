package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestExistsOverlapping(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	professionalID := uuid.New()
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments"`).
		WithArgs(professionalID, entity.AppointmentStatusCancelled, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsOverlapping(context.Background(), db, professionalID, start, end, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsOverlapping_ExcludesAppointmentUnderEdit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	professionalID := uuid.New()
	excludeID := uuid.New()
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments"`).
		WithArgs(professionalID, entity.AppointmentStatusCancelled, end, start, excludeID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsOverlapping(context.Background(), db, professionalID, start, end, excludeID)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_ReportsAffectedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := repo.UpdateStatus(context.Background(), db, id,
		entity.AppointmentStatusScheduled, entity.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err = repo.UpdateStatus(context.Background(), db, id,
		entity.AppointmentStatusScheduled, entity.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFoundReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	appointment, err := repo.FindByID(context.Background(), db, id)
	require.NoError(t, err)
	assert.Nil(t, appointment)
	assert.NoError(t, mock.ExpectationsWereMet())
}
