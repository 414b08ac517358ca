package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	"github.com/guilhermelvc/karvagenda/internal/service"
)

// Monday
var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

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

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type appointmentRepoStub struct {
	byID      map[uuid.UUID]*entity.Appointment
	dayAppts  []entity.Appointment
	overlap   bool
	excludeID uuid.UUID
	affected  int64
}

func newAppointmentRepoStub() *appointmentRepoStub {
	return &appointmentRepoStub{byID: map[uuid.UUID]*entity.Appointment{}}
}

func (s *appointmentRepoStub) Create(ctx context.Context, db *gorm.DB, a *entity.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	copied := *a
	s.byID[a.ID] = &copied
	return nil
}

func (s *appointmentRepoStub) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if a, ok := s.byID[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (s *appointmentRepoStub) FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	return s.dayAppts, nil
}

func (s *appointmentRepoStub) FindByProfessionalAndDateRange(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	return s.dayAppts, nil
}

func (s *appointmentRepoStub) ExistsOverlapping(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	s.excludeID = excludeID
	return s.overlap, nil
}

func (s *appointmentRepoStub) Update(ctx context.Context, db *gorm.DB, a *entity.Appointment) error {
	copied := *a
	s.byID[a.ID] = &copied
	return nil
}

func (s *appointmentRepoStub) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	if s.affected > 0 {
		if a, ok := s.byID[id]; ok {
			a.Status = to
		}
	}
	return s.affected, nil
}

func (s *appointmentRepoStub) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := s.byID[id]; !ok {
		return 0, nil
	}
	delete(s.byID, id)
	return 1, nil
}

func (s *appointmentRepoStub) CountByStatus(ctx context.Context, db *gorm.DB, from, to time.Time) (map[entity.AppointmentStatus]int64, error) {
	return map[entity.AppointmentStatus]int64{}, nil
}

func (s *appointmentRepoStub) Revenue(ctx context.Context, db *gorm.DB, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *appointmentRepoStub) TopServices(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) ([]entity.ServiceUsage, error) {
	return nil, nil
}

func (s *appointmentRepoStub) AverageRating(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) (float64, int64, error) {
	return 0, 0, nil
}

type clientRepoStub struct {
	client *entity.Client
}

func (s *clientRepoStub) Create(ctx context.Context, db *gorm.DB, c *entity.Client) error {
	return nil
}

func (s *clientRepoStub) FindAll(ctx context.Context, db *gorm.DB, search string, limit, offset int) ([]entity.Client, int64, error) {
	return nil, 0, nil
}

func (s *clientRepoStub) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Client, error) {
	if s.client != nil && s.client.ID == id {
		return s.client, nil
	}
	return nil, nil
}

func (s *clientRepoStub) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Client, error) {
	return nil, nil
}

func (s *clientRepoStub) Update(ctx context.Context, db *gorm.DB, c *entity.Client) error {
	return nil
}

func (s *clientRepoStub) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

type professionalRepoStub struct {
	professional *entity.Professional
}

func (s *professionalRepoStub) Create(ctx context.Context, db *gorm.DB, p *entity.Professional) error {
	return nil
}

func (s *professionalRepoStub) FindAll(ctx context.Context, db *gorm.DB, specialty string) ([]entity.Professional, error) {
	return nil, nil
}

func (s *professionalRepoStub) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Professional, error) {
	if s.professional != nil && s.professional.ID == id {
		return s.professional, nil
	}
	return nil, nil
}

func (s *professionalRepoStub) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Professional, error) {
	return nil, nil
}

func (s *professionalRepoStub) Update(ctx context.Context, db *gorm.DB, p *entity.Professional) error {
	return nil
}

func (s *professionalRepoStub) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

type serviceRepoStub struct {
	service *entity.Service
}

func (s *serviceRepoStub) Create(ctx context.Context, db *gorm.DB, svc *entity.Service) error {
	return nil
}

func (s *serviceRepoStub) FindAll(ctx context.Context, db *gorm.DB, category string, activeOnly bool, limit, offset int) ([]entity.Service, int64, error) {
	return nil, 0, nil
}

func (s *serviceRepoStub) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	if s.service != nil && s.service.ID == id {
		return s.service, nil
	}
	return nil, nil
}

func (s *serviceRepoStub) Update(ctx context.Context, db *gorm.DB, svc *entity.Service) error {
	return nil
}

func (s *serviceRepoStub) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

type auditServiceStub struct{}

func (auditServiceStub) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	return nil
}

func (auditServiceStub) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return nil
}

func (auditServiceStub) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	return nil
}

type whatsAppStub struct {
	messages []string
}

func (s *whatsAppStub) SendText(ctx context.Context, number, text string) error {
	s.messages = append(s.messages, text)
	return nil
}

type appointmentFixture struct {
	usecase      AppointmentUsecase
	mock         sqlmock.Sqlmock
	appointments *appointmentRepoStub
	client       *entity.Client
	professional *entity.Professional
	service      *entity.Service
	whatsApp     *whatsAppStub
	redis        *miniredis.Miniredis
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	db, mock := newMockDB(t)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	log := newTestLogger()

	client := &entity.Client{
		ID:       uuid.New(),
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		WhatsApp: "5511999990000",
	}
	professional := &entity.Professional{
		ID:    uuid.New(),
		Name:  "Carla Lima",
		Email: "carla@example.com",
		WorkSchedules: entity.WorkScheduleList{
			{Weekday: 1, Start: "09:00", End: "12:00"},
		},
	}
	active := true
	svc := &entity.Service{
		ID:              uuid.New(),
		Name:            "Haircut",
		DurationMinutes: 60,
		Price:           decimal.NewFromInt(80),
		Active:          &active,
	}

	appointments := newAppointmentRepoStub()
	whatsApp := &whatsAppStub{}

	uc := NewAppointmentUsecase(
		db, log, time.UTC, 30,
		appointments,
		&clientRepoStub{client: client},
		&professionalRepoStub{professional: professional},
		&serviceRepoStub{service: svc},
		service.NewBookingLockService(redisClient, log),
		auditServiceStub{},
		whatsApp,
	)

	return &appointmentFixture{
		usecase:      uc,
		mock:         mock,
		appointments: appointments,
		client:       client,
		professional: professional,
		service:      svc,
		whatsApp:     whatsApp,
		redis:        mr,
	}
}

func TestGetAvailableSlots(t *testing.T) {
	f := newAppointmentFixture(t)

	resp, err := f.usecase.GetAvailableSlots(context.Background(), f.professional.ID, f.service.ID, "2026-03-02")
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, resp.Slots)
	assert.Equal(t, "2026-03-02", resp.Date)
}

func TestGetAvailableSlots_SkipsBookedTimes(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.dayAppts = []entity.Appointment{
		{
			ID:              uuid.New(),
			ProfessionalID:  f.professional.ID,
			StartsAt:        testDay.Add(10 * time.Hour),
			DurationMinutes: 60,
			Status:          entity.AppointmentStatusScheduled,
		},
	}

	resp, err := f.usecase.GetAvailableSlots(context.Background(), f.professional.ID, f.service.ID, "2026-03-02")
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "11:00"}, resp.Slots)
}

func TestGetAvailableSlots_InvalidDate(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.GetAvailableSlots(context.Background(), f.professional.ID, f.service.ID, "02/03/2026")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestGetAvailableSlots_RejectsMalformedSchedule(t *testing.T) {
	f := newAppointmentFixture(t)
	f.professional.WorkSchedules = entity.WorkScheduleList{
		{Weekday: 1, Start: "25:00", End: "12:00"},
	}

	_, err := f.usecase.GetAvailableSlots(context.Background(), f.professional.ID, f.service.ID, "2026-03-02")
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestGetAvailableSlots_UnknownProfessional(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.GetAvailableSlots(context.Background(), uuid.New(), f.service.ID, "2026-03-02")
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestCreateAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		ClientID:       f.client.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       testDay.Add(10 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentStatusScheduled), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Len(t, f.whatsApp.messages, 1)
	assert.NoError(t, f.mock.ExpectationsWereMet())

	// Lock released after the booking
	assert.False(t, f.redis.Exists(service.RedisBookingLockPrefix+f.professional.ID.String()))
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.dayAppts = []entity.Appointment{
		{
			ID:              uuid.New(),
			ProfessionalID:  f.professional.ID,
			StartsAt:        testDay.Add(10 * time.Hour),
			DurationMinutes: 60,
			Status:          entity.AppointmentStatusScheduled,
		},
	}

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		ClientID:       f.client.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       testDay.Add(10*time.Hour + 30*time.Minute),
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.whatsApp.messages)
}

func TestCreateAppointment_IgnoresCancelledBooking(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.dayAppts = []entity.Appointment{
		{
			ID:              uuid.New(),
			ProfessionalID:  f.professional.ID,
			StartsAt:        testDay.Add(10 * time.Hour),
			DurationMinutes: 60,
			Status:          entity.AppointmentStatusCancelled,
		},
	}
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		ClientID:       f.client.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       testDay.Add(10 * time.Hour),
	})
	require.NoError(t, err)
}

func TestCreateAppointment_DayOff(t *testing.T) {
	f := newAppointmentFixture(t)
	f.professional.DaysOff = entity.DaysOffList{0}

	// Sunday is a recurring day off
	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		ClientID:       f.client.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       testDay.AddDate(0, 0, -1).Add(10 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotDayOff)
}

func TestCreateAppointment_NoWindowThatWeekday(t *testing.T) {
	f := newAppointmentFixture(t)

	// Sunday has no work schedule entry and is not a configured day off
	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		ClientID:       f.client.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       testDay.AddDate(0, 0, -1).Add(10 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotOutsideHours)
}

func TestCreateAppointment_OutsideHours(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		ClientID:       f.client.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       testDay.Add(18 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotOutsideHours)
}

func TestCreateAppointment_InactiveService(t *testing.T) {
	f := newAppointmentFixture(t)
	inactive := false
	f.service.Active = &inactive

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		ClientID:       f.client.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       testDay.Add(10 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestCreateAppointment_LockHeld(t *testing.T) {
	f := newAppointmentFixture(t)
	f.redis.Set(service.RedisBookingLockPrefix+f.professional.ID.String(), "other-request")

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		ClientID:       f.client.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       testDay.Add(10 * time.Hour),
	})
	assert.ErrorIs(t, err, service.ErrLockNotAcquired)
}

func TestCreateAppointment_OverlapBackstop(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.overlap = true
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		ClientID:       f.client.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       testDay.Add(10 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateAppointment_KeepingOwnSlot(t *testing.T) {
	f := newAppointmentFixture(t)

	existing := &entity.Appointment{
		ID:              uuid.New(),
		ClientID:        f.client.ID,
		ProfessionalID:  f.professional.ID,
		ServiceID:       f.service.ID,
		StartsAt:        testDay.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          entity.AppointmentStatusScheduled,
	}
	f.appointments.byID[existing.ID] = existing
	f.appointments.dayAppts = []entity.Appointment{*existing}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	notes := "bring photos"
	resp, err := f.usecase.Update(context.Background(), existing.ID, &dto.UpdateAppointmentRequest{
		Notes: &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, "bring photos", resp.Notes)
	assert.Equal(t, existing.ID, f.appointments.excludeID)
}

func TestUpdateAppointment_Terminal(t *testing.T) {
	f := newAppointmentFixture(t)

	existing := &entity.Appointment{
		ID:              uuid.New(),
		ProfessionalID:  f.professional.ID,
		ServiceID:       f.service.ID,
		StartsAt:        testDay.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          entity.AppointmentStatusCompleted,
	}
	f.appointments.byID[existing.ID] = existing

	notes := "too late"
	_, err := f.usecase.Update(context.Background(), existing.ID, &dto.UpdateAppointmentRequest{
		Notes: &notes,
	})
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestUpdateStatus(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.affected = 1

	existing := &entity.Appointment{
		ID:              uuid.New(),
		ProfessionalID:  f.professional.ID,
		StartsAt:        testDay.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          entity.AppointmentStatusScheduled,
	}
	f.appointments.byID[existing.ID] = existing

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.UpdateStatus(context.Background(), existing.ID, &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusConfirmed),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), resp.Status)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	f := newAppointmentFixture(t)

	existing := &entity.Appointment{
		ID:              uuid.New(),
		ProfessionalID:  f.professional.ID,
		StartsAt:        testDay.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          entity.AppointmentStatusScheduled,
	}
	f.appointments.byID[existing.ID] = existing

	_, err := f.usecase.UpdateStatus(context.Background(), existing.ID, &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusCompleted),
	})
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestUpdateStatus_ConcurrentChange(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.affected = 0

	existing := &entity.Appointment{
		ID:              uuid.New(),
		ProfessionalID:  f.professional.ID,
		StartsAt:        testDay.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          entity.AppointmentStatusScheduled,
	}
	f.appointments.byID[existing.ID] = existing

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.UpdateStatus(context.Background(), existing.ID, &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusConfirmed),
	})
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRateAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	existing := &entity.Appointment{
		ID:              uuid.New(),
		ProfessionalID:  f.professional.ID,
		StartsAt:        testDay.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          entity.AppointmentStatusCompleted,
	}
	f.appointments.byID[existing.ID] = existing

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.Rate(context.Background(), existing.ID, &dto.RateAppointmentRequest{
		Rating:  5,
		Comment: "great",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, 5, *resp.Rating)
}

func TestRateAppointment_NotCompleted(t *testing.T) {
	f := newAppointmentFixture(t)

	existing := &entity.Appointment{
		ID:              uuid.New(),
		ProfessionalID:  f.professional.ID,
		StartsAt:        testDay.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          entity.AppointmentStatusScheduled,
	}
	f.appointments.byID[existing.ID] = existing

	_, err := f.usecase.Rate(context.Background(), existing.ID, &dto.RateAppointmentRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrRatingNotAllowed)
}
