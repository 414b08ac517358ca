package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guilhermelvc/karvagenda/internal/availability"
	"github.com/guilhermelvc/karvagenda/internal/converter"
	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/delivery/http/middleware"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	"github.com/guilhermelvc/karvagenda/internal/domain/repository"
	"github.com/guilhermelvc/karvagenda/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrServiceInactive      = errors.New("service is not active")
	ErrInvalidDateFormat    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidSchedule      = errors.New("professional schedule data is invalid")
	ErrInvalidStatusChange  = errors.New("status change is not allowed")
	ErrRatingNotAllowed     = errors.New("only completed appointments can be rated")

	// Slot conflict errors, one per violated rule
	ErrSlotDayOff       = errors.New("professional does not work on this day")
	ErrSlotOnLeave      = errors.New("professional is on leave at this time")
	ErrSlotOutsideHours = errors.New("time is outside working hours")
	ErrSlotDuringBreak  = errors.New("time falls within the professional's break")
	ErrSlotTaken        = errors.New("time conflicts with another appointment")
)

type AppointmentUsecase interface {
	GetAvailableSlots(ctx context.Context, professionalID, serviceID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Rate(ctx context.Context, id uuid.UUID, req *dto.RateAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	location         *time.Location
	slotGranularity  int
	appointmentRepo  repository.AppointmentRepository
	clientRepo       repository.ClientRepository
	professionalRepo repository.ProfessionalRepository
	serviceRepo      repository.ServiceRepository
	lockService      *service.BookingLockService
	auditService     service.AuditService
	whatsAppService  service.WhatsAppService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	location *time.Location,
	slotGranularity int,
	appointmentRepo repository.AppointmentRepository,
	clientRepo repository.ClientRepository,
	professionalRepo repository.ProfessionalRepository,
	serviceRepo repository.ServiceRepository,
	lockService *service.BookingLockService,
	auditService service.AuditService,
	whatsAppService service.WhatsAppService,
) AppointmentUsecase {
	if slotGranularity <= 0 {
		slotGranularity = availability.DefaultSlotGranularityMinutes
	}
	return &appointmentUsecase{
		db:               db,
		log:              log,
		location:         location,
		slotGranularity:  slotGranularity,
		appointmentRepo:  appointmentRepo,
		clientRepo:       clientRepo,
		professionalRepo: professionalRepo,
		serviceRepo:      serviceRepo,
		lockService:      lockService,
		auditService:     auditService,
		whatsAppService:  whatsAppService,
	}
}

// GetAvailableSlots returns the free start times of a professional on a date,
// sized to the requested service's duration.
func (u *appointmentUsecase) GetAvailableSlots(ctx context.Context, professionalID, serviceID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, u.location)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	professional, err := u.professionalRepo.FindByID(ctx, u.db, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", professionalID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	svc, err := u.serviceRepo.FindByID(ctx, u.db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	query, err := u.buildSlotQuery(ctx, professional, day, svc.DurationMinutes)
	if err != nil {
		return nil, err
	}

	slots, err := availability.AvailableSlots(*query)
	if err != nil {
		var vErr *availability.ValidationError
		if errors.As(err, &vErr) {
			u.log.Warnf("Rejected malformed schedule for professional %s: %+v", professionalID, err)
			return nil, ErrInvalidSchedule
		}
		return nil, err
	}

	return &dto.AvailabilityResponse{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
		Slots:          slots,
	}, nil
}

// Create books an appointment.
//
// Flow:
// 1. Load and validate client, professional and service
// 2. Acquire the per-professional booking lock
// 3. Run the slot conflict check against schedule, leaves and bookings
// 4. SQL overlap backstop inside the write transaction
// 5. Insert + audit log, commit
// 6. Best-effort WhatsApp notification
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	client, err := u.clientRepo.FindByID(ctx, u.db, req.ClientID)
	if err != nil {
		u.log.Warnf("Failed to find client %s: %+v", req.ClientID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	professional, err := u.professionalRepo.FindByID(ctx, u.db, req.ProfessionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", req.ProfessionalID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	svc, err := u.serviceRepo.FindByID(ctx, u.db, req.ServiceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", req.ServiceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if svc.Active != nil && !*svc.Active {
		return nil, ErrServiceInactive
	}

	duration := svc.DurationMinutes
	if duration <= 0 {
		duration = availability.DefaultServiceDurationMinutes
	}

	release, err := u.lockService.Acquire(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}
	defer release()

	startsAt := req.StartsAt.In(u.location)
	if err := u.checkSlot(ctx, professional, startsAt, duration, uuid.Nil); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ClientID:        req.ClientID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		StartsAt:        startsAt,
		DurationMinutes: duration,
		Status:          entity.AppointmentStatusScheduled,
		Notes:           req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Backstop inside the transaction: the engine check and the insert are
	// separate statements, the lock plus this query close the race window.
	taken, err := u.appointmentRepo.ExistsOverlapping(ctx, tx, req.ProfessionalID, startsAt, appointment.EndsAt(), uuid.Nil)
	if err != nil {
		u.log.Warnf("Failed overlap backstop check: %+v", err)
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	userID := actorFromContext(ctx)
	u.auditService.LogCreate(ctx, tx, userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notify(client, fmt.Sprintf("Hi %s! Your %s appointment is booked for %s.",
		client.Name, svc.Name, startsAt.Format("02/01/2006 15:04")))

	u.log.Infof("Appointment created: id=%s, professional=%s, starts_at=%s",
		appointment.ID, req.ProfessionalID, startsAt.Format(time.RFC3339))

	full, err := u.appointmentRepo.FindByID(ctx, u.db, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// Update reschedules or edits an appointment. The conflict check excludes the
// appointment itself, so keeping the original slot is always allowed.
func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.IsTerminal() {
		return nil, ErrInvalidStatusChange
	}

	old := *appointment

	if req.ProfessionalID != uuid.Nil {
		professional, err := u.professionalRepo.FindByID(ctx, u.db, req.ProfessionalID)
		if err != nil {
			return nil, err
		}
		if professional == nil {
			return nil, ErrProfessionalNotFound
		}
		appointment.ProfessionalID = req.ProfessionalID
	}

	if req.ServiceID != uuid.Nil {
		svc, err := u.serviceRepo.FindByID(ctx, u.db, req.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, ErrServiceNotFound
		}
		appointment.ServiceID = req.ServiceID
		if svc.DurationMinutes > 0 {
			appointment.DurationMinutes = svc.DurationMinutes
		}
	}

	if req.StartsAt != nil {
		appointment.StartsAt = req.StartsAt.In(u.location)
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	professional, err := u.professionalRepo.FindByID(ctx, u.db, appointment.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	release, err := u.lockService.Acquire(ctx, appointment.ProfessionalID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := u.checkSlot(ctx, professional, appointment.StartsAt, appointment.DurationMinutes, appointment.ID); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	taken, err := u.appointmentRepo.ExistsOverlapping(ctx, tx, appointment.ProfessionalID, appointment.StartsAt, appointment.EndsAt(), appointment.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	userID := actorFromContext(ctx)
	u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionAppointmentUpdate, "appointment", id.String(), old, appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil || full == nil {
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// UpdateStatus moves an appointment along its lifecycle:
// scheduled -> confirmed -> completed, cancellable from any non-terminal state.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	next := entity.AppointmentStatus(req.Status)
	if !entity.ValidStatus(next) {
		return nil, ErrInvalidStatusChange
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !appointment.CanTransitionTo(next) {
		return nil, ErrInvalidStatusChange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatus(ctx, tx, id, appointment.Status, next)
	if err != nil {
		u.log.Warnf("Failed to update appointment status %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		// Status changed concurrently between read and write
		return nil, ErrInvalidStatusChange
	}

	action := entity.AuditActionAppointmentStatus
	if next == entity.AppointmentStatusCancelled {
		action = entity.AuditActionAppointmentCancel
	}
	userID := actorFromContext(ctx)
	u.auditService.LogUpdate(ctx, tx, userID, action, "appointment", id.String(), string(appointment.Status), string(next))

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Status = next

	switch next {
	case entity.AppointmentStatusConfirmed:
		u.notify(&appointment.Client, fmt.Sprintf("Your appointment on %s has been confirmed.",
			appointment.StartsAt.In(u.location).Format("02/01/2006 15:04")))
	case entity.AppointmentStatusCancelled:
		u.notify(&appointment.Client, fmt.Sprintf("Your appointment on %s has been cancelled.",
			appointment.StartsAt.In(u.location).Format("02/01/2006 15:04")))
	}

	u.log.Infof("Appointment status updated: id=%s, status=%s", id, next)
	return converter.AppointmentToResponse(appointment), nil
}

// Rate records a 1-5 rating on a completed appointment.
func (u *appointmentUsecase) Rate(ctx context.Context, id uuid.UUID, req *dto.RateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Status != entity.AppointmentStatusCompleted {
		return nil, ErrRatingNotAllowed
	}

	appointment.Rating = &req.Rating
	appointment.RatingComment = req.Comment

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to rate appointment %s: %+v", id, err)
		return nil, err
	}

	userID := actorFromContext(ctx)
	u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionAppointmentRate, "appointment", id.String(), nil, req)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		ProfessionalID: req.ProfessionalID,
		ClientID:       req.ClientID,
		Status:         entity.AppointmentStatus(req.Status),
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	userID := actorFromContext(ctx)
	u.auditService.LogDelete(ctx, tx, userID, entity.AuditActionAppointmentCancel, "appointment", id.String(), appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// buildSlotQuery assembles the engine input from the professional's schedule
// columns and the day's stored appointments. Schedule data is validated here,
// at the read boundary, before any slot arithmetic runs.
func (u *appointmentUsecase) buildSlotQuery(ctx context.Context, professional *entity.Professional, day time.Time, durationMinutes int) (*availability.SlotQuery, error) {
	if err := professional.ValidateSchedule(); err != nil {
		u.log.Warnf("Invalid schedule data for professional %s: %+v", professional.ID, err)
		return nil, ErrInvalidSchedule
	}

	schedule := make(availability.WeekSchedule, len(professional.WorkSchedules))
	for _, w := range professional.WorkSchedules {
		schedule[time.Weekday(w.Weekday)] = availability.WorkWindow{
			Start:      w.Start,
			End:        w.End,
			BreakStart: w.BreakStart,
			BreakEnd:   w.BreakEnd,
		}
	}

	daysOff := make([]time.Weekday, len(professional.DaysOff))
	for i, d := range professional.DaysOff {
		daysOff[i] = time.Weekday(d)
	}

	leaves := make([]availability.Leave, len(professional.ManualLeaves))
	for i, l := range professional.ManualLeaves {
		leaves[i] = availability.Leave{
			Date:   l.Date,
			AllDay: l.AllDay,
			Start:  l.StartTime,
			End:    l.EndTime,
		}
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, u.location)
	dayEnd := dayStart.AddDate(0, 0, 1)
	appointments, err := u.appointmentRepo.FindByProfessionalAndDateRange(ctx, u.db, professional.ID, dayStart, dayEnd)
	if err != nil {
		u.log.Warnf("Failed to load appointments for professional %s: %+v", professional.ID, err)
		return nil, err
	}

	bookings := make([]availability.Booking, len(appointments))
	for i, a := range appointments {
		bookings[i] = availability.Booking{
			ID:              a.ID,
			StartsAt:        a.StartsAt.In(u.location),
			DurationMinutes: a.DurationMinutes,
			Cancelled:       a.IsCancelled(),
		}
	}

	return &availability.SlotQuery{
		Schedule:               schedule,
		DaysOff:                daysOff,
		Leaves:                 leaves,
		Bookings:               bookings,
		Date:                   day,
		ServiceDurationMinutes: durationMinutes,
		GranularityMinutes:     u.slotGranularity,
	}, nil
}

// checkSlot runs the engine conflict check and maps each violated rule to its
// sentinel error.
func (u *appointmentUsecase) checkSlot(ctx context.Context, professional *entity.Professional, startsAt time.Time, durationMinutes int, excludeID uuid.UUID) error {
	query, err := u.buildSlotQuery(ctx, professional, startsAt, durationMinutes)
	if err != nil {
		return err
	}

	conflict, err := availability.CheckSlot(*query, availability.SlotCheck{
		Start:            startsAt,
		DurationMinutes:  durationMinutes,
		ExcludeBookingID: excludeID,
	})
	if err != nil {
		var vErr *availability.ValidationError
		if errors.As(err, &vErr) {
			return ErrInvalidSchedule
		}
		return err
	}
	if conflict == nil {
		return nil
	}

	switch conflict.Reason {
	case availability.ConflictDayOff:
		return ErrSlotDayOff
	case availability.ConflictLeave:
		return ErrSlotOnLeave
	case availability.ConflictOutsideHours:
		return ErrSlotOutsideHours
	case availability.ConflictBreak:
		return ErrSlotDuringBreak
	case availability.ConflictBooking:
		return fmt.Errorf("%w (appointment %s)", ErrSlotTaken, conflict.BookingID)
	}
	return ErrSlotTaken
}

// notify sends a WhatsApp message without blocking or failing the request.
func (u *appointmentUsecase) notify(client *entity.Client, text string) {
	if client == nil {
		return
	}
	number := client.WhatsApp
	if number == "" {
		number = client.Phone
	}
	if number == "" {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := u.whatsAppService.SendText(notifyCtx, number, text); err != nil {
		u.log.Warnf("Failed to send WhatsApp notification (non-fatal): %+v", err)
	}
}

// actorFromContext returns the acting user's ID for audit entries, nil for
// unauthenticated flows.
func actorFromContext(ctx context.Context) *uuid.UUID {
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		return &userID
	}
	return nil
}
