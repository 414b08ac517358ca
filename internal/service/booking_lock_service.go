package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockNotAcquired is returned when another booking for the same
// professional is already in flight.
var ErrLockNotAcquired = errors.New("professional is being booked by another request")

// releaseLockScript deletes the lock only if it still holds our token, so a
// slow request cannot release a lock that has expired and been re-acquired.
// The Redis Go client automatically uses EVALSHA after the first call.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	// Redis key prefix for per-professional booking locks
	RedisBookingLockPrefix = "booking:lock:"

	// How long a lock survives if the holder crashes mid-booking
	bookingLockTTL = 10 * time.Second
)

// BookingLockService serializes booking writes per professional.
//
// The availability check and the insert are separate steps, so two requests
// for the same slot can both pass the check and both insert. Holding a
// short-lived Redis lock for the professional while checking and writing
// closes that window. SET NX gives atomic acquire; the Lua script gives
// atomic compare-and-delete release.
type BookingLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewBookingLockService(redisClient *redis.Client, log *logrus.Logger) *BookingLockService {
	return &BookingLockService{
		redisClient: redisClient,
		log:         log,
	}
}

// Acquire takes the booking lock for a professional. Returns a release
// function on success and ErrLockNotAcquired when the lock is held.
func (s *BookingLockService) Acquire(ctx context.Context, professionalID uuid.UUID) (func(), error) {
	key := fmt.Sprintf("%s%s", RedisBookingLockPrefix, professionalID)
	token := uuid.NewString()

	ok, err := s.redisClient.SetNX(ctx, key, token, bookingLockTTL).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire booking lock for professional %s: %+v", professionalID, err)
		return nil, fmt.Errorf("acquire booking lock for professional %s: %w", professionalID, err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}

	release := func() {
		// Use a fresh context: the request context may already be done
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseLockScript.Run(releaseCtx, s.redisClient, []string{key}, token).Err(); err != nil {
			s.log.Warnf("Failed to release booking lock for professional %s: %+v", professionalID, err)
		}
	}

	return release, nil
}
