package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLockService(t *testing.T) (*BookingLockService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewBookingLockService(client, logrus.New()), mr
}

func TestBookingLockAcquireRelease(t *testing.T) {
	svc, _ := newLockService(t)
	professionalID := uuid.New()

	release, err := svc.Acquire(context.Background(), professionalID)
	require.NoError(t, err)
	require.NotNil(t, release)

	// Second acquire on the same professional must fail while held
	_, err = svc.Acquire(context.Background(), professionalID)
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	release()

	// Released lock can be re-acquired
	release2, err := svc.Acquire(context.Background(), professionalID)
	require.NoError(t, err)
	release2()
}

func TestBookingLockIsPerProfessional(t *testing.T) {
	svc, _ := newLockService(t)

	release1, err := svc.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	defer release1()

	release2, err := svc.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	defer release2()
}

func TestBookingLockExpiresAfterTTL(t *testing.T) {
	svc, mr := newLockService(t)
	professionalID := uuid.New()

	_, err := svc.Acquire(context.Background(), professionalID)
	require.NoError(t, err)

	mr.FastForward(bookingLockTTL * 2)

	release, err := svc.Acquire(context.Background(), professionalID)
	require.NoError(t, err)
	release()
}

func TestBookingLockReleaseIgnoresForeignToken(t *testing.T) {
	svc, mr := newLockService(t)
	professionalID := uuid.New()

	release, err := svc.Acquire(context.Background(), professionalID)
	require.NoError(t, err)

	// Simulate expiry plus re-acquisition by another request
	mr.FastForward(bookingLockTTL * 2)
	release2, err := svc.Acquire(context.Background(), professionalID)
	require.NoError(t, err)
	defer release2()

	// The stale holder's release must not delete the new lock
	release()
	_, err = svc.Acquire(context.Background(), professionalID)
	assert.ErrorIs(t, err, ErrLockNotAcquired)
}
