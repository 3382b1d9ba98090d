package services

import (
	"context"
	"testing"

	"concert-pass/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminService_ConcertsDefaultsToPending(t *testing.T) {
	backend := &MockBackend{}
	svc := NewAdminService(backend)
	backend.On("ListConcerts", mock.Anything, "tok", int64(4), models.ConcertPending).
		Return([]models.Concert{{ID: 5}}, nil)

	concerts, err := svc.Concerts(context.Background(), testSession(), "")
	require.NoError(t, err)
	assert.Len(t, concerts, 1)
}

func TestAdminService_RejectsUnknownStatus(t *testing.T) {
	backend := &MockBackend{}
	svc := NewAdminService(backend)

	_, err := svc.Concerts(context.Background(), testSession(), "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	err = svc.SetStatus(context.Background(), testSession(), 5, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	backend.AssertNotCalled(t, "UpdateConcertStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_SetStatusAndDelete(t *testing.T) {
	backend := &MockBackend{}
	svc := NewAdminService(backend)
	backend.On("UpdateConcertStatus", mock.Anything, "tok", int64(4), int64(5), models.ConcertApproved).Return(nil)
	backend.On("DeleteConcert", mock.Anything, "tok", int64(4), int64(6)).Return(nil)

	require.NoError(t, svc.SetStatus(context.Background(), testSession(), 5, models.ConcertApproved))
	require.NoError(t, svc.Delete(context.Background(), testSession(), 6))
	backend.AssertExpectations(t)
}
