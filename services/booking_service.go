package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"concert-pass/internal/api"
	"concert-pass/internal/wizard"
	"concert-pass/models"
	"concert-pass/monitoring"

	"github.com/google/uuid"
)

const (
	WizardBooking = "booking"

	BookingSuccessMessage = "PAYMENT SUCCESS!"
	bookingFailurePrefix  = "Booking failed: "

	// MyBookingsPath is where a successful booking lands.
	MyBookingsPath = "/my-bookings"
)

// SubmitOutcome is the result of one submit attempt that reached the backend.
type SubmitOutcome struct {
	Succeeded     bool
	Message       string
	RedirectTo    string
	RedirectAfter time.Duration
}

type BookingService struct {
	Backend       Backend
	Drafts        *DraftService
	Notifier      Notifier
	LockTTL       time.Duration
	RedirectDelay time.Duration

	newID func() string
}

func NewBookingService(backend Backend, drafts *DraftService, notifier Notifier, lockTTL, redirectDelay time.Duration) *BookingService {
	return &BookingService{
		Backend:       backend,
		Drafts:        drafts,
		Notifier:      notifier,
		LockTTL:       lockTTL,
		RedirectDelay: redirectDelay,
		newID:         uuid.NewString,
	}
}

// Start opens a fresh booking draft for one category of a concert. Any draft the
// session had for the same concert is abandoned.
func (s *BookingService) Start(ctx context.Context, session models.Session, concertID, categoryID int64) (wizard.BookingState, error) {
	concert, err := s.Backend.GetConcert(ctx, session.Token, session.User.ID, concertID)
	if err != nil {
		return wizard.BookingState{}, fmt.Errorf("booking: start: %w", err)
	}

	state, err := wizard.NewBooking(s.newID(), concert, categoryID)
	if err != nil {
		return wizard.BookingState{}, err
	}

	if err := s.Drafts.Save(ctx, BookingDraftKey(session.ID, concertID), state); err != nil {
		return wizard.BookingState{}, err
	}
	slog.InfoContext(ctx, "booking started", "concert_id", concertID, "category_id", categoryID, "instance", state.InstanceID)
	return state, nil
}

func (s *BookingService) Get(ctx context.Context, session models.Session, concertID int64) (wizard.BookingState, error) {
	var state wizard.BookingState
	if err := s.Drafts.Load(ctx, BookingDraftKey(session.ID, concertID), &state); err != nil {
		return wizard.BookingState{}, err
	}
	return state, nil
}

// Apply runs one user action against the stored draft. A gated action that does not
// go through is not an error; the returned state simply has not moved.
func (s *BookingService) Apply(ctx context.Context, session models.Session, concertID int64, action wizard.Action) (wizard.BookingState, error) {
	state, err := s.Get(ctx, session, concertID)
	if err != nil {
		return wizard.BookingState{}, err
	}

	next, err := wizard.ApplyBooking(state, action)
	if err != nil {
		monitoring.TrackWizardAction(WizardBooking, string(action.Type), monitoring.ResultRejected)
		return state, err
	}
	monitoring.TrackWizardAction(WizardBooking, string(action.Type), actionResult(action, state.Steps, next.Steps))

	// A draft discarded since it was read stays discarded.
	if err := s.Drafts.Update(ctx, BookingDraftKey(session.ID, concertID), next); err != nil {
		return state, err
	}
	return next, nil
}

// Submit sends the draft to the backend once. While a submission for the same draft
// is outstanding every further call returns ErrSubmitInFlight without contacting the
// backend.
func (s *BookingService) Submit(ctx context.Context, session models.Session, concertID int64) (wizard.BookingState, SubmitOutcome, error) {
	key := BookingDraftKey(session.ID, concertID)
	// The backend call and the bookkeeping around it finish even if the browser
	// goes away.
	ctx = context.WithoutCancel(ctx)

	release, locked, err := s.Drafts.Lock(ctx, key, s.LockTTL)
	defer release()
	if err != nil {
		return wizard.BookingState{}, SubmitOutcome{}, err
	}
	if !locked {
		monitoring.TrackSubmission(WizardBooking, monitoring.OutcomeInFlight)
		return wizard.BookingState{}, SubmitOutcome{}, ErrSubmitInFlight
	}

	// Read under the lock so a draft a finished attempt already discarded is
	// never submitted again.
	state, err := s.Get(ctx, session, concertID)
	if err != nil {
		return wizard.BookingState{}, SubmitOutcome{}, err
	}

	// Holding the lock means no attempt is outstanding; an in-flight flag left
	// behind by a crashed attempt is stale.
	state.Submission = state.Submission.Recover()
	if !state.CanSubmit() {
		return state, SubmitOutcome{}, ErrNotSubmittable
	}

	state.Submission, _ = state.Submission.Begin()
	if err := s.Drafts.Update(ctx, key, state); err != nil {
		return state, SubmitOutcome{}, err
	}

	_, callErr := s.Backend.CreateBooking(ctx, session.Token, session.User.ID, state.Request())

	outcome := SubmitOutcome{Succeeded: callErr == nil}
	if callErr == nil {
		outcome.Message = BookingSuccessMessage
		outcome.RedirectTo = MyBookingsPath
		outcome.RedirectAfter = s.RedirectDelay
	} else {
		outcome.Message = wizard.FailureMessage(bookingFailurePrefix, api.MessageOf(callErr))
		slog.WarnContext(ctx, "booking rejected", "concert_id", concertID, "error", callErr)
	}
	s.notify(ctx, session.User.ID, outcome)

	current, err := s.Get(ctx, session, concertID)
	if errors.Is(err, ErrDraftNotFound) || (err == nil && current.InstanceID != state.InstanceID) {
		monitoring.TrackSubmission(WizardBooking, monitoring.OutcomeAbandoned)
		return state, outcome, ErrDraftAbandoned
	}
	if err != nil {
		return state, outcome, err
	}

	if outcome.Succeeded {
		state.Submission = state.Submission.Succeed(outcome.Message)
		monitoring.TrackSubmission(WizardBooking, monitoring.OutcomeSucceeded)
		if err := s.Drafts.Discard(ctx, key); err != nil {
			slog.WarnContext(ctx, "discard booking draft", "key", key, "error", err)
		}
		return state, outcome, nil
	}

	// Edits made while the request was outstanding are kept.
	current.Submission = state.Submission.Fail(outcome.Message)
	if err := s.Drafts.Update(ctx, key, current); err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			monitoring.TrackSubmission(WizardBooking, monitoring.OutcomeAbandoned)
			return state, outcome, ErrDraftAbandoned
		}
		return current, outcome, err
	}
	monitoring.TrackSubmission(WizardBooking, monitoring.OutcomeFailed)
	return current, outcome, nil
}

func (s *BookingService) notify(ctx context.Context, userID int64, outcome SubmitOutcome) {
	notice := Notice{Type: "booking_failed", Wizard: WizardBooking, Status: wizard.SubmissionFailed.String(), Message: outcome.Message, At: time.Now()}
	if outcome.Succeeded {
		notice.Type = "booking_succeeded"
		notice.Status = wizard.SubmissionSucceeded.String()
	}
	s.Notifier.Notify(ctx, userID, notice)
}

// actionResult labels an applied action for metrics; a Next that left the step
// unchanged was blocked by the step's required fields.
func actionResult(action wizard.Action, before, after wizard.Controller) string {
	if action.Type == wizard.ActionNext && before.Current == after.Current {
		return monitoring.ResultBlocked
	}
	return monitoring.ResultApplied
}
