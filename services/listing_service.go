package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"concert-pass/internal/api"
	"concert-pass/internal/wizard"
	"concert-pass/models"
	"concert-pass/monitoring"

	"github.com/google/uuid"
)

const (
	WizardListing = "listing"

	ListingSuccessMessage = "Concert created successfully! Waiting for admin approval."
	listingFailurePrefix  = "Failed to create concert: "

	DashboardPath = "/dashboard"
)

type ListingService struct {
	Backend  Backend
	Drafts   *DraftService
	Notifier Notifier
	LockTTL  time.Duration

	newID func() string
}

func NewListingService(backend Backend, drafts *DraftService, notifier Notifier, lockTTL time.Duration) *ListingService {
	return &ListingService{
		Backend:  backend,
		Drafts:   drafts,
		Notifier: notifier,
		LockTTL:  lockTTL,
		newID:    uuid.NewString,
	}
}

// Start opens a fresh listing draft with the organizer taken from the session user.
func (s *ListingService) Start(ctx context.Context, session models.Session) (wizard.ListingState, error) {
	state := wizard.NewListing(s.newID(), session.User)
	if err := s.Drafts.Save(ctx, ListingDraftKey(session.ID), state); err != nil {
		return wizard.ListingState{}, err
	}
	slog.InfoContext(ctx, "listing started", "user_id", session.User.ID, "instance", state.InstanceID)
	return state, nil
}

func (s *ListingService) Get(ctx context.Context, session models.Session) (wizard.ListingState, error) {
	var state wizard.ListingState
	if err := s.Drafts.Load(ctx, ListingDraftKey(session.ID), &state); err != nil {
		return wizard.ListingState{}, err
	}
	return state, nil
}

func (s *ListingService) Apply(ctx context.Context, session models.Session, action wizard.Action) (wizard.ListingState, error) {
	state, err := s.Get(ctx, session)
	if err != nil {
		return wizard.ListingState{}, err
	}

	next, err := wizard.ApplyListing(state, action)
	if err != nil {
		monitoring.TrackWizardAction(WizardListing, string(action.Type), monitoring.ResultRejected)
		return state, err
	}
	monitoring.TrackWizardAction(WizardListing, string(action.Type), actionResult(action, state.Steps, next.Steps))

	if err := s.Drafts.Update(ctx, ListingDraftKey(session.ID), next); err != nil {
		return state, err
	}
	return next, nil
}

// Submit creates the concert. The same single-flight rules as BookingService.Submit
// apply.
func (s *ListingService) Submit(ctx context.Context, session models.Session) (wizard.ListingState, SubmitOutcome, error) {
	key := ListingDraftKey(session.ID)
	ctx = context.WithoutCancel(ctx)

	release, locked, err := s.Drafts.Lock(ctx, key, s.LockTTL)
	defer release()
	if err != nil {
		return wizard.ListingState{}, SubmitOutcome{}, err
	}
	if !locked {
		monitoring.TrackSubmission(WizardListing, monitoring.OutcomeInFlight)
		return wizard.ListingState{}, SubmitOutcome{}, ErrSubmitInFlight
	}

	state, err := s.Get(ctx, session)
	if err != nil {
		return wizard.ListingState{}, SubmitOutcome{}, err
	}

	state.Submission = state.Submission.Recover()
	if !state.CanSubmit() {
		return state, SubmitOutcome{}, ErrNotSubmittable
	}
	req, err := state.Request()
	if err != nil {
		return state, SubmitOutcome{}, ErrNotSubmittable
	}

	state.Submission, _ = state.Submission.Begin()
	if err := s.Drafts.Update(ctx, key, state); err != nil {
		return state, SubmitOutcome{}, err
	}

	_, callErr := s.Backend.CreateConcert(ctx, session.Token, session.User.ID, req)

	outcome := SubmitOutcome{Succeeded: callErr == nil}
	notice := Notice{Wizard: WizardListing, At: time.Now()}
	if callErr == nil {
		outcome.Message = ListingSuccessMessage
		outcome.RedirectTo = DashboardPath
		notice.Type, notice.Status = "listing_succeeded", wizard.SubmissionSucceeded.String()
	} else {
		outcome.Message = wizard.FailureMessage(listingFailurePrefix, api.MessageOf(callErr))
		notice.Type, notice.Status = "listing_failed", wizard.SubmissionFailed.String()
		slog.WarnContext(ctx, "listing rejected", "user_id", session.User.ID, "error", callErr)
	}
	notice.Message = outcome.Message
	s.Notifier.Notify(ctx, session.User.ID, notice)

	current, err := s.Get(ctx, session)
	if errors.Is(err, ErrDraftNotFound) || (err == nil && current.InstanceID != state.InstanceID) {
		monitoring.TrackSubmission(WizardListing, monitoring.OutcomeAbandoned)
		return state, outcome, ErrDraftAbandoned
	}
	if err != nil {
		return state, outcome, err
	}

	if outcome.Succeeded {
		state.Submission = state.Submission.Succeed(outcome.Message)
		monitoring.TrackSubmission(WizardListing, monitoring.OutcomeSucceeded)
		if err := s.Drafts.Discard(ctx, key); err != nil {
			slog.WarnContext(ctx, "discard listing draft", "key", key, "error", err)
		}
		return state, outcome, nil
	}

	current.Submission = state.Submission.Fail(outcome.Message)
	if err := s.Drafts.Update(ctx, key, current); err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			monitoring.TrackSubmission(WizardListing, monitoring.OutcomeAbandoned)
			return state, outcome, ErrDraftAbandoned
		}
		return current, outcome, err
	}
	monitoring.TrackSubmission(WizardListing, monitoring.OutcomeFailed)
	return current, outcome, nil
}
