package wizard

type SubmissionStatus string

const (
	SubmissionIdle      SubmissionStatus = "idle"
	SubmissionInFlight  SubmissionStatus = "in_flight"
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

const unknownError = "Unknown error"

// Submission is the outcome of the latest submit attempt of one wizard instance.
type Submission struct {
	Status   SubmissionStatus `json:"status"`
	Message  string           `json:"message,omitempty"`
	Attempts int              `json:"attempts"`
}

func (s Submission) InFlight() bool {
	return s.Status == SubmissionInFlight
}

// Begin marks a new attempt as in flight. ok is false when one is already
// outstanding, in which case s is returned unchanged.
func (s Submission) Begin() (next Submission, ok bool) {
	if s.InFlight() {
		return s, false
	}
	return Submission{Status: SubmissionInFlight, Attempts: s.Attempts + 1}, true
}

// Recover clears an in-flight status whose request is known to be gone.
func (s Submission) Recover() Submission {
	if !s.InFlight() {
		return s
	}
	return Submission{Status: SubmissionIdle, Attempts: s.Attempts}
}

func (s Submission) Succeed(message string) Submission {
	return Submission{Status: SubmissionSucceeded, Message: message, Attempts: s.Attempts}
}

func (s Submission) Fail(message string) Submission {
	return Submission{Status: SubmissionFailed, Message: message, Attempts: s.Attempts}
}

// FailureMessage builds the text shown after a rejected submission: the server's
// own message when it sent one, a generic one otherwise.
func FailureMessage(prefix, serverMessage string) string {
	if serverMessage == "" {
		serverMessage = unknownError
	}
	return prefix + serverMessage
}

func (s SubmissionStatus) String() string {
	return string(s)
}
