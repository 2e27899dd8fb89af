package cli

import "errors"

// ErrOutcomeAlreadyRecorded is returned when a quiz round tries to
// record more than one outcome for the same item.
var ErrOutcomeAlreadyRecorded = errors.New("outcome already recorded for this round")

// OutcomeHandler guards the review-outcome callbacks for one round:
// exactly one of OnCorrect or OnWrong may fire per item.
type OutcomeHandler struct {
	recorded  bool
	onOutcome func(correct bool) error
}

func NewOutcomeHandler(onOutcome func(correct bool) error) *OutcomeHandler {
	return &OutcomeHandler{onOutcome: onOutcome}
}

func (handler *OutcomeHandler) OnCorrect() error {
	return handler.record(true)
}

func (handler *OutcomeHandler) OnWrong() error {
	return handler.record(false)
}

func (handler *OutcomeHandler) Recorded() bool {
	return handler.recorded
}

func (handler *OutcomeHandler) record(correct bool) error {
	if handler.recorded {
		return ErrOutcomeAlreadyRecorded
	}
	handler.recorded = true
	return handler.onOutcome(correct)
}
