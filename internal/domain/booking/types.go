package booking

type Status string

const (
	StatusPending        Status = "pending"
	StatusPendingDeposit Status = "pending_deposit"
	StatusPaidDeposit    Status = "paid_deposit"
	StatusConfirmed      Status = "confirmed"
	StatusCancelled      Status = "cancelled"
	StatusRejected       Status = "rejected"
	StatusPostponed      Status = "postponed"
	StatusFinished       Status = "finished"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPendingDeposit, StatusPaidDeposit, StatusConfirmed,
		StatusCancelled, StatusRejected, StatusPostponed, StatusFinished:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusFinished
}

// transitions is the single source of truth for which status changes are
// legal. Anything absent here is rejected with ErrInvalidTransition.
var transitions = map[Status][]Status{
	StatusPending:        {StatusPendingDeposit, StatusRejected, StatusCancelled},
	StatusPendingDeposit: {StatusPaidDeposit, StatusPostponed, StatusRejected, StatusCancelled},
	StatusPaidDeposit:    {StatusConfirmed, StatusPostponed, StatusCancelled},
	StatusConfirmed:      {StatusFinished, StatusPostponed, StatusCancelled},
	StatusPostponed:      {StatusPendingDeposit, StatusPaidDeposit, StatusConfirmed, StatusCancelled},
	StatusRejected:       {StatusPending, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
