package routing

import "errors"

var (
	ErrNoPathFound              = errors.New("no path found")
	ErrSearchLimitExceeded      = errors.New("search settled-node limit exceeded")
	ErrAllCandidatesUnreachable = errors.New("no candidate destination is reachable")
	ErrInvalidVertex            = errors.New("invalid vertex id")
	ErrInvalidInput             = errors.New("invalid input")
)

// isCandidateFailure. errors that only rule out one candidate destination
func isCandidateFailure(err error) bool {
	return errors.Is(err, ErrNoPathFound) || errors.Is(err, ErrSearchLimitExceeded)
}
