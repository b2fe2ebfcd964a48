package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrListingUnavailable    = errors.New("match listing unavailable")
	ErrScorecardUnavailable  = errors.New("scorecard unavailable")
	ErrNothingToReport       = errors.New("no player data collected")
)
