package planner

import "errors"

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNoCandidateFound   = errors.New("no candidate stop found")
	ErrNoRouteFound       = errors.New("no route found")
)
