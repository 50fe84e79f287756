package service

import "errors"

var (
	// ErrEmptyContent is returned when the user submits blank text.
	ErrEmptyContent = errors.New("content is empty")
	// ErrNoTarget is returned by AddSolution without a target opportunity.
	ErrNoTarget = errors.New("select a target opportunity first")
	// ErrNoSelection is returned by AddTest when no solution is selected.
	ErrNoSelection = errors.New("select a solution to explore first")
)
