package domain

import "errors"

var (
	// ErrRawPoolMissing means no raw fixture pool is cached; fetching the
	// match board first populates it.
	ErrRawPoolMissing = errors.New("no cached matches, load the match board first")

	// ErrInvalidTeam means a team view was requested without a usable team id
	ErrInvalidTeam = errors.New("team id not found")

	// ErrUpstreamUnavailable means every upstream request of an operation failed
	ErrUpstreamUnavailable = errors.New("upstream api unavailable")

	// ErrUnknownCompetition means the competition code is not configured
	ErrUnknownCompetition = errors.New("unknown competition")
)
