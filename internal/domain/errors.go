package domain

import "errors"

var (
	// ErrBankNotLoaded is returned when a session is requested before the
	// question bank has been loaded.
	ErrBankNotLoaded = errors.New("question bank not loaded")
	// ErrMalformedBank indicates the bank source could not be used at all.
	ErrMalformedBank = errors.New("malformed question bank")
	// ErrInvalidQuestion marks a bank record missing required fields.
	ErrInvalidQuestion = errors.New("invalid question record")
	// ErrEmptySelection is returned when the filters leave nothing to quiz on.
	ErrEmptySelection = errors.New("no questions match the selected filters")
	// ErrAlreadyGraded rejects a second submission for the same question.
	ErrAlreadyGraded = errors.New("question already graded")
	// ErrSessionNotStarted is returned for operations before Start.
	ErrSessionNotStarted = errors.New("quiz session not started")
	// ErrSessionActive rejects starting a session twice.
	ErrSessionActive = errors.New("quiz session already started")
	// ErrSessionCompleted is returned for operations after completion.
	ErrSessionCompleted = errors.New("quiz session already completed")
	// ErrNotGraded is returned when advancing past an ungraded question.
	ErrNotGraded = errors.New("current question not graded yet")
	// ErrNoActiveSession is returned when no session is in progress.
	ErrNoActiveSession = errors.New("no active quiz session")
	// ErrNothingToExport is returned when the missed list is empty.
	ErrNothingToExport = errors.New("no missed questions to export")
)
