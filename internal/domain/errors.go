package domain

import "errors"

var (
	// ErrSourceUnavailable is returned when no word source can supply pairs for a level.
	ErrSourceUnavailable = errors.New("no words available for level")
	// ErrNoActiveQuestion is returned when an answer arrives after the last question. Caller bug.
	ErrNoActiveQuestion = errors.New("no active question in session")
	// ErrEmptySession is returned when scoring a session with zero questions. Preparer bug.
	ErrEmptySession = errors.New("cannot score session with no questions")
	// ErrSinkUnavailable indicates the record sink rejected a save. Logged, never fatal to play.
	ErrSinkUnavailable = errors.New("record sink unavailable")
	// ErrLevelLocked is returned when a player starts a level above their frontier.
	ErrLevelLocked = errors.New("level is locked")
	// ErrSessionNotFound is returned when a player acts without an active session.
	ErrSessionNotFound = errors.New("no active session for player")
)
