package game

import "errors"

var (
	ErrInvalidName      = errors.New("name must be 3-20 characters of letters, digits and spaces")
	ErrDuplicateName    = errors.New("a player with that name already exists")
	ErrAlreadyJoined    = errors.New("you are already in the game")
	ErrNotEnoughPlayers = errors.New("at least 3 players required")
	ErrGameInProgress   = errors.New("game has already started")
	ErrGameNotStarted   = errors.New("game has not started")
	ErrGameEnded        = errors.New("game has already ended")
	ErrNotInGame        = errors.New("you are not an active player")
	ErrNotInLobby       = errors.New("you are not in the lobby")
	ErrVotingInactive   = errors.New("voting is not active")
	ErrVotingActive     = errors.New("voting is already active")
	ErrNotImpostor      = errors.New("only the impostor can guess the word")
	ErrGuessUsed        = errors.New("the word may only be guessed once")
	ErrEmptyGuess       = errors.New("no word entered")
	ErrMessageTooLong   = errors.New("message exceeds 200 characters")
	ErrEmptyMessage     = errors.New("empty message")
	ErrCannotRejoin     = errors.New("no role assigned for that name, cannot rejoin")
)
