package messages

import (
	"errors"
	"fmt"

	"github.com/VTGare/minesweeper/game"
	"github.com/VTGare/minesweeper/lock"
	"github.com/VTGare/minesweeper/session"
	"github.com/VTGare/minesweeper/store"
)

type UserErr struct {
	msg string
	err error
}

func (ue *UserErr) Error() string {
	return ue.msg
}

func (ue *UserErr) Unwrap() error {
	return ue.err
}

func newUserError(msg string, errs ...error) *UserErr {
	var err error
	if len(errs) > 0 {
		err = errs[0]
	}

	return &UserErr{
		msg: msg,
		err: err,
	}
}

// ErrMove turns an error returned by a game operation into something a player
// can read. The original error stays reachable with errors.Is.
func ErrMove(err error) error {
	var gameErr *game.Error

	switch {
	case errors.As(err, &gameErr) && gameErr.Kind != game.KindCorruptSnapshot:
		return newUserError(fmt.Sprintf("Can't do that: %v.", gameErr.Reason), err)
	case errors.Is(err, game.ErrCorruptSnapshot):
		return newUserError("This game's save is damaged and can't be played anymore.", err)
	case errors.Is(err, lock.ErrLocked):
		return newUserError("Another move is being made on this game. Try again.", err)
	case errors.Is(err, store.ErrVersionConflict):
		return newUserError("The game changed while the move was made. Try again.", err)
	case errors.Is(err, store.ErrGameNotFound):
		return newUserError("Game not found.", err)
	case errors.Is(err, session.ErrNoActiveGame):
		return newUserError("You don't have a game in progress.", err)
	}

	return newUserError("Something went wrong. Please try again later.", err)
}
