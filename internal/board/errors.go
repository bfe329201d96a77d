package board

import (
	"errors"
	"fmt"
)

// Sentinel errors for FEN parsing and position checks.
// Use these with errors.Is() to find out why parsing failed.
var (
	// ErrWrongFieldCount indicates a FEN that is not six space-separated fields.
	ErrWrongFieldCount = errors.New("wrong number of FEN fields")

	// ErrMalformedRank indicates a placement rank that does not cover exactly 8 files,
	// or a placement that does not have exactly 8 ranks.
	ErrMalformedRank = errors.New("malformed rank")

	// ErrUnknownPieceChar indicates a placement character that is neither 1-8 nor a piece letter.
	ErrUnknownPieceChar = errors.New("unknown piece character")

	// ErrUnknownSide indicates a side to move other than "w" or "b".
	ErrUnknownSide = errors.New("unknown side to move")

	// ErrInvalidCastling indicates a castling field with letters outside KQkq or repeats.
	ErrInvalidCastling = errors.New("invalid castling rights")

	// ErrInvalidNotation indicates text that is not an algebraic square.
	ErrInvalidNotation = errors.New("invalid square notation")

	// ErrInvalidNumber indicates a clock field that is not a non-negative base-10 integer.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrOverlappingPieces indicates a square held by more than one piece mask.
	ErrOverlappingPieces = errors.New("overlapping pieces")

	// ErrInvalidEnPassant indicates an en passant target that is not a board square.
	ErrInvalidEnPassant = errors.New("invalid en passant square")

	// ErrInvalidState indicates a side to move or castling bits that have no FEN spelling.
	ErrInvalidState = errors.New("invalid side or castling state")
)

// FENError describes which FEN field failed and what it contained.
// It unwraps to one of the sentinel errors above.
type FENError struct {
	Field string // "fields", "placement", "side", "castling", "en passant", "halfmove", "fullmove" or "square"
	Value string // offending field, rank segment or character
	Err   error
}

func (e *FENError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("fen %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("fen %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the sentinel error.
func (e *FENError) Unwrap() error {
	return e.Err
}
