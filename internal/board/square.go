// Package board implements a bitboard chess position and its FEN codec.
package board

import "fmt"

// Square is a board cell index 0..63, file + rank*8.
// A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	// NoSquare marks an absent square, e.g. no en passant target.
	NoSquare Square = 64
)

// NewSquare returns the square at (file, rank), both 0-indexed.
// To address "a8", pass (0, 7). It panics if either coordinate is outside 0..7.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		panic(fmt.Sprintf("board: square coordinates out of range: file=%d rank=%d", file, rank))
	}
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, &FENError{Field: "square", Value: s, Err: ErrInvalidNotation}
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, &FENError{Field: "square", Value: s, Err: ErrInvalidNotation}
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// File returns the file of the square (0=a .. 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank of the square (0=1 .. 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// IsValid reports whether sq is one of the 64 board squares.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Bitboard returns the mask with only sq set.
func (sq Square) Bitboard() Bitboard {
	return SquareBB(sq)
}

// String returns the algebraic notation for the square, or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// Left moves n squares toward index 0.
func (sq Square) Left(n int) Square {
	return sq.offset(-n)
}

// Right moves n squares toward index 63.
func (sq Square) Right(n int) Square {
	return sq.offset(n)
}

// Down moves n ranks toward rank 1.
func (sq Square) Down(n int) Square {
	return sq.offset(-8 * n)
}

// Up moves n ranks toward rank 8.
func (sq Square) Up(n int) Square {
	return sq.offset(8 * n)
}

// offset panics rather than wrap: callers must keep the index on the board.
func (sq Square) offset(delta int) Square {
	idx := int(sq) + delta
	if !sq.IsValid() || idx < 0 || idx > 63 {
		panic(fmt.Sprintf("board: square %d offset by %d leaves the board", sq, delta))
	}
	return Square(idx)
}
