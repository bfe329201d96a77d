package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a six-field FEN string. Fields must be separated by exactly
// one space. The first malformed field stops parsing; the returned error is a
// *FENError wrapping one of the Err* sentinels and the Position is zero.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Split(fen, " ")
	if len(parts) != 6 {
		return Position{}, &FENError{
			Field: "fields",
			Value: strconv.Itoa(len(parts)),
			Err:   ErrWrongFieldCount,
		}
	}

	pos := Empty()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(&pos, parts[0]); err != nil {
		return Position{}, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return Position{}, &FENError{Field: "side", Value: parts[1], Err: ErrUnknownSide}
	}

	// Parse castling rights (field 2)
	cr, err := parseCastlingRights(parts[2])
	if err != nil {
		return Position{}, err
	}
	pos.Castling = cr

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Position{}, &FENError{Field: "en passant", Value: parts[3], Err: ErrInvalidNotation}
		}
		pos.EnPassant = sq
	}

	// Parse half-move clock (field 4)
	if pos.HalfMoveClock, err = parseCounter("halfmove", parts[4]); err != nil {
		return Position{}, err
	}
	// Parse full-move number (field 5)
	if pos.FullMoveNumber, err = parseCounter("fullmove", parts[5]); err != nil {
		return Position{}, err
	}

	return pos, nil
}

// parsePiecePlacement fills pos from the first FEN field, rank 8 first.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return &FENError{Field: "placement", Value: placement, Err: ErrMalformedRank}
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > 8 {
					return &FENError{Field: "placement", Value: rankStr, Err: ErrMalformedRank}
				}
				continue
			}

			piece := PieceFromChar(c)
			if piece == NoPiece {
				return &FENError{Field: "placement", Value: string(c), Err: ErrUnknownPieceChar}
			}
			if file > 7 {
				return &FENError{Field: "placement", Value: rankStr, Err: ErrMalformedRank}
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return &FENError{Field: "placement", Value: rankStr, Err: ErrMalformedRank}
		}
	}

	return nil
}

// parseCastlingRights accepts "-" or distinct letters from "KQkq" in any order.
func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}
	if castling == "" || len(castling) > 4 {
		return NoCastling, &FENError{Field: "castling", Value: castling, Err: ErrInvalidCastling}
	}

	cr := NoCastling
	for i := 0; i < len(castling); i++ {
		flag := castlingFlag(castling[i])
		if flag == NoCastling || cr&flag != 0 {
			return NoCastling, &FENError{Field: "castling", Value: castling, Err: ErrInvalidCastling}
		}
		cr |= flag
	}
	return cr, nil
}

func castlingFlag(c byte) CastlingRights {
	for _, cl := range castlingLetters {
		if cl.letter == c {
			return cl.flag
		}
	}
	return NoCastling
}

// parseCounter reads a clock field. Signs, blanks and values that do not fit
// in 31 bits fail, so the result is non-negative on every platform.
func parseCounter(field, s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, &FENError{Field: field, Value: s, Err: ErrInvalidNumber}
	}
	return int(n), nil
}

// FEN serializes the position. Empty squares are coalesced into one digit per
// run and castling letters come out in "KQkq" order, so for any position
// produced by ParseFEN, ParseFEN(p.FEN()) returns p unchanged.
func (p *Position) FEN() string {
	var sb strings.Builder
	sb.Grow(90)

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
