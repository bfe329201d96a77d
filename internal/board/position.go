package board

import (
	"fmt"
	"math"
	"strings"
)

// CastlingRights holds the four independent castling flags.
type CastlingRights uint8

const (
	WhiteKingSide  CastlingRights = 1 << iota // K
	WhiteQueenSide                            // Q
	BlackKingSide                             // k
	BlackQueenSide                            // q
	NoCastling     CastlingRights = 0
	AllCastling    CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// castlingLetters lists each flag with its FEN letter in canonical order.
var castlingLetters = [4]struct {
	flag   CastlingRights
	letter byte
}{
	{WhiteKingSide, 'K'},
	{WhiteQueenSide, 'Q'},
	{BlackKingSide, 'k'},
	{BlackQueenSide, 'q'},
}

// String returns the FEN castling field: the set flags in "KQkq" order, or "-".
func (cr CastlingRights) String() string {
	if cr&AllCastling == NoCastling {
		return "-"
	}
	b := make([]byte, 0, 4)
	for _, cl := range castlingLetters {
		if cr&cl.flag != 0 {
			b = append(b, cl.letter)
		}
	}
	return string(b)
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSide != 0
		}
		return cr&WhiteQueenSide != 0
	}
	if kingSide {
		return cr&BlackKingSide != 0
	}
	return cr&BlackQueenSide != 0
}

// Army is one side's pieces, one bitboard per PieceType.
type Army [NumPieceTypes]Bitboard

// Occupied returns every square the army stands on.
func (a Army) Occupied() Bitboard {
	var bb Bitboard
	for _, m := range a {
		bb |= m
	}
	return bb
}

// Position is a complete chess position. It is a plain value: assigning it
// copies every field, so no two holders share state.
type Position struct {
	// Armies[Color][PieceType]. At most one bit per square across all twelve masks.
	Armies [2]Army

	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // NoSquare if there is no target
	HalfMoveClock  int    // plies since the last pawn move or capture
	FullMoveNumber int    // incremented after Black moves
}

// Empty returns a position with no pieces, White to move, no castling rights,
// no en passant target and both counters at zero.
func Empty() Position {
	return Position{
		SideToMove: White,
		Castling:   NoCastling,
		EnPassant:  NoSquare,
	}
}

// NewPosition returns the standard starting position.
func NewPosition() Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// PieceAt returns the piece on sq, or NoPiece if the square is empty.
//
// Masks are scanned White pawns, knights, bishops, rooks, queens, king, then
// Black in the same order, and the first hit wins. For a position whose masks
// overlap, the answer is deterministic but carries no meaning.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if p.Armies[c][pt]&bb != 0 {
				return NewPiece(c, pt)
			}
		}
	}
	return NoPiece
}

// Pieces returns the mask for one color and piece type.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.Armies[c][pt]
}

// OccupiedBy returns all squares held by color c.
func (p *Position) OccupiedBy(c Color) Bitboard {
	return p.Armies[c].Occupied()
}

// Occupied returns all squares holding any piece.
func (p *Position) Occupied() Bitboard {
	return p.Armies[White].Occupied() | p.Armies[Black].Occupied()
}

// setPiece adds piece on sq. The caller guarantees sq is empty.
func (p *Position) setPiece(piece Piece, sq Square) {
	p.Armies[piece.Color()][piece.Type()] |= SquareBB(sq)
}

// Validate checks the structural invariants a position built by hand may
// break: disjoint piece masks, a side to move of White or Black, castling bits
// within AllCastling, an en passant target that is on the board or NoSquare,
// and counters in 0..math.MaxInt32. A position that passes serializes to a FEN
// that ParseFEN reads back unchanged. Positions returned by ParseFEN always pass.
func (p *Position) Validate() error {
	var seen Bitboard
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			m := p.Armies[c][pt]
			if dup := seen & m; dup != 0 {
				return fmt.Errorf("square %s: %w", dup.LSB(), ErrOverlappingPieces)
			}
			seen |= m
		}
	}
	if p.SideToMove > Black {
		return fmt.Errorf("side to move %d: %w", p.SideToMove, ErrInvalidState)
	}
	if extra := p.Castling &^ AllCastling; extra != 0 {
		return fmt.Errorf("castling bits %#x: %w", uint8(extra), ErrInvalidState)
	}
	if p.EnPassant > NoSquare {
		return fmt.Errorf("en passant index %d: %w", p.EnPassant, ErrInvalidEnPassant)
	}
	if p.HalfMoveClock < 0 || p.FullMoveNumber < 0 ||
		p.HalfMoveClock > math.MaxInt32 || p.FullMoveNumber > math.MaxInt32 {
		return fmt.Errorf("counters %d/%d: %w", p.HalfMoveClock, p.FullMoveNumber, ErrInvalidNumber)
	}
	return nil
}

const renderSeparator = "+---+---+---+---+---+---+---+---+\n"

// Render draws the board as a fixed-width ASCII grid, rank 8 at the top.
// The output is for diagnostics only and cannot be parsed back.
func (p *Position) Render() string {
	var sb strings.Builder
	sb.Grow(len(renderSeparator) * 17)
	sb.WriteString(renderSeparator)
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('|')
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteByte(p.PieceAt(NewSquare(file, rank)).Letter())
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
		sb.WriteString(renderSeparator)
	}
	return sb.String()
}

// String returns the diagnostic board followed by the FEN.
func (p Position) String() string {
	return p.Render() + p.FEN() + "\n"
}
