package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Positions used across the FEN tests. All are canonical: FEN() must
// reproduce them byte for byte.
var canonicalFENs = []string{
	StartFEN,
	"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"R6k/6pp/8/8/8/8/8/K7 b - - 0 1",
	"4k3/8/8/8/8/8/8/4K3 w Kq - 99 150",
	"8/8/8/8/8/8/8/8 w - - 0 0",
}

func TestParseFENStartPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN(StartFEN): %v", err)
	}

	want := Empty()
	want.Armies[White] = Army{
		Pawn:   0x000000000000FF00,
		Knight: SquareBB(B1) | SquareBB(G1),
		Bishop: SquareBB(C1) | SquareBB(F1),
		Rook:   SquareBB(A1) | SquareBB(H1),
		Queen:  SquareBB(D1),
		King:   SquareBB(E1),
	}
	want.Armies[Black] = Army{
		Pawn:   0x00FF000000000000,
		Knight: SquareBB(B8) | SquareBB(G8),
		Bishop: SquareBB(C8) | SquareBB(F8),
		Rook:   SquareBB(A8) | SquareBB(H8),
		Queen:  SquareBB(D8),
		King:   SquareBB(E8),
	}
	want.Castling = AllCastling
	want.FullMoveNumber = 1

	if diff := cmp.Diff(want, pos); diff != "" {
		t.Errorf("ParseFEN(StartFEN) mismatch (-want +got):\n%s", diff)
	}
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range canonicalFENs {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := pos.FEN(); got != fen {
				t.Errorf("FEN() = %q, want %q", got, fen)
			}

			again, err := ParseFEN(pos.FEN())
			if err != nil {
				t.Fatalf("ParseFEN(FEN()): %v", err)
			}
			if diff := cmp.Diff(pos, again); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFENNormalizes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "split empty runs coalesce",
			in:   "rnbqkbnr/pppppppp/44/11111111/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			want: StartFEN,
		},
		{
			name: "split runs around a piece",
			in:   "4k3/8/8/8/2112P1/8/8/4K3 w - - 0 1",
			want: "4k3/8/8/8/6P1/8/8/4K3 w - - 0 1",
		},
		{
			name: "castling order",
			in:   "r3k2r/8/8/8/8/8/8/R3K2R b qkQK - 3 20",
			want: "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 3 20",
		},
		{
			name: "leading zeros in counters",
			in:   "4k3/8/8/8/8/8/8/4K3 w - - 007 010",
			want: "4k3/8/8/8/8/8/8/4K3 w - - 7 10",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.in)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.in, err)
			}
			if got := pos.FEN(); got != tc.want {
				t.Errorf("FEN() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEmptyRankSerializesAsEight(t *testing.T) {
	pos := Empty()
	pos.Armies[White][King] = SquareBB(E1)
	pos.Armies[Black][King] = SquareBB(E8)

	want := "4k3/8/8/8/8/8/8/4K3 w - - 0 0"
	if got := pos.FEN(); got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}

	empty := Empty()
	if got := empty.FEN(); got != "8/8/8/8/8/8/8/8 w - - 0 0" {
		t.Errorf("Empty().FEN() = %q", got)
	}
}

func TestParseCastling(t *testing.T) {
	tests := []struct {
		field string
		want  CastlingRights
	}{
		{"-", NoCastling},
		{"KQkq", AllCastling},
		{"Kq", WhiteKingSide | BlackQueenSide},
		{"Q", WhiteQueenSide},
		{"kq", BlackKingSide | BlackQueenSide},
		{"qK", WhiteKingSide | BlackQueenSide},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w " + tc.field + " - 0 1")
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if pos.Castling != tc.want {
				t.Errorf("castling = %s, want %s", pos.Castling, tc.want)
			}
		})
	}

	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	flags := [4]bool{
		pos.Castling.CanCastle(White, true),
		pos.Castling.CanCastle(White, false),
		pos.Castling.CanCastle(Black, true),
		pos.Castling.CanCastle(Black, false),
	}
	if flags != [4]bool{true, false, false, true} {
		t.Errorf("Kq flags = %v, want [true false false true]", flags)
	}
	if got := pos.Castling.String(); got != "Kq" {
		t.Errorf("castling serializes to %q, want \"Kq\"", got)
	}
}

func TestParseEnPassant(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.EnPassant != NewSquare(4, 2) {
		t.Errorf("en passant = %s, want e3", pos.EnPassant)
	}
	if pos.EnPassant.String() != "e3" {
		t.Errorf("en passant serializes to %q, want \"e3\"", pos.EnPassant.String())
	}

	pos, err = ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("en passant = %s, want none", pos.EnPassant)
	}
	if pos.EnPassant.String() != "-" {
		t.Errorf("missing en passant serializes to %q, want \"-\"", pos.EnPassant.String())
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		want  error
		field string
	}{
		{"missing fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", ErrWrongFieldCount, "fields"},
		{"extra field", StartFEN + " extra", ErrWrongFieldCount, "fields"},
		{"empty string", "", ErrWrongFieldCount, "fields"},
		{"double space", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w  KQkq - 0 1", ErrWrongFieldCount, "fields"},
		{"trailing space", StartFEN + " ", ErrWrongFieldCount, "fields"},
		{"unknown piece", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrUnknownPieceChar, "placement"},
		{"digit zero", "rnbqkbnr/pppppppp/08/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrUnknownPieceChar, "placement"},
		{"digit nine", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrUnknownPieceChar, "placement"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrMalformedRank, "placement"},
		{"long rank", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrMalformedRank, "placement"},
		{"digit overflow", "rnbqkbnr/pppppppp/53/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrMalformedRank, "placement"},
		{"empty rank", "rnbqkbnr/pppppppp//8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrMalformedRank, "placement"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrMalformedRank, "placement"},
		{"nine ranks", "rnbqkbnr/pppppppp/8/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrMalformedRank, "placement"},
		{"unknown side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", ErrUnknownSide, "side"},
		{"uppercase side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR W KQkq - 0 1", ErrUnknownSide, "side"},
		{"castling letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1", ErrInvalidCastling, "castling"},
		{"castling repeat", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KK - 0 1", ErrInvalidCastling, "castling"},
		{"castling dash mix", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w K- - 0 1", ErrInvalidCastling, "castling"},
		{"castling too long", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkqK - 0 1", ErrInvalidCastling, "castling"},
		{"en passant file", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq i3 0 1", ErrInvalidNotation, "en passant"},
		{"en passant rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", ErrInvalidNotation, "en passant"},
		{"en passant length", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e 0 1", ErrInvalidNotation, "en passant"},
		{"halfmove text", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1", ErrInvalidNumber, "halfmove"},
		{"halfmove negative", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", ErrInvalidNumber, "halfmove"},
		{"fullmove plus", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 +1", ErrInvalidNumber, "fullmove"},
		{"fullmove overflow", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 99999999999", ErrInvalidNumber, "fullmove"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ParseFEN(%q) error = %v, want %v", tc.fen, err, tc.want)
			}

			var fenErr *FENError
			if !errors.As(err, &fenErr) {
				t.Fatalf("error %v is not a *FENError", err)
			}
			if fenErr.Field != tc.field {
				t.Errorf("FENError.Field = %q, want %q", fenErr.Field, tc.field)
			}

			if diff := cmp.Diff(Position{}, pos); diff != "" {
				t.Errorf("failed parse returned a partial position:\n%s", diff)
			}
		})
	}
}

func TestParseFENFailsFast(t *testing.T) {
	// Both the side and the castling field are bad; side comes first.
	_, err := ParseFEN("8/8/8/8/8/8/8/8 x KQxq - 0 1")
	if !errors.Is(err, ErrUnknownSide) {
		t.Errorf("error = %v, want ErrUnknownSide", err)
	}

	_, err = ParseFEN("8/8/8/8/8/8/8/8 w - - x y")
	var fenErr *FENError
	if !errors.As(err, &fenErr) || fenErr.Value != "x" {
		t.Errorf("error = %v, want halfmove value \"x\"", err)
	}
}

func TestParsedPositionsHaveDisjointMasks(t *testing.T) {
	for _, fen := range canonicalFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		for sq := A1; sq <= H8; sq++ {
			hits := 0
			for c := White; c <= Black; c++ {
				for pt := Pawn; pt <= King; pt++ {
					if pos.Armies[c][pt].IsSet(sq) {
						hits++
					}
				}
			}
			if hits > 1 {
				t.Errorf("%s: square %s is held by %d masks", fen, sq, hits)
			}
		}

		if err := pos.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", fen, err)
		}
	}
}

func TestFENErrorMessage(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	want := `fen side "x": unknown side to move`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}
