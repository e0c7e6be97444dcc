package board

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/daystram/brainrot/position"
)

const (
	Width  = position.MaxComponentScalar
	Height = position.MaxComponentScalar

	EmptyNotation = "8/8/8/8/8/8/8/8"
)

// Encode renders the board in its text notation. Rows are written from rank 0;
// the flag fields are appended only when they differ from DefaultFlags.
func Encode(b *Board) string {
	rows := make([]string, Height)
	for rank := range Height {
		var sb strings.Builder
		var skip int
		for file := range Width {
			tok := encodeSquare(b.grid[rank][file])
			if tok == "" {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = sb.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = sb.WriteString(tok)
		}
		if skip != 0 {
			_, _ = sb.WriteString(strconv.Itoa(skip))
		}
		rows[rank] = sb.String()
	}
	text := strings.Join(rows, "/")
	if !b.flags.IsDefault() {
		text += " " + b.flags.String()
	}
	return text
}

func encodeSquare(sq Square) string {
	if sq.IsBlank() {
		return ""
	}
	var sym string
	if sq.Piece != nil {
		sym = sq.Piece.Symbol()
	}
	if len(sym) == 1 && sq.Type == SquareStandard && sq.Conditions == 0 {
		return sym
	}
	var fields []string
	if sym != "" {
		fields = append(fields, "P="+sym)
	}
	if sq.Type != SquareStandard {
		fields = append(fields, "T="+sq.Type.String())
	}
	for _, c := range AllConditions {
		if sq.Conditions.Has(c) {
			fields = append(fields, "C="+c.String())
		}
	}
	return "(" + strings.Join(fields, ",") + ")"
}

// Decode parses the text notation. Decoding is lenient: unknown tokens are logged
// and dropped, and the grid is padded or truncated to 8x8.
func Decode(text string) *Board {
	b := NewBoard()
	placement, rest := cutTopLevel(strings.TrimSpace(text), ' ')
	rows := splitTopLevel(placement, '/')
	if len(rows) != Height {
		log().Warn("unexpected row count", zap.Int("rows", len(rows)), zap.Int("want", Height))
	}
	for rank, row := range rows {
		if rank >= Height {
			break
		}
		squares := decodeRow(row)
		if len(squares) != Width {
			log().Warn("unexpected square count",
				zap.Int("rank", rank),
				zap.Int("squares", len(squares)),
				zap.Int("want", Width))
		}
		for file, sq := range squares {
			if file >= Width {
				break
			}
			b.grid[rank][file] = sq
		}
	}
	if rest != "" {
		b.flags = decodeFlags(rest)
	}
	return b
}

func decodeRow(row string) []Square {
	var squares []Square
	for i := 0; i < len(row); i++ {
		switch ch := row[i]; {
		case '1' <= ch && ch <= '9':
			for range int(ch - '0') {
				squares = append(squares, Square{})
			}
		case ch == '(':
			end := FindMatchingParen(row, i)
			if end < 0 {
				log().Warn("unterminated square", zap.String("row", row), zap.Int("offset", i))
				end = len(row) - 1
			}
			squares = append(squares, decodeSquare(row[i:end+1]))
			i = end
		default:
			squares = append(squares, Square{Piece: parsePiece(string(ch))})
		}
	}
	return squares
}

func decodeSquare(tok string) Square {
	var sq Square
	if len(tok) < 2 || tok[0] != '(' {
		return sq
	}
	inner := strings.TrimSuffix(tok[1:], ")")
	for _, f := range stateFields(inner) {
		switch f.key {
		case "P":
			sq.Piece = parsePiece(f.value)
		case "T":
			t, ok := parseSquareType(f.value)
			if !ok {
				log().Warn("unknown square type", zap.String("type", f.value))
			}
			sq.Type = t
		case "C":
			c, ok := parseCondition(f.value)
			if !ok {
				log().Warn("unknown square condition", zap.String("condition", f.value))
				continue
			}
			sq.Conditions.Set(c)
		default:
			log().Warn("unknown square attribute", zap.String("field", f.raw))
		}
	}
	return sq
}

func decodeFlags(s string) Flags {
	f := DefaultFlags()
	fields := strings.Fields(s)
	if len(fields) > 2 {
		log().Warn("ignoring extra notation fields", zap.Strings("fields", fields[2:]))
	}
	if len(fields) > 0 {
		c, err := parseCastleRights(fields[0])
		if err != nil {
			log().Warn("invalid castling rights", zap.Error(err))
		} else {
			f.Castle = c
		}
	}
	if len(fields) > 1 && fields[1] != "-" {
		ep, err := position.NewCoordFromNotation(fields[1])
		if err != nil {
			log().Warn("invalid en passant target", zap.String("value", fields[1]), zap.Error(err))
		} else {
			f.EnPassant = &ep
		}
	}
	return f
}

type pieceDecoder func(name, state string) Piece

func builtinDecoder(name string) (pieceDecoder, bool) {
	switch strings.ToUpper(name) {
	case "P":
		return standardDecoder(NewPawn), true
	case "R":
		return standardDecoder(NewRook), true
	case "N":
		return standardDecoder(NewKnight), true
	case "B":
		return standardDecoder(NewBishop), true
	case "Q":
		return standardDecoder(NewQueen), true
	case "K":
		return standardDecoder(NewKing), true
	case "M":
		return standardDecoder(NewMonkey), true
	case "G":
		return decodeGoblin, true
	case "S":
		return decodeSkibidi, true
	case "BUS":
		return decodeBus, true
	default:
		return nil, false
	}
}

func standardDecoder[T Piece](ctor func(Side) T) pieceDecoder {
	return func(name, state string) Piece {
		if state != "" {
			log().Warn("ignoring state of stateless piece", zap.String("symbol", name), zap.String("state", state))
		}
		return ctor(sideOfSymbol(name))
	}
}

// parsePiece decodes a piece symbol such as "r", "S(PHASE=3)" or "BUS(P=(N))".
// Unknown symbols are logged and yield nil.
func parsePiece(tok string) Piece {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return nil
	}
	name, state := tok, ""
	if open := strings.IndexByte(tok, '('); open >= 0 {
		name = tok[:open]
		end := FindMatchingParen(tok, open)
		switch {
		case end < 0:
			log().Warn("unterminated piece state", zap.String("symbol", tok))
			state = tok[open+1:]
		default:
			if end != len(tok)-1 {
				log().Warn("trailing characters after piece state", zap.String("symbol", tok))
			}
			state = tok[open+1 : end]
		}
	}
	if dec, ok := builtinDecoder(name); ok {
		return dec(name, state)
	}
	if dec, ok := lookupCustom(name); ok {
		return decodeCustom(dec, name, state)
	}
	log().Warn("unknown piece", zap.String("symbol", tok))
	return nil
}

// FindMatchingParen returns the index of the parenthesis closing the one at open,
// or -1 when s[open] is not '(' or the group is never closed.
func FindMatchingParen(s string, open int) int {
	if open < 0 || open >= len(s) || s[open] != '(' {
		return -1
	}
	var depth int
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// SplitTopLevel splits s at commas that are not nested inside parentheses.
func SplitTopLevel(s string) []string {
	return splitTopLevel(s, ',')
}

// cutTopLevel slices s around the first sep that is not nested inside parentheses.
func cutTopLevel(s string, sep byte) (before, after string) {
	var depth int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				return s[:i], s[i+1:]
			}
		}
	}
	return s, ""
}

func splitTopLevel(s string, sep byte) []string {
	if s == "" {
		return nil
	}
	var parts []string
	var depth, start int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

type field struct {
	key, value, raw string
}

// stateFields parses a comma separated KEY=VALUE list. Values may nest parentheses.
func stateFields(s string) []field {
	var fields []field
	for _, part := range SplitTopLevel(s) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			log().Warn("malformed attribute", zap.String("field", part))
			continue
		}
		fields = append(fields, field{key: strings.TrimSpace(k), value: strings.TrimSpace(v), raw: part})
	}
	return fields
}
