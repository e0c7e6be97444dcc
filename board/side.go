package board

import (
	"fmt"
	"strings"
	"unicode"
)

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

// ParseSide accepts "white", "black" or their first letter, in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return SideWhite, nil
	case "black", "b":
		return SideBlack, nil
	default:
		return SideUnknown, fmt.Errorf("unknown side %q", s)
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// Cased renders a symbol token in the case owned by the side: upper for White,
// lower for Black.
func (s Side) Cased(token string) string {
	if s == SideBlack {
		return strings.ToLower(token)
	}
	return strings.ToUpper(token)
}

// sideOfSymbol infers the side from the case of the first letter of a token.
func sideOfSymbol(token string) Side {
	for _, r := range token {
		if !unicode.IsLetter(r) {
			break
		}
		if unicode.IsLower(r) {
			return SideBlack
		}
		return SideWhite
	}
	return SideUnknown
}
