package board

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/daystram/brainrot/position"
)

var ErrNotCarrier = errors.New("piece is not a carrier")

// Capability is a host-defined piece behaviour. A Capability may also implement
// CapabilityEffector or CapabilityCarrier to opt into those hooks.
type Capability interface {
	// Token is the uppercase notation token, e.g. "DRAGON".
	Token() string
	// State is the parenthesised state body, without the parentheses, or "".
	State() string
	InitialMoves(b *Board, from position.Coord, s Side) []Move
	Clone() Capability
}

type CapabilityEffector interface {
	PostMoveEffects(self *Custom, before, after *Board, mv Move) error
}

type CapabilityCarrier interface {
	CanCarry(p Piece) bool
	Passengers() []Piece
	Load(p Piece) error
	Unload(index int) (Piece, error)
	Reload(index int, p Piece) error
}

// Custom adapts a Capability into a Piece.
type Custom struct {
	Colored
	Capability Capability
}

func NewCustom(s Side, c Capability) *Custom {
	return &Custom{Colored: Colored{s}, Capability: c}
}

func (*Custom) Kind() Kind { return KindCustom }

func (c *Custom) Clone() Piece {
	return &Custom{Colored: c.Colored, Capability: c.Capability.Clone()}
}

func (c *Custom) Symbol() string {
	sym := c.Color.Cased(c.Capability.Token())
	if state := c.Capability.State(); state != "" {
		sym += "(" + state + ")"
	}
	return sym
}

func (c *Custom) InitialMoves(b *Board, from position.Coord) []Move {
	return c.Capability.InitialMoves(b, from, c.Color)
}

func (c *Custom) PostMoveEffects(before, after *Board, mv Move) error {
	if e, ok := c.Capability.(CapabilityEffector); ok {
		return e.PostMoveEffects(c, before, after, mv)
	}
	return nil
}

func (c *Custom) CanCarry(p Piece) bool {
	cc, ok := c.Capability.(CapabilityCarrier)
	return ok && cc.CanCarry(p)
}

func (c *Custom) Passengers() []Piece {
	if cc, ok := c.Capability.(CapabilityCarrier); ok {
		return cc.Passengers()
	}
	return nil
}

func (c *Custom) Load(p Piece) error {
	if cc, ok := c.Capability.(CapabilityCarrier); ok {
		return cc.Load(p)
	}
	return fmt.Errorf("%w: %s", ErrNotCarrier, c.Capability.Token())
}

func (c *Custom) Unload(index int) (Piece, error) {
	if cc, ok := c.Capability.(CapabilityCarrier); ok {
		return cc.Unload(index)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotCarrier, c.Capability.Token())
}

func (c *Custom) Reload(index int, p Piece) error {
	if cc, ok := c.Capability.(CapabilityCarrier); ok {
		return cc.Reload(index, p)
	}
	return fmt.Errorf("%w: %s", ErrNotCarrier, c.Capability.Token())
}

// CustomDecoder builds a Capability from the state body of a notation token.
type CustomDecoder func(state string) (Capability, error)

var customs = struct {
	sync.RWMutex
	decoders map[string]CustomDecoder
}{decoders: make(map[string]CustomDecoder)}

// RegisterCustom teaches the codec a new piece token. The token is matched case
// insensitively; uppercase decodes to White and lowercase to Black. Built-in tokens
// cannot be overridden.
func RegisterCustom(token string, dec CustomDecoder) error {
	key := strings.ToUpper(token)
	if key == "" || dec == nil {
		return fmt.Errorf("invalid custom piece registration %q", token)
	}
	if _, ok := builtinDecoder(key); ok {
		return fmt.Errorf("piece token %q is reserved", token)
	}
	customs.Lock()
	defer customs.Unlock()
	customs.decoders[key] = dec
	return nil
}

// UnregisterCustom removes a token registered with RegisterCustom.
func UnregisterCustom(token string) {
	customs.Lock()
	defer customs.Unlock()
	delete(customs.decoders, strings.ToUpper(token))
}

func lookupCustom(token string) (CustomDecoder, bool) {
	customs.RLock()
	defer customs.RUnlock()
	dec, ok := customs.decoders[strings.ToUpper(token)]
	return dec, ok
}

func decodeCustom(dec CustomDecoder, name, state string) Piece {
	capability, err := dec(state)
	if err != nil {
		log().Warn("cannot decode custom piece", zap.String("symbol", name), zap.Error(err))
		return nil
	}
	return NewCustom(sideOfSymbol(name), capability)
}
