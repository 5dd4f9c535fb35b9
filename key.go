package keyboard

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Hand identifies the hand that operates a key.
type Hand int

const (
	Left Hand = iota
	Right
)

var handNames = [...]string{Left: "Left", Right: "Right"}

// Hands lists every hand in declaration order.
var Hands = []Hand{Left, Right}

func (h Hand) String() string {
	if h < 0 || int(h) >= len(handNames) {
		return fmt.Sprintf("Hand(%d)", int(h))
	}
	return handNames[h]
}

// Other returns the opposite hand.
func (h Hand) Other() Hand {
	if h == Left {
		return Right
	}
	return Left
}

// ParseHand maps "Left"/"Right" to a Hand.
func ParseHand(s string) (Hand, error) {
	for i, n := range handNames {
		if n == s {
			return Hand(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hand %q (want one of %v)", s, handNames)
}

func (h Hand) MarshalText() ([]byte, error) {
	if h < 0 || int(h) >= len(handNames) {
		return nil, fmt.Errorf("invalid hand %d", int(h))
	}
	return []byte(handNames[h]), nil
}

func (h *Hand) UnmarshalText(b []byte) error {
	v, err := ParseHand(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// Finger identifies the finger that operates a key.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
)

var fingerNames = [...]string{
	Thumb:  "Thumb",
	Index:  "Index",
	Middle: "Middle",
	Ring:   "Ring",
	Pinky:  "Pinky",
}

// Fingers lists every finger from thumb to pinky.
var Fingers = []Finger{Thumb, Index, Middle, Ring, Pinky}

func (f Finger) String() string {
	if f < 0 || int(f) >= len(fingerNames) {
		return fmt.Sprintf("Finger(%d)", int(f))
	}
	return fingerNames[f]
}

// ParseFinger maps a finger name ("Thumb" ... "Pinky") to a Finger.
func ParseFinger(s string) (Finger, error) {
	for i, n := range fingerNames {
		if n == s {
			return Finger(i), nil
		}
	}
	return 0, fmt.Errorf("unknown finger %q (want one of %v)", s, fingerNames)
}

func (f Finger) MarshalText() ([]byte, error) {
	if f < 0 || int(f) >= len(fingerNames) {
		return nil, fmt.Errorf("invalid finger %d", int(f))
	}
	return []byte(fingerNames[f]), nil
}

func (f *Finger) UnmarshalText(b []byte) error {
	v, err := ParseFinger(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MatrixPosition is the column/row address of a key in the switch matrix.
// Documents encode it as a two-element sequence [col, row].
type MatrixPosition struct {
	Col uint8
	Row uint8
}

func (m MatrixPosition) String() string { return fmt.Sprintf("(%d,%d)", m.Col, m.Row) }

func (m MatrixPosition) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{int(m.Col), int(m.Row)})
}

func (m *MatrixPosition) UnmarshalJSON(b []byte) error {
	var pair [2]int
	if err := unmarshalPairJSON(b, &pair); err != nil {
		return fmt.Errorf("matrix position: %w", err)
	}
	return m.set(pair)
}

func (m MatrixPosition) MarshalYAML() (any, error) {
	return []int{int(m.Col), int(m.Row)}, nil
}

func (m *MatrixPosition) UnmarshalYAML(n *yaml.Node) error {
	var pair [2]int
	if err := decodePairYAML(n, &pair); err != nil {
		return fmt.Errorf("matrix position: %w", err)
	}
	return m.set(pair)
}

func (m *MatrixPosition) set(pair [2]int) error {
	for _, v := range pair {
		if v < 0 || v > math.MaxUint8 {
			return fmt.Errorf("matrix position: coordinate %d outside [0, %d]", v, math.MaxUint8)
		}
	}
	m.Col, m.Row = uint8(pair[0]), uint8(pair[1])
	return nil
}

// Position is the physical placement of a key, used for plotting.
// Documents encode it as a two-element sequence [x, y].
type Position struct {
	X float64
	Y float64
}

func (p Position) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Position) UnmarshalJSON(b []byte) error {
	var pair [2]float64
	if err := unmarshalPairJSON(b, &pair); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

func (p Position) MarshalYAML() (any, error) {
	return []float64{p.X, p.Y}, nil
}

func (p *Position) UnmarshalYAML(n *yaml.Node) error {
	var pair [2]float64
	if err := decodePairYAML(n, &pair); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

// unmarshalPairJSON decodes a JSON array of exactly two non-null elements
// into dst.
func unmarshalPairJSON[T int | float64](b []byte, dst *[2]T) error {
	if string(bytes.TrimSpace(b)) == "null" {
		return errors.New("expected 2 coordinates, got null")
	}
	var items []*T
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	if len(items) != 2 {
		return fmt.Errorf("expected 2 coordinates, got %d", len(items))
	}
	for i, v := range items {
		if v == nil {
			return fmt.Errorf("coordinate %d is null", i)
		}
		dst[i] = *v
	}
	return nil
}

// decodePairYAML decodes a YAML sequence of exactly two non-null elements
// into dst.
func decodePairYAML[T int | float64](n *yaml.Node, dst *[2]T) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a sequence [a, b]", n.Line)
	}
	if len(n.Content) != 2 {
		return fmt.Errorf("line %d: expected 2 coordinates, got %d", n.Line, len(n.Content))
	}
	for i, c := range n.Content {
		if c.Kind == yaml.ScalarNode && c.ShortTag() == "!!null" {
			return fmt.Errorf("line %d: coordinate %d is null", c.Line, i)
		}
		if err := c.Decode(&dst[i]); err != nil {
			return err
		}
	}
	return nil
}

// Key is one physical key with all of its properties.
type Key struct {
	Hand           Hand           `json:"hand" yaml:"hand"`
	Finger         Finger         `json:"finger" yaml:"finger"`
	MatrixPosition MatrixPosition `json:"matrix_position" yaml:"matrix_position"`
	Position       Position       `json:"position" yaml:"position"`
	SymmetryIndex  int            `json:"symmetry_index" yaml:"symmetry_index"`
	Cost           float64        `json:"cost" yaml:"cost"`
	Unbalancing    float64        `json:"unbalancing" yaml:"unbalancing"`
}
