package keyboard

import (
	"iter"
	"slices"
)

// KeyIndex is the position of a Key within a Keyboard. It is assigned once at
// construction (row-major document order) and never changes.
type KeyIndex int

// Keyboard is an immutable, ordered list of keys plus the two plot templates.
// It is safe for concurrent use by readers.
type Keyboard struct {
	keys              []Key
	plotTemplate      string
	plotTemplateShort string
}

// Assemble flattens the seven attributes of c row by row and zips them into
// one key list. It performs no validation: on a configuration that fails
// Config.Validate the result is unspecified (today it is cut to the shortest
// attribute). Use FromConfig unless c is known to be valid.
func Assemble(c Config) *Keyboard {
	var (
		mps   = flatten(c.MatrixPositions)
		ps    = flatten(c.Positions)
		hands = flatten(c.Hands)
		fings = flatten(c.Fingers)
		costs = flatten(c.KeyCosts)
		syms  = flatten(c.Symmetries)
		unbal = flatten(c.UnbalancingPositions)
	)
	n := min(len(mps), len(ps), len(hands), len(fings), len(costs), len(syms), len(unbal))

	keys := make([]Key, n)
	for i := range keys {
		keys[i] = Key{
			Hand:           hands[i],
			Finger:         fings[i],
			MatrixPosition: mps[i],
			Position:       ps[i],
			SymmetryIndex:  syms[i],
			Cost:           costs[i],
			Unbalancing:    unbal[i],
		}
	}
	return &Keyboard{
		keys:              keys,
		plotTemplate:      c.PlotTemplate,
		plotTemplateShort: c.PlotTemplateShort,
	}
}

// FromConfig validates c and assembles it into a Keyboard.
func FromConfig(c Config) (*Keyboard, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return Assemble(c), nil
}

// Len returns the number of keys.
func (k *Keyboard) Len() int { return len(k.keys) }

// Key returns the key at index i. It panics when i is out of range, like a
// slice index.
func (k *Keyboard) Key(i KeyIndex) Key { return k.keys[i] }

// Keys returns a copy of the key list in KeyIndex order.
func (k *Keyboard) Keys() []Key { return slices.Clone(k.keys) }

// All iterates over the keys in KeyIndex order.
func (k *Keyboard) All() iter.Seq2[KeyIndex, Key] {
	return func(yield func(KeyIndex, Key) bool) {
		for i, key := range k.keys {
			if !yield(KeyIndex(i), key) {
				return
			}
		}
	}
}

// IndexOfMatrixPosition returns the index of the key wired at mp.
func (k *Keyboard) IndexOfMatrixPosition(mp MatrixPosition) (KeyIndex, bool) {
	i := slices.IndexFunc(k.keys, func(key Key) bool { return key.MatrixPosition == mp })
	return KeyIndex(i), i >= 0
}

// KeysOf returns the indices of all keys operated by hand h.
func (k *Keyboard) KeysOf(h Hand) []KeyIndex {
	return k.filter(func(key Key) bool { return key.Hand == h })
}

// KeysOfFinger returns the indices of all keys operated by finger f of hand h.
func (k *Keyboard) KeysOfFinger(h Hand, f Finger) []KeyIndex {
	return k.filter(func(key Key) bool { return key.Hand == h && key.Finger == f })
}

// SymmetryGroup returns the indices of all keys sharing the symmetry index s.
func (k *Keyboard) SymmetryGroup(s int) []KeyIndex {
	return k.filter(func(key Key) bool { return key.SymmetryIndex == s })
}

func (k *Keyboard) filter(keep func(Key) bool) []KeyIndex {
	var out []KeyIndex
	for i, key := range k.keys {
		if keep(key) {
			out = append(out, KeyIndex(i))
		}
	}
	return out
}

// PlotTemplate returns the full plot template.
func (k *Keyboard) PlotTemplate() string { return k.plotTemplate }

// PlotTemplateShort returns the compact plot template.
func (k *Keyboard) PlotTemplateShort() string { return k.plotTemplateShort }
