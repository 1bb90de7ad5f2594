package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cod3gen/zeekr-homeassistant/core/state"
)

// Kind selects how a raw status code maps to its native value
type Kind int

const (
	// Toggle is on if the raw code equals On
	Toggle Kind = iota
	// Inverted is on unless the raw code equals Off
	Inverted
	// Number is a numeric code divided by Factor
	Number
	// Level is a 0..MaxLevel intensity
	Level
	// Vent is a status code (1 on, 2 off) plus a separate Detail level
	Vent
)

// MaxLevel is the highest seat heat/vent intensity
const MaxLevel = 3

const (
	ventOn  = 1
	ventOff = 2
)

// Field describes the encoding of a single status field
type Field struct {
	Kind    Kind
	Path    string
	On, Off string  // Toggle, Inverted
	Strict  bool    // codes other than On/Off decode as unknown
	Factor  float64 // Number
	Detail  string  // Vent
}

// Raw returns the field's status code as string
func (f Field) Raw(t state.Tree) (string, bool) {
	return raw(t, f.Path)
}

func raw(t state.Tree, path string) (string, bool) {
	v, ok := state.Lookup(t, path)
	if !ok {
		return "", false
	}

	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v), true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// Bool decodes a Toggle or Inverted field
func (f Field) Bool(t state.Tree) (bool, bool) {
	s, ok := f.Raw(t)
	if !ok {
		return false, false
	}

	if f.Strict && s != f.On && s != f.Off {
		return false, false
	}

	if f.Kind == Inverted {
		return s != f.Off, true
	}

	return s == f.On, true
}

// Encode returns the status code representing v
func (f Field) Encode(v bool) string {
	if v {
		return f.On
	}
	return f.Off
}

// SetBool patches the field to the code representing v
func (f Field) SetBool(t state.Tree, v bool) {
	state.Set(t, f.Path, f.Encode(v))
}

func (f Field) factor() float64 {
	if f.Factor == 0 {
		return 1
	}
	return f.Factor
}

// Float decodes a Number field, rounded to one decimal
func (f Field) Float(t state.Tree) (float64, bool) {
	s, ok := f.Raw(t)
	if !ok {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return math.Round(v/f.factor()*10) / 10, true
}

// EncodeFloat returns the scaled integer code representing v
func (f Field) EncodeFloat(v float64) string {
	return strconv.Itoa(int(math.Round(v * f.factor())))
}

// SetFloat patches the field to the code representing v
func (f Field) SetFloat(t state.Tree, v float64) {
	state.Set(t, f.Path, f.EncodeFloat(v))
}

func toLevel(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxLevel {
		return 0
	}
	return n
}

// Level decodes a Level or Vent field. Unparsable or out of range values are off.
func (f Field) Level(t state.Tree) (int, bool) {
	s, ok := f.Raw(t)
	if !ok {
		return 0, false
	}

	if f.Kind != Vent {
		return toLevel(s), true
	}

	if sts, err := strconv.Atoi(s); err != nil || sts != ventOn {
		return 0, true
	}

	detail, _ := raw(t, f.Detail)
	return toLevel(detail), true
}

// SetLevel patches the field to represent level n
func (f Field) SetLevel(t state.Tree, n int) {
	if f.Kind != Vent {
		state.Set(t, f.Path, n)
		return
	}

	if n == 0 {
		state.Set(t, f.Path, ventOff)
		state.Set(t, f.Detail, 0)
		return
	}

	state.Set(t, f.Path, ventOn)
	state.Set(t, f.Detail, n)
}
