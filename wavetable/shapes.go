package wavetable

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Sine returns one period of a sine wave in size entries.
func Sine(size int) Table {
	return build(size, func(t float64) float64 {
		return math.Sin(t * 2.0 * math.Pi)
	})
}

// Sawtooth returns one period of a rising sawtooth wave in size entries.
func Sawtooth(size int) Table {
	return build(size, func(t float64) float64 {
		return 2.0*t - 1.0
	})
}

// Square returns one period of a square wave in size entries.
func Square(size int) Table {
	return build(size, func(t float64) float64 {
		if t < 0.5 {
			return 1.0
		}
		return -1.0
	})
}

// Triangle returns one period of a triangle wave in size entries, starting at -1 and peaking
// at +1 halfway through.
func Triangle(size int) Table {
	return build(size, func(t float64) float64 {
		if t < 0.5 {
			return 4.0*t - 1.0
		}
		return 3.0 - 4.0*t
	})
}

var shapes = map[string]func(size int) Table{
	"sine":     Sine,
	"sawtooth": Sawtooth,
	"saw":      Sawtooth,
	"square":   Square,
	"triangle": Triangle,
}

// Shapes returns the names accepted by Shape, sorted.
func Shapes() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shape returns the closed-form table called name.
func Shape(name string, size int) (Table, error) {
	fn, ok := shapes[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("wavetable: unknown shape %q (known: %s)", name, strings.Join(Shapes(), ", "))
	}
	return fn(size), nil
}

// build samples fn over one period; t runs over [0, 1) in size steps.
func build(size int, fn func(t float64) float64) Table {
	checkSize(size)
	table := make(Table, size)
	for i := range table {
		table[i] = fn(float64(i) / float64(size))
	}
	return table
}
