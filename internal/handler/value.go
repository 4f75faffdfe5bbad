package handler

import (
	"fmt"
	"math"
)

// valueRange is the value state shared by sliders and knobs.
type valueRange struct {
	minimum float64
	maximum float64
	step    float64

	value float64
	// valueTmp is the unquantized value. Drags and scrolls accumulate into
	// it so that movements smaller than a step are not lost.
	valueTmp float64
	valueDef float64

	usingDefault bool
	usingLog     bool
}

func newValueRange() valueRange {
	return valueRange{
		minimum:  0,
		maximum:  1,
		value:    0.5,
		valueTmp: 0.5,
		valueDef: 0.5,
	}
}

// logscale maps a linear position in [minimum, maximum] onto an exponential
// curve through the same end points.
func (r *valueRange) logscale(v float64) float64 {
	b := math.Log(r.maximum/r.minimum) / (r.maximum - r.minimum)
	a := r.maximum / math.Exp(r.maximum*b)
	return a * math.Exp(b*v)
}

func (r *valueRange) invlogscale(v float64) float64 {
	b := math.Log(r.maximum/r.minimum) / (r.maximum - r.minimum)
	a := r.maximum / math.Exp(r.maximum*b)
	return math.Log(v/a) / b
}

func (r *valueRange) setRange(min, max float64) (changed bool, err error) {
	if !(max > min) {
		return false, fmt.Errorf("%w: maximum %g must exceed minimum %g", ErrInvalidRange, max, min)
	}
	if r.usingLog && min <= 0 {
		return false, fmt.Errorf("%w: log scale needs a positive minimum, got %g", ErrInvalidRange, min)
	}

	switch {
	case r.value < min:
		r.value, r.valueTmp = min, min
		changed = true
	case r.value > max:
		r.value, r.valueTmp = max, max
		changed = true
	}
	r.minimum, r.maximum = min, max
	return changed, nil
}

func (r *valueRange) setUsingLog(on bool) error {
	if on && r.minimum <= 0 {
		return fmt.Errorf("%w: log scale needs a positive minimum, got %g", ErrInvalidRange, r.minimum)
	}
	r.usingLog = on
	return nil
}

func (r *valueRange) setDefault(def float64) {
	r.valueDef = clamp(def, r.minimum, r.maximum)
	r.usingDefault = true
}

// set stores v clamped to the range and reports whether the value changed.
// The unquantized value restarts from v. NaN is rejected.
func (r *valueRange) set(v float64) bool {
	if !r.store(v) {
		return false
	}
	r.valueTmp = r.value
	return true
}

// store is set for values produced by settle: valueTmp already holds the
// unquantized position and is left alone.
func (r *valueRange) store(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	v = clamp(v, r.minimum, r.maximum)
	if isEqual(r.value, v) {
		return false
	}
	r.value = v
	return true
}

func (r *valueRange) quantize(v float64) float64 {
	if isZero(r.step) {
		return v
	}
	return clamp(math.Round(v/r.step)*r.step, r.minimum, r.maximum)
}

// settle clamps v to the range, records it as the unquantized value and
// returns it rounded to the step.
func (r *valueRange) settle(v float64) float64 {
	switch {
	case v < r.minimum:
		r.valueTmp = r.minimum
		return r.minimum
	case v > r.maximum:
		r.valueTmp = r.maximum
		return r.maximum
	}
	r.valueTmp = v
	return r.quantize(v)
}

// atPortion returns the value at portion p of the range, 0 being the
// minimum end (the maximum end when inverted).
func (r *valueRange) atPortion(p float64, inverted bool) float64 {
	span := r.maximum - r.minimum
	v := r.minimum + p*span
	if inverted {
		v = r.maximum - p*span
	}
	if r.usingLog {
		v = r.logscale(v)
	}
	return r.settle(v)
}

// nudge moves the unquantized value by fraction of the range, in linear
// space when a log scale is active.
func (r *valueRange) nudge(fraction float64) float64 {
	v := r.valueTmp
	if r.usingLog {
		v = r.invlogscale(v)
	}
	v += (r.maximum - r.minimum) * fraction
	if r.usingLog {
		v = r.logscale(v)
	}
	return r.settle(v)
}

func (r *valueRange) normalized() float64 {
	v := r.value
	if r.usingLog {
		v = r.invlogscale(v)
	}
	return (v - r.minimum) / (r.maximum - r.minimum)
}
