package view

import (
	"math"
	"reflect"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/vango-dev/tether/pkg/dom"
)

// Scalar is the set of primitive types rendered as a text node.
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// ValueProduct is the product of a primitive view: a text node plus the memo
// it was last written from.
type ValueProduct[T comparable] struct {
	memo T
	el   *dom.Element
}

// El implements Product.
func (p *ValueProduct[T]) El() *dom.Element { return p.el }

// Value renders a number or boolean as text.
type Value[T Scalar] struct {
	V T
}

// Of returns a Value view for v.
func Of[T Scalar](v T) Value[T] {
	return Value[T]{V: v}
}

// Build implements View.
func (v Value[T]) Build(rt *Runtime) Product {
	return &ValueProduct[T]{memo: v.V, el: dom.NewText(rt.Host(), Format(v.V))}
}

// Update implements View.
func (v Value[T]) Update(p Product) {
	vp := As[*ValueProduct[T]](p)
	if vp.memo != v.V {
		vp.memo = v.V
		vp.el.SetText(Format(v.V))
	}
}

// Format returns the text a Value renders for v.
func Format[T Scalar](v T) string {
	var buf [32]byte
	return string(appendScalar(buf[:0], v))
}

func appendScalar[T Scalar](buf []byte, v T) []byte {
	switch x := any(v).(type) {
	case bool:
		return strconv.AppendBool(buf, x)
	case int:
		return strconv.AppendInt(buf, int64(x), 10)
	case int8:
		return strconv.AppendInt(buf, int64(x), 10)
	case int16:
		return strconv.AppendInt(buf, int64(x), 10)
	case int32:
		return strconv.AppendInt(buf, int64(x), 10)
	case int64:
		return strconv.AppendInt(buf, x, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(x), 10)
	case uint8:
		return strconv.AppendUint(buf, uint64(x), 10)
	case uint16:
		return strconv.AppendUint(buf, uint64(x), 10)
	case uint32:
		return strconv.AppendUint(buf, uint64(x), 10)
	case uint64:
		return strconv.AppendUint(buf, x, 10)
	case uintptr:
		return strconv.AppendUint(buf, uint64(x), 10)
	case float32:
		return appendFloat(buf, float64(x), 32)
	case float64:
		return appendFloat(buf, x, 64)
	}
	return appendNamed(buf, reflect.ValueOf(v))
}

// appendNamed handles named scalar types, which the type switch misses.
func appendNamed(buf []byte, rv reflect.Value) []byte {
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.AppendBool(buf, rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.AppendInt(buf, rv.Int(), 10)
	case reflect.Float32:
		return appendFloat(buf, rv.Float(), 32)
	case reflect.Float64:
		return appendFloat(buf, rv.Float(), 64)
	default:
		return strconv.AppendUint(buf, rv.Uint(), 10)
	}
}

// appendFloat writes the shortest representation that round-trips, in the
// layout of the ryu crate: integral values keep a ".0" suffix, exponents
// carry no '+' or zero padding ("1e21", "1e-7"), and infinities are "inf".
// Decimal notation is used for decimal exponents -5 through 15 (12 for
// float32).
func appendFloat(buf []byte, f float64, bits int) []byte {
	switch {
	case math.IsNaN(f):
		return append(buf, "NaN"...)
	case math.IsInf(f, 1):
		return append(buf, "inf"...)
	case math.IsInf(f, -1):
		return append(buf, "-inf"...)
	}

	maxExp := 15
	if bits == 32 {
		maxExp = 12
	}
	start := len(buf)
	buf = strconv.AppendFloat(buf, f, 'e', -1, bits)
	if exp := exponentOf(buf[start:]); f != 0 && (exp < -5 || exp > maxExp) {
		return trimExponent(buf, start)
	}

	buf = strconv.AppendFloat(buf[:start], f, 'f', -1, bits)
	for _, c := range buf[start:] {
		if c == '.' {
			return buf
		}
	}
	return append(buf, '.', '0')
}

// exponentOf parses the exponent of a number formatted with 'e'.
func exponentOf(b []byte) int {
	i := 0
	for i < len(b) && b[i] != 'e' {
		i++
	}
	i++
	neg := false
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		neg = b[i] == '-'
		i++
	}
	exp := 0
	for ; i < len(b); i++ {
		exp = exp*10 + int(b[i]-'0')
	}
	if neg {
		return -exp
	}
	return exp
}

// trimExponent rewrites "e+21" as "e21" and "e-07" as "e-7".
func trimExponent(buf []byte, start int) []byte {
	e := start
	for e < len(buf) && buf[e] != 'e' {
		e++
	}
	if e == len(buf) {
		return buf
	}
	digits := e + 1
	out := buf[:digits]
	if buf[digits] == '-' {
		out = append(out, '-')
		digits++
	} else if buf[digits] == '+' {
		digits++
	}
	for digits < len(buf)-1 && buf[digits] == '0' {
		digits++
	}
	return append(out, buf[digits:]...)
}
