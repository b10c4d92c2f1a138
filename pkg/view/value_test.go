package view_test

import (
	"math"
	"testing"

	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/view"
	"github.com/vango-dev/tether/pkg/vtest"
)

func mount(h *vtest.Host, v view.View) view.Product {
	p := v.Build(view.NewRuntime(h))
	h.Append(h.Root(), p.El().Anchor())
	h.Reset()
	return p
}

func TestFormat(t *testing.T) {
	type celsius float64
	type level uint8
	type flag bool
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"int", view.Format(42), "42"},
		{"negative int8", view.Format(int8(-8)), "-8"},
		{"uint64 max", view.Format(uint64(math.MaxUint64)), "18446744073709551615"},
		{"uintptr", view.Format(uintptr(7)), "7"},
		{"bool", view.Format(true), "true"},
		{"integral float", view.Format(1.0), "1.0"},
		{"fraction", view.Format(0.25), "0.25"},
		{"float32", view.Format(float32(1.5)), "1.5"},
		{"named float", view.Format(celsius(20)), "20.0"},
		{"negative zero", view.Format(math.Copysign(0, -1)), "-0.0"},
		{"named int", view.Format(level(3)), "3"},
		{"named bool", view.Format(flag(true)), "true"},
		{"below exponent limit", view.Format(1e15), "1000000000000000.0"},
		{"large", view.Format(1e21), "1e21"},
		{"large mantissa", view.Format(1.5e300), "1.5e300"},
		{"small", view.Format(1e-7), "1e-7"},
		{"smallest decimal", view.Format(1e-5), "0.00001"},
		{"float32 large", view.Format(float32(1e13)), "1e13"},
		{"nan", view.Format(math.NaN()), "NaN"},
		{"inf", view.Format(math.Inf(1)), "inf"},
		{"negative inf", view.Format(math.Inf(-1)), "-inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Format = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestValueUpdateIsChangeGated(t *testing.T) {
	h := vtest.NewHost()
	p := mount(h, view.Of(3))
	vtest.ExpectText(t, h, "3")

	view.Of(3).Update(p)
	vtest.ExpectNoPatches(t, h)

	view.Of(4).Update(p)
	vtest.ExpectOps(t, h, dom.PatchSetText)
	vtest.ExpectText(t, h, "4")
}

func TestTextAndStr(t *testing.T) {
	tests := []struct {
		name  string
		build func(s string) view.View
	}{
		{"Text", func(s string) view.View { return view.Text(s) }},
		{"Str", func(s string) view.View { return view.Str(s) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := vtest.NewHost()
			p := mount(h, tt.build("hello"))

			tt.build("hello").Update(p)
			vtest.ExpectNoPatches(t, h)

			tt.build("world").Update(p)
			vtest.ExpectOps(t, h, dom.PatchSetText)
			vtest.ExpectText(t, h, "world")
		})
	}
}

func TestBoolValue(t *testing.T) {
	h := vtest.NewHost()
	p := mount(h, view.Of(false))
	vtest.ExpectText(t, h, "false")

	view.Of(true).Update(p)
	vtest.ExpectText(t, h, "true")
}
