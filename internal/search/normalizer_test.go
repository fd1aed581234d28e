package search

import "testing"

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"already canonical", "knx cable", "knx cable"},
		{"uppercase ascii", "HDL BusPro", "hdl buspro"},
		{"cyrillic brand", "изикул", "easycool"},
		{"cyrillic protocol misspelling", "кникс", "knx"},
		{"cable phrase", "кабель knx", "cable knx"},
		{"integration question", "как подключить алису к knx", "connect alice knx"},
		{"punctuation stripped", "J-Y(St)Y 2x2x0,8", "j y st y 2x2x0 8"},
		{"hyphenated trigger", "easy-cool", "easycool"},
		{"dotted trigger", "yee.light", "yeelight"},
		{"hyphenated cyrillic trigger", "изи-кул", "easycool"},
		{"mixed cyrillic dropped", "датчик движения hdl", "sensor hdl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(nil)

	inputs := []string{
		"кабель knx",
		"изикул",
		"как подключить алису к knx",
		"HDL панель Granite",
		"easy cool",
		"easy-cool",
		"yee.light",
		"изи-кул",
		"J-Y(St)Y 2x2x0,8",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeMemoized(t *testing.T) {
	n := NewNormalizer(nil)

	first := n.Normalize("кабель knx")
	second := n.Normalize("кабель knx")
	if first != second {
		t.Errorf("memoized result differs: %q vs %q", first, second)
	}
}

func TestExpand(t *testing.T) {
	e := NewExpander(nil)

	variants := e.Expand("knx cable")
	if variants[0] != "knx cable" {
		t.Fatalf("first variant = %q, want the query itself", variants[0])
	}
	want := map[string]bool{"knx wire": false, "eib cable": false}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for v, found := range want {
		if !found {
			t.Errorf("expected variant %q in %v", v, variants)
		}
	}
}

func TestExpandEmpty(t *testing.T) {
	e := NewExpander(nil)

	variants := e.Expand("")
	if len(variants) != 1 || variants[0] != "" {
		t.Errorf("Expand(\"\") = %v, want single empty variant", variants)
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"abc", "abc", 1},
		{"abcd", "bcd", 6.0 / 7.0},
	}
	for _, tt := range tests {
		got := Ratio(tt.a, tt.b)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
