package freq

import "testing"

func TestCyclingAlphabet(t *testing.T) {
	t.Parallel()

	if got := CyclingAlphabet(0); got != nil {
		t.Errorf("CyclingAlphabet(0) = %v, want nil", got)
	}
	if got := CyclingAlphabet(-1); got != nil {
		t.Errorf("CyclingAlphabet(-1) = %v, want nil", got)
	}

	seq := CyclingAlphabet(60)
	if len(seq) != 60 {
		t.Fatalf("length = %d, want 60", len(seq))
	}
	for i, r := range seq {
		want := rune('a' + i%GeneratorAlphabetSize)
		if r != want {
			t.Fatalf("seq[%d] = %q, want %q", i, r, want)
		}
	}
	// One full cycle plus wrap: 'a' again at index 26.
	if seq[26] != 'a' || seq[51] != 'z' {
		t.Errorf("cycle boundaries wrong: seq[26]=%q seq[51]=%q", seq[26], seq[51])
	}
}

func TestCyclingAlphabetInto(t *testing.T) {
	t.Parallel()
	buf := make([]rune, 30)
	CyclingAlphabetInto(buf)
	if buf[0] != 'a' || buf[25] != 'z' || buf[26] != 'a' {
		t.Errorf("unexpected fill: %q", string(buf))
	}
}

func TestRandomRunesDeterministic(t *testing.T) {
	t.Parallel()

	a := RandomRunes(1000, 26, 99)
	b := RandomRunes(1000, 26, 99)
	if string(a) != string(b) {
		t.Error("same seed produced different sequences")
	}

	c := RandomRunes(1000, 26, 100)
	if string(a) == string(c) {
		t.Error("different seeds produced identical sequences")
	}
}

func TestRandomRunesInto(t *testing.T) {
	t.Parallel()

	buf := make([]rune, 1000)
	RandomRunesInto(buf, 26, 99)
	if string(buf) != string(RandomRunes(1000, 26, 99)) {
		t.Error("RandomRunesInto diverged from RandomRunes for the same seed")
	}

	RandomRunesInto(nil, 26, 1)
}

func TestRandomRunesAlphabetBounds(t *testing.T) {
	t.Parallel()

	seq := RandomRunes(5000, 5, 1)
	for i, r := range seq {
		if r < 'a' || r >= 'a'+5 {
			t.Fatalf("seq[%d] = %q outside alphabet of size 5", i, r)
		}
	}

	// Alphabet clamped to at least one symbol.
	seq = RandomRunes(10, 0, 1)
	for i, r := range seq {
		if r != 'a' {
			t.Fatalf("seq[%d] = %q, want 'a' for single-symbol alphabet", i, r)
		}
	}

	if got := RandomRunes(0, 26, 1); got != nil {
		t.Errorf("RandomRunes(0, ...) = %v, want nil", got)
	}
}
