package argv

import "testing"

func TestResultTypedAccessors(t *testing.T) {
	r := newResult()
	r.store("name", StringValue("zoe"))
	r.store("port", IntValue(8080))
	r.store("force", BoolValue(true))

	if got, ok := r.String("name"); !ok || got != "zoe" {
		t.Errorf("String = %q, %v", got, ok)
	}
	if got, ok := r.Int("port"); !ok || got != 8080 {
		t.Errorf("Int = %d, %v", got, ok)
	}
	if got, ok := r.Bool("force"); !ok || !got {
		t.Errorf("Bool = %v, %v", got, ok)
	}

	// Mismatched kinds fail cleanly instead of converting.
	if _, ok := r.Bool("name"); ok {
		t.Error("Bool on a string succeeded")
	}
}

func TestResultMustAccessorsFallBack(t *testing.T) {
	r := newResult()
	r.store("port", IntValue(9000))

	if got := r.MustInt("port", 1); got != 9000 {
		t.Errorf("MustInt present = %d", got)
	}
	if got := r.MustInt("absent", 42); got != 42 {
		t.Errorf("MustInt absent = %d", got)
	}
	if got := r.MustString("port", "fallback"); got != "fallback" {
		t.Errorf("MustString kind mismatch = %q", got)
	}
}

func TestResultHasAndLen(t *testing.T) {
	r := newResult()
	if r.Has("x") || r.Len() != 0 {
		t.Error("empty result reports contents")
	}
	r.store("x", StringValue("1"))
	if !r.Has("x") || r.Len() != 1 {
		t.Error("stored destination not reported")
	}
}
