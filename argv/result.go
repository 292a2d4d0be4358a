package argv

// Result is the outcome of a parse: a destination→Value mapping plus the
// positional overflow, the post-separator remainder and the optional
// nested subcommand result. Populated by the engine, immutable to the
// caller once returned.
type Result struct {
	values map[string]Value

	// Extra holds bare values that matched no positional slot, in
	// arrival order.
	Extra []string

	// Remaining holds every token after a bare "--", verbatim and
	// untouched.
	Remaining []string

	// SubName is the canonical name of the matched subcommand, if any;
	// Sub is its result, owned by this parent.
	SubName string
	Sub     *Result

	// HelpRequested/VersionRequested mark early termination through a
	// built-in pseudo-option; the mapping may be partial in that case.
	HelpRequested    bool
	VersionRequested bool
}

func newResult() *Result {
	return &Result{values: make(map[string]Value)}
}

// Get returns the value stored under name.
func (r *Result) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether a destination is present in the mapping.
func (r *Result) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Len returns the number of populated destinations.
func (r *Result) Len() int { return len(r.values) }

// Typed accessors, in the Get/MustGet dual style: the Get form makes
// absence explicit, the Must form falls back to a caller default.

// String retrieves a string destination.
func (r *Result) String(name string) (string, bool) {
	v, ok := r.values[name]
	if !ok {
		return "", false
	}
	return v.Str()
}

// MustString retrieves a string destination with a default fallback.
func (r *Result) MustString(name, def string) string {
	if s, ok := r.String(name); ok {
		return s
	}
	return def
}

// Int retrieves a signed integer destination.
func (r *Result) Int(name string) (int64, bool) {
	v, ok := r.values[name]
	if !ok {
		return 0, false
	}
	return v.Int()
}

// MustInt retrieves a signed integer destination with a default.
func (r *Result) MustInt(name string, def int64) int64 {
	if i, ok := r.Int(name); ok {
		return i
	}
	return def
}

// Uint retrieves an unsigned integer destination.
func (r *Result) Uint(name string) (uint64, bool) {
	v, ok := r.values[name]
	if !ok {
		return 0, false
	}
	return v.Uint()
}

// MustUint retrieves an unsigned integer destination with a default.
func (r *Result) MustUint(name string, def uint64) uint64 {
	if u, ok := r.Uint(name); ok {
		return u
	}
	return def
}

// Float retrieves a float destination.
func (r *Result) Float(name string) (float64, bool) {
	v, ok := r.values[name]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// MustFloat retrieves a float destination with a default.
func (r *Result) MustFloat(name string, def float64) float64 {
	if f, ok := r.Float(name); ok {
		return f
	}
	return def
}

// Bool retrieves a boolean destination.
func (r *Result) Bool(name string) (bool, bool) {
	v, ok := r.values[name]
	if !ok {
		return false, false
	}
	return v.Bool()
}

// MustBool retrieves a boolean destination with a default.
func (r *Result) MustBool(name string, def bool) bool {
	if b, ok := r.Bool(name); ok {
		return b
	}
	return def
}

// Count retrieves a counter destination.
func (r *Result) Count(name string) (uint32, bool) {
	v, ok := r.values[name]
	if !ok {
		return 0, false
	}
	return v.Count()
}

// MustCount retrieves a counter destination with a default.
func (r *Result) MustCount(name string, def uint32) uint32 {
	if n, ok := r.Count(name); ok {
		return n
	}
	return def
}

// List retrieves an accumulated list destination.
func (r *Result) List(name string) ([]string, bool) {
	v, ok := r.values[name]
	if !ok {
		return nil, false
	}
	return v.List()
}

// MustList retrieves a list destination with a default.
func (r *Result) MustList(name string, def []string) []string {
	if l, ok := r.List(name); ok {
		return l
	}
	return def
}

// store overwrites the destination (last occurrence wins).
func (r *Result) store(name string, v Value) {
	r.values[name] = v
}

// appendTo accumulates one element into a per-destination list,
// preserving arrival order.
func (r *Result) appendTo(name, item string) {
	r.values[name] = r.values[name].appendItem(item)
}

// clear drops a destination so the next accumulation starts fresh.
func (r *Result) clear(name string) {
	delete(r.values, name)
}

// bump increments a counter destination (absent starts at 1).
func (r *Result) bump(name string) {
	r.values[name] = r.values[name].increment()
}
