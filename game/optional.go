package game

// Opt is a value that may be absent. It replaces "unset" sentinels on entity
// fields where zero is a meaningful value.
type Opt[T any] struct {
	value T
	set   bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// None returns an absent Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// Or returns the value if present, otherwise def.
func (o Opt[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Set stores v.
func (o *Opt[T]) Set(v T) {
	o.value = v
	o.set = true
}

// Unset clears the value.
func (o *Opt[T]) Unset() {
	var zero T
	o.value = zero
	o.set = false
}
