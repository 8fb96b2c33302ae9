// Package try turns (value, error) pairs into a single expression.
//
//	u := try.To(users.Get(ctx, 1)).OrFatal(t)
package try

// Fataler is *testing.T, *log.Logger or anything which can give up.
type Fataler interface {
	Fatal(...any)
}

// Result holds either a value or an error.
type Result[T any] struct {
	value T
	err   error
}

func To[T any](value T, err error) Result[T] {
	return Result[T]{value: value, err: err}
}

func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		return *new(T), r.err
	}
	return r.value, nil
}

// OrFatal returns the value, or calls ftl.Fatal with the error.
func (r Result[T]) OrFatal(ftl Fataler) T {
	if r.err == nil {
		return r.value
	}
	if h, ok := ftl.(interface{ Helper() }); ok {
		h.Helper()
	}
	ftl.Fatal(r.err)
	return *new(T)
}

func (r Result[T]) OrDefault(d T) T {
	if r.err != nil {
		return d
	}
	return r.value
}

// Map converts the value when there is no error.
func Map[T, R any](r Result[T], f func(T) R) Result[R] {
	if r.err != nil {
		return Result[R]{err: r.err}
	}
	return Result[R]{value: f(r.value)}
}
