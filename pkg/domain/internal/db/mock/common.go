package mocks

// CallLog records arguments of calls, in order.
type CallLog[T any] []T

func (l CallLog[T]) Times() uint {
	return uint(len(l))
}

// Last returns the arguments of the latest call.
//
// ok is false when it is never called.
func (l CallLog[T]) Last() (last T, ok bool) {
	if len(l) == 0 {
		return last, false
	}
	return l[len(l)-1], true
}
