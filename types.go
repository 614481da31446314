// FILE: lixenwraith/typedconfig/types.go
package typedconfig

import "reflect"

// None is the absence type. It is written as "none" or "None" on the command line.
// A pointer field *T behaves as the union None | T.
type None struct{}

// unionType is implemented by the union wrappers of this package.
type unionType interface {
	alternatives() []reflect.Type
	held() (int, any, bool)
}

type unionSetter interface {
	setHeld(i int, v any)
}

// tupleType is implemented by the tuple wrappers of this package.
type tupleType interface {
	elements() []reflect.Type
	variadic() bool
	values() []any
}

type tupleSetter interface {
	setValues(vs []any)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Either holds a value of exactly one of two types.
// Alternatives are tried in declaration order, except None which is always tried first.
type Either[A, B any] struct {
	index int
	value any
	set   bool
}

// EitherA returns an Either holding its first alternative.
func EitherA[A, B any](a A) Either[A, B] {
	return Either[A, B]{index: 0, value: a, set: true}
}

// EitherB returns an Either holding its second alternative.
func EitherB[A, B any](b B) Either[A, B] {
	return Either[A, B]{index: 1, value: b, set: true}
}

// First returns the held value if it is the first alternative.
func (e Either[A, B]) First() (A, bool) {
	a, ok := e.value.(A)
	return a, ok && e.set && e.index == 0
}

// Second returns the held value if it is the second alternative.
func (e Either[A, B]) Second() (B, bool) {
	b, ok := e.value.(B)
	return b, ok && e.set && e.index == 1
}

// Index reports which alternative is held, or -1 for the zero value.
func (e Either[A, B]) Index() int {
	if !e.set {
		return -1
	}
	return e.index
}

// Value returns the held value.
func (e Either[A, B]) Value() any { return e.value }

func (e Either[A, B]) alternatives() []reflect.Type {
	return []reflect.Type{typeOf[A](), typeOf[B]()}
}

func (e Either[A, B]) held() (int, any, bool) { return e.index, e.value, e.set }

func (e *Either[A, B]) setHeld(i int, v any) {
	e.index, e.value, e.set = i, v, true
}

// Either3 holds a value of exactly one of three types.
type Either3[A, B, C any] struct {
	index int
	value any
	set   bool
}

// Either3Of returns an Either3 holding alternative i with value v.
// It panics if v does not have the type of alternative i.
func Either3Of[A, B, C any](i int, v any) Either3[A, B, C] {
	var e Either3[A, B, C]
	alts := e.alternatives()
	if i < 0 || i >= len(alts) || reflect.TypeOf(v) != alts[i] {
		panic("typedconfig: value does not match Either3 alternative")
	}
	e.setHeld(i, v)
	return e
}

func (e Either3[A, B, C]) First() (A, bool) {
	a, ok := e.value.(A)
	return a, ok && e.set && e.index == 0
}

func (e Either3[A, B, C]) Second() (B, bool) {
	b, ok := e.value.(B)
	return b, ok && e.set && e.index == 1
}

func (e Either3[A, B, C]) Third() (C, bool) {
	c, ok := e.value.(C)
	return c, ok && e.set && e.index == 2
}

func (e Either3[A, B, C]) Index() int {
	if !e.set {
		return -1
	}
	return e.index
}

func (e Either3[A, B, C]) Value() any { return e.value }

func (e Either3[A, B, C]) alternatives() []reflect.Type {
	return []reflect.Type{typeOf[A](), typeOf[B](), typeOf[C]()}
}

func (e Either3[A, B, C]) held() (int, any, bool) { return e.index, e.value, e.set }

func (e *Either3[A, B, C]) setHeld(i int, v any) {
	e.index, e.value, e.set = i, v, true
}

// Tuple2 is a fixed-arity tuple, written as "(a, b)".
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

func (t Tuple2[A, B]) elements() []reflect.Type {
	return []reflect.Type{typeOf[A](), typeOf[B]()}
}

func (t Tuple2[A, B]) variadic() bool { return false }
func (t Tuple2[A, B]) values() []any  { return []any{t.V1, t.V2} }

func (t *Tuple2[A, B]) setValues(vs []any) {
	t.V1 = vs[0].(A)
	t.V2 = vs[1].(B)
}

// Tuple3 is a fixed-arity tuple, written as "(a, b, c)".
type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

func (t Tuple3[A, B, C]) elements() []reflect.Type {
	return []reflect.Type{typeOf[A](), typeOf[B](), typeOf[C]()}
}

func (t Tuple3[A, B, C]) variadic() bool { return false }
func (t Tuple3[A, B, C]) values() []any  { return []any{t.V1, t.V2, t.V3} }

func (t *Tuple3[A, B, C]) setValues(vs []any) {
	t.V1 = vs[0].(A)
	t.V2 = vs[1].(B)
	t.V3 = vs[2].(C)
}

// VarTuple is an immutable tuple of any length whose items all share type T,
// written as "(a, b, ...)". Slices are rejected by the parser because they are
// mutable; VarTuple is the supported alternative.
type VarTuple[T any] struct {
	items []T
}

// VarTupleOf returns a VarTuple holding a copy of items.
func VarTupleOf[T any](items ...T) VarTuple[T] {
	return VarTuple[T]{items: append([]T(nil), items...)}
}

// Len returns the number of items.
func (t VarTuple[T]) Len() int { return len(t.items) }

// At returns item i.
func (t VarTuple[T]) At(i int) T { return t.items[i] }

// Items returns a copy of the items.
func (t VarTuple[T]) Items() []T {
	return append([]T(nil), t.items...)
}

func (t VarTuple[T]) elements() []reflect.Type { return []reflect.Type{typeOf[T]()} }
func (t VarTuple[T]) variadic() bool           { return true }

func (t VarTuple[T]) values() []any {
	vs := make([]any, len(t.items))
	for i, item := range t.items {
		vs[i] = item
	}
	return vs
}

func (t *VarTuple[T]) setValues(vs []any) {
	if len(vs) == 0 {
		t.items = nil
		return
	}
	t.items = make([]T, len(vs))
	for i, v := range vs {
		t.items[i] = v.(T)
	}
}
