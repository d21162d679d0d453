package handler

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ErrNotCallable is returned when a module exposes no invocable handler
// through any supported export shape.
var ErrNotCallable = errors.New("handler module is not callable")

// accessors is the fixed, ordered list of member names tried after the
// module value itself.
var accessors = []string{"Handler", "Default"}

// Resolve adapts an externally supplied handler module to a Func. It tries,
// in order: the module value itself, then its Handler member, then its
// Default member (exported field or method). Resolution happens once at
// startup; callers must treat an error as fatal and refuse to serve traffic,
// since every request to the route would otherwise fail identically.
func Resolve(module any) (Func, error) {
	if module == nil {
		return nil, fmt.Errorf("resolve handler: %w", ErrNotCallable)
	}
	if fn := asFunc(module); fn != nil {
		return fn, nil
	}
	for _, name := range accessors {
		member, ok := lookupMember(module, name)
		if !ok {
			continue
		}
		if fn := asFunc(member); fn != nil {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("resolve handler: module %T: %w", module, ErrNotCallable)
}

// asFunc converts a candidate value to a Func, or nil when the candidate has
// no invocable shape.
func asFunc(candidate any) Func {
	switch fn := candidate.(type) {
	case Func:
		return fn
	case func(ctx context.Context, event Event) (Result, error):
		return Func(fn)
	case Invoker:
		return fn.Invoke
	}
	return nil
}

// lookupMember fetches an exported field or method by name.
func lookupMember(module any, name string) (any, bool) {
	rv := reflect.ValueOf(module)

	if m := rv.MethodByName(name); m.IsValid() && m.CanInterface() {
		return m.Interface(), true
	}

	elem := rv
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, false
		}
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		if f := elem.FieldByName(name); f.IsValid() && f.CanInterface() {
			return f.Interface(), true
		}
	}
	return nil, false
}
