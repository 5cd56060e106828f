// Package module holds the module contract plus the port lookup helpers
package module

import (
	"reflect"

	phttp "crimecast/internal/platform/net/http"
)

// Module is one mountable feature of the API. It sits apart from modkit so
// feature packages can export their ports without an import cycle
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}

// PortsOf pulls an interface T out of a module's Ports() bundle.
// The bundle may implement T itself, or be a struct (or pointer to one)
// with an exported field that does
func PortsOf[T any](m Module) (t T, ok bool) {
	p := m.Ports()
	if p == nil {
		return t, false
	}
	if v, ok2 := p.(T); ok2 {
		return v, true
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return t, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return t, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok2 := f.Interface().(T); ok2 {
			return v, true
		}
	}
	return t, false
}

// MustPortsOf is PortsOf that panics with the module name when T is missing
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic("module: requested port not found on module " + m.Name())
}
