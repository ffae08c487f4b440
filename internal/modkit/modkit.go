// Package modkit wires API modules together: the deps every module gets, the
// surface a module exposes and how one module's ports reach another
package modkit

import (
	"fmt"
	"reflect"

	"pontual/internal/modkit/httpkit"
	"pontual/internal/modkit/repokit"
	"pontual/internal/platform/config"
	"pontual/internal/platform/logger"
	"pontual/internal/platform/metrics"
)

// Deps are shared by every module. PG and CH are nil when the backend is
// disabled; a nil Metrics records nothing
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	CH      repokit.Clickhouse
	Metrics *metrics.Metrics
}

// Module is what the API mounts
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r httpkit.Router)
}

// Base is the part of a module fixed at construction
type Base struct {
	Name   string
	Prefix string // "" mounts nothing
	Needs  any    // ports taken from other modules
}

// Option adjusts a Base
type Option func(*Base)

// WithPorts hands a module the ports it needs from other modules
func WithPorts(needs any) Option { return func(b *Base) { b.Needs = needs } }

// Build returns the Base for a module called name mounted at prefix
func Build(name, prefix string, opts ...Option) Base {
	b := Base{Name: name, Prefix: prefix}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Mount registers routes under b.Prefix
func (b Base) Mount(r httpkit.Router, register func(httpkit.Router)) {
	if b.Prefix == "" {
		return
	}
	r.Route(b.Prefix, func(sub httpkit.Router) { register(sub) })
}

// NeedsOf returns the ports given through WithPorts. A module built without
// them is a wiring bug and panics
func NeedsOf[T any](b Base) T {
	n, ok := b.Needs.(T)
	if !ok {
		panic(fmt.Sprintf("%s module needs %v, got %T", b.Name, reflect.TypeFor[T](), b.Needs))
	}
	return n
}

// MustPortsOf returns m's ports as T, panicking on a wiring mismatch
func MustPortsOf[T any](m Module) T {
	p, ok := m.Ports().(T)
	if !ok {
		panic(fmt.Sprintf("%s module exposes %T, not %v", m.Name(), m.Ports(), reflect.TypeFor[T]()))
	}
	return p
}
