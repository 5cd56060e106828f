package modkit

import (
	"net/http"
	"slices"
	"strings"

	phttp "crimecast/internal/platform/net/http"
)

// Built is the resolved option set a module keeps after New
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:   c.name,
		Prefix: c.prefix,
		Mw:     slices.Clone(c.mw),
		Ports:  c.ports,
	}
}

// Mount runs register inside a scope of its own: a Route under Prefix, or a
// Group at the root. Module middleware never leaks to sibling modules
func (b Built) Mount(r phttp.Router, register func(phttp.Router)) {
	scoped := func(rr phttp.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		register(rr)
	}
	if p := strings.Trim(b.Prefix, " /"); p != "" {
		r.Route("/"+p, scoped)
		return
	}
	r.Group(scoped)
}
