package modkit

import (
	"testing"

	"crimecast/internal/modkit/module"
	phttp "crimecast/internal/platform/net/http"
)

type stub struct{ mounted bool }

func (s *stub) MountRoutes(_ phttp.Router) { s.mounted = true }
func (s *stub) Ports() any                 { return nil }
func (s *stub) Name() string               { return "stub" }

func TestModule_IsRegistryContract(t *testing.T) {
	t.Parallel()

	var m Module = &stub{}
	mods := []module.Module{m}
	mods[0].MountRoutes(nil)
	if !m.(*stub).mounted || mods[0].Name() != "stub" {
		t.Fatal("module alias should be interchangeable with module.Module")
	}
}
