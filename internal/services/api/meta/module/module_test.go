package module

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	modkit "crimecast/internal/modkit"
	phttp "crimecast/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("unreadable") }

func TestModule_MountsUnderMetaWithPorts(t *testing.T) {
	m := New(modkit.Deps{}, modkit.WithPorts(Ports{Models: downStore{}}))
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name=%q ports=%v", m.Name(), m.Ports())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/meta/ready", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("/meta/ready => %d", rec.Code)
	}
	var env struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.Data.Status != "fail" {
		t.Fatalf("ready body = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/meta/health", nil))
	if !strings.Contains(rec.Body.String(), `"service":"crimecast-web"`) {
		t.Fatalf("health body = %s", rec.Body.String())
	}
}
