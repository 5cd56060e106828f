package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "crimecast/internal/platform/errors"
	pnet "crimecast/internal/platform/net"
	phttp "crimecast/internal/platform/net/http"
)

func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func TestJSONHelper(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("JSON status: expected 418, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type %q", ct)
	}
}

func TestHandle_OKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.OK(map[string]string{"a": "b"})
	})(rec, reqWithReqID("GET", "/x", "rid-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("OK code: %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.StatusCode != 200 || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}
}

func TestHandle_ErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Error(perr.NotFoundf("model %q", "x.yaml"))
	})(rec, reqWithReqID("GET", "/err", "rid-3"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != perr.ErrorCodeNotFound || env.Error == "" || env.RequestID != "rid-3" {
		t.Fatalf("bad error envelope: %+v", env)
	}
}

func TestReturnStyle_Handle(t *testing.T) {
	t.Run("ok with headers", func(t *testing.T) {
		h := phttp.Handle(func(r *http.Request) phttp.Response {
			resp := phttp.OK("hello")
			resp.Header = http.Header{}
			resp.Header.Set("X-Thing", "yup")
			return resp
		})
		rec := httptest.NewRecorder()
		h(rec, reqWithReqID("GET", "/ok", "rid-4"))
		if rec.Code != http.StatusOK || rec.Header().Get("X-Thing") != "yup" {
			t.Fatalf("code=%d header=%q", rec.Code, rec.Header().Get("X-Thing"))
		}
		env := decodeEnvelope(t, rec)
		if s, ok := env.Data.(string); !ok || s != "hello" || env.RequestID != "rid-4" {
			t.Fatalf("bad envelope: %+v", env)
		}
	})

	t.Run("zero status defaults to 200", func(t *testing.T) {
		h := phttp.Handle(func(r *http.Request) phttp.Response {
			return phttp.Response{Body: []int{1}}
		})
		rec := httptest.NewRecorder()
		h(rec, reqWithReqID("GET", "/z", ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("project error maps status", func(t *testing.T) {
		h := phttp.Handle(func(r *http.Request) phttp.Response {
			return phttp.Error(perr.Validationf("start_date is required"))
		})
		rec := httptest.NewRecorder()
		h(rec, reqWithReqID("POST", "/err", "rid-7"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("handle error code: %d", rec.Code)
		}
		if env := decodeEnvelope(t, rec); env.Error != "start_date is required" {
			t.Fatalf("bad envelope: %+v", env)
		}
	})

	t.Run("foreign error is 500", func(t *testing.T) {
		h := phttp.Handle(func(r *http.Request) phttp.Response {
			return phttp.Error(errors.New("boom"))
		})
		rec := httptest.NewRecorder()
		h(rec, reqWithReqID("GET", "/gen", "rid-9"))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500 for generic error, got %d", rec.Code)
		}
	})
}
