// README: Geocoder tests against a stubbed Nominatim endpoint.
package geo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func stubGeocoder(t *testing.T, handler http.HandlerFunc) *Geocoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeocoder(srv.URL, "sn", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestResolvePlace_OK(t *testing.T) {
	var gotQuery, gotCountry, gotUA string
	g := stubGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCountry = r.URL.Query().Get("countrycodes")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`[{"lat":"14.716677","lon":"-17.467686"}]`))
	})

	p, ok := g.ResolvePlace(context.Background(), "Dakar")
	if !ok {
		t.Fatal("expected a resolved point")
	}
	if p.Lat != 14.716677 || p.Lng != -17.467686 {
		t.Errorf("point = %+v", p)
	}
	if gotQuery != "Dakar" || gotCountry != "sn" {
		t.Errorf("query params q=%q countrycodes=%q", gotQuery, gotCountry)
	}
	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Errorf("lookup must carry an identifying User-Agent, got %q", gotUA)
	}
}

func TestResolvePlace_EmptyResultSet(t *testing.T) {
	g := stubGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	if _, ok := g.ResolvePlace(context.Background(), "Nulle Part"); ok {
		t.Error("empty result set must be a miss")
	}
}

func TestResolvePlace_ProviderError(t *testing.T) {
	g := stubGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, ok := g.ResolvePlace(context.Background(), "Dakar"); ok {
		t.Error("provider error must be a miss, not a panic or a point")
	}
}

func TestResolvePlace_MalformedBody(t *testing.T) {
	g := stubGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	})

	if _, ok := g.ResolvePlace(context.Background(), "Dakar"); ok {
		t.Error("malformed body must be a miss")
	}
}

func TestResolvePlace_EmptyQuery(t *testing.T) {
	called := false
	g := stubGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if _, ok := g.ResolvePlace(context.Background(), ""); ok {
		t.Error("empty query must be a miss")
	}
	if called {
		t.Error("empty query must not hit the provider")
	}
}
