package searchapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xZaitsev/polaris/pkg/catalog"
	"github.com/0xZaitsev/polaris/pkg/searchindex"
	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()
	coll := searchindex.Build([]catalog.Song{
		{VirtualPath: "seasons.mp3", ArtistNames: []string{"Dragonforce"}},
	})
	svc := New(coll)
	r := chi.NewRouter()
	svc.Routes(r)
	return svc, httptest.NewServer(r)
}

func TestSearchEndpointReturnsMatches(t *testing.T) {
	_, srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/search?q=dragonforce")
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0] != "seasons.mp3" {
		t.Fatalf("unexpected results: %+v", body.Results)
	}
	if body.BuildID == "" {
		t.Fatal("expected a non-empty build id")
	}
}

func TestSearchEndpointRejectsMissingQuery(t *testing.T) {
	_, srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/search")
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSearchEndpointRejectsInvalidQuerySyntax(t *testing.T) {
	_, srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/search?q=" + "title%20%26%20agon") // "title & agon"
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSwapInstallsNewBuildID(t *testing.T) {
	svc, srv := newTestServer(t)
	defer srv.Close()

	before := *svc.buildID.Load()

	coll2 := searchindex.Build([]catalog.Song{
		{VirtualPath: "whale.mp3", Title: "Whale Song"},
	})
	svc.Swap(coll2)

	after := *svc.buildID.Load()
	if before == after {
		t.Fatal("expected build id to change after Swap")
	}

	resp, err := http.Get(srv.URL + "/search?q=whale")
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	defer resp.Body.Close()
	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0] != "whale.mp3" {
		t.Fatalf("unexpected results after swap: %+v", body.Results)
	}
}

func TestHealthzReturnsOK(t *testing.T) {
	_, srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
