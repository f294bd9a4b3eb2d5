package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"movietier/pkg/models"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cli.toml")

	empty, err := loadSession(path)
	if err != nil || empty.Token != "" {
		t.Fatalf("missing session should load empty: %+v %v", empty, err)
	}

	want := session{API: "http://example:8080", Token: "abc", Username: "ana", LastList: "l1"}
	if err := saveSession(path, want); err != nil {
		t.Fatalf("saveSession: %v", err)
	}
	got, err := loadSession(path)
	if err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if got.baseURL("") != "http://example:8080" || got.baseURL("http://other/") != "http://other" {
		t.Fatalf("baseURL precedence wrong")
	}
}

func TestWebsocketURL(t *testing.T) {
	cases := map[string][2]string{
		"http://localhost:8080":  {"l1", "ws://localhost:8080/ws?tierlist=l1"},
		"https://tiers.example/": {"", "wss://tiers.example/ws"},
	}
	for base, tc := range cases {
		got, err := websocketURL(base, tc[0])
		if err != nil || got != tc[1] {
			t.Fatalf("websocketURL(%q) = %q, %v; want %q", base, got, err, tc[1])
		}
	}
}

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	tl, _ := models.NewTierList("Heist films", "")
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/tierlists", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(tl)
	})
	mux.HandleFunc("PATCH /api/tierlists/{id}/movies/{imdb}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != tl.ID {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		if r.PathValue("imdb") != "tt0113277" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"movie not found"}`))
			return
		}
		moved := tl.WithMovies(models.TierS, models.Movies{{ImdbID: "tt0113277", Title: "Heat", Year: "1995"}})
		moved.Version = 3
		_ = json.NewEncoder(w).Encode(moved)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateThenMoveUsesCurrentList(t *testing.T) {
	api := fakeAPI(t)
	sessionPath := filepath.Join(t.TempDir(), "cli.toml")
	base := []string{"--api", api.URL, "--session", sessionPath}

	out, err := runCLI(t, append(base, "list", "create", "Heist films")...)
	if err != nil {
		t.Fatalf("list create: %v", err)
	}
	if !strings.Contains(out, "Heist films") || !strings.Contains(out, "(empty)") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = runCLI(t, append(base, "movie", "move", "tt0113277", "s")...)
	if err != nil {
		t.Fatalf("movie move: %v", err)
	}
	if !strings.Contains(out, "Heat") || !strings.Contains(out, "version 3") {
		t.Fatalf("unexpected output %q", out)
	}

	_, err = runCLI(t, append(base, "movie", "move", "tt404", "A")...)
	if err == nil || !strings.Contains(err.Error(), "movie not found") {
		t.Fatalf("expected server error, got %v", err)
	}

	if _, err := runCLI(t, append(base, "movie", "move", "tt0113277", "Q")...); err == nil {
		t.Fatal("expected local container validation error")
	}
}

func TestListShowWithoutCurrentList(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "cli.toml")
	_, err := runCLI(t, "--session", sessionPath, "list", "show")
	if err == nil || !strings.Contains(err.Error(), "no current tier list") {
		t.Fatalf("expected missing list error, got %v", err)
	}
}
