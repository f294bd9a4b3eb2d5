package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintEventFilters(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, []byte(`{"type":"welcome","message":"connected","clients":1}`), "l1", true)
	printEvent(&out, []byte(`{"type":"tierlist.movie_added","tierListId":"l2","imdbId":"tt0","version":2}`), "l1", false)
	printEvent(&out, []byte(`{"type":"tierlist.movie_added","tierListId":"l1","imdbId":"tt1","version":2}`), "l1", false)

	got := strings.TrimSpace(out.String())
	if strings.Count(got, "\n") != 0 || !strings.Contains(got, `"tt1"`) {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrintEventUnfiltered(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, []byte(`{"type":"welcome"}`), "", true)
	printEvent(&out, []byte(`{"type":"tierlist.created","tierListId":"l1","version":1}`), "", true)

	if !strings.Contains(out.String(), "welcome") || !strings.Contains(out.String(), "\n  \"type\"") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
