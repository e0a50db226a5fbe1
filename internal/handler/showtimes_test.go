package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinebook/cinebook/internal/audit"
	"github.com/cinebook/cinebook/internal/testutil"
)

const showtimesFixture = `{
	"20151130": ["720d006c-3a57-4b6a-b18f-9b713b073f3c"],
	"20151201": ["a8034f44-aee4-44cf-b32c-74cf452aaaae", "720d006c-3a57-4b6a-b18f-9b713b073f3c"]
}`

func TestShowtimes_Get_Passthrough(t *testing.T) {
	recorder := audit.NewCapture()
	h := NewShowtimes(loadStore[json.RawMessage](t, showtimesFixture), recorder, testutil.DiscardLogger())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/showtimes/20151201", nil), "date", "20151201")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Value is opaque: whatever the fixture holds is passed through untouched
	ids := decodeBody[[]string](t, rec)
	if len(ids) != 2 || ids[0] != "a8034f44-aee4-44cf-b32c-74cf452aaaae" {
		t.Errorf("unexpected passthrough value: %v", ids)
	}

	entries := recorder.Entries()
	if len(entries) != 1 || entries[0].Action != "showtimes.date.accessed" || entries[0].ResourceID != "20151201" {
		t.Errorf("expected showtimes.date.accessed audit entry, got %+v", entries)
	}
}

func TestShowtimes_Get_UnknownDate(t *testing.T) {
	h := NewShowtimes(loadStore[json.RawMessage](t, showtimesFixture), audit.NewNoop(), testutil.DiscardLogger())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/showtimes/19700101", nil), "date", "19700101")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestShowtimes_List(t *testing.T) {
	recorder := audit.NewCapture()
	h := NewShowtimes(loadStore[json.RawMessage](t, showtimesFixture), recorder, testutil.DiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/showtimes", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	all := decodeBody[map[string]json.RawMessage](t, rec)
	if len(all) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(all))
	}

	entries := recorder.Entries()
	if len(entries) != 1 || entries[0].Action != "showtimes.list.accessed" {
		t.Errorf("expected showtimes.list.accessed audit entry, got %+v", entries)
	}
}
