//go:build !js
// +build !js

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simukka/journey-soundscape/audio"
)

func get(t *testing.T, mux http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_Index(t *testing.T) {
	rec := get(t, newMux(t.TempDir(), audio.GetSchedule("")), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Soundscape") {
		t.Error("Expected the index page to drive window.Soundscape")
	}
}

func TestServer_ScheduleRoundTrips(t *testing.T) {
	mux := newMux(t.TempDir(), audio.GetSchedule("classic"))

	rec := get(t, mux, "/api/schedule")
	s, err := audio.LoadSchedule(rec.Body)
	if err != nil {
		t.Fatalf("Expected a loadable schedule, got %v", err)
	}
	if s.Name != "classic" || len(s.Windows) != len(audio.GetSchedule("classic").Windows) {
		t.Errorf("Expected the classic schedule, got %q with %d windows", s.Name, len(s.Windows))
	}

	if rec := get(t, mux, "/api/schedule?name=descent"); rec.Code != http.StatusOK {
		t.Errorf("Expected preset lookup to succeed, got %d", rec.Code)
	}
	if rec := get(t, mux, "/api/schedule?name=nope"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown preset, got %d", rec.Code)
	}
}

func TestServer_ScheduleList(t *testing.T) {
	rec := get(t, newMux(t.TempDir(), audio.GetSchedule("descent")), "/api/schedules")
	var body struct {
		Active  string   `json:"active"`
		Presets []string `json:"presets"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Active != "descent" || len(body.Presets) != len(audio.SchedulePresets) {
		t.Errorf("Expected active descent and all presets, got %+v", body)
	}
}

func TestServer_Health(t *testing.T) {
	rec := get(t, newMux(t.TempDir(), audio.GetSchedule("")), "/api/health")
	if rec.Body.String() != `{"status":"healthy"}` {
		t.Errorf("Expected healthy status, got %s", rec.Body.String())
	}
}

func TestServer_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.js"), []byte("// bundle"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec := get(t, newMux(dir, audio.GetSchedule("")), "/main.js")
	if rec.Body.String() != "// bundle" {
		t.Errorf("Expected the bundle from the static dir, got %q", rec.Body.String())
	}
}

func TestLoadSchedule_PresetOrFile(t *testing.T) {
	if s, err := loadSchedule("classic"); err != nil || s.Name != "classic" {
		t.Errorf("Expected classic preset, got %v (%v)", s, err)
	}

	path := filepath.Join(t.TempDir(), "custom.json")
	data, _ := json.Marshal(audio.Schedule{
		Name:    "custom",
		Windows: []audio.Window{{Name: "All", Start: 0, End: 1}},
	})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if s, err := loadSchedule(path); err != nil || s.Name != "custom" {
		t.Errorf("Expected custom schedule from file, got %v (%v)", s, err)
	}

	if _, err := loadSchedule("missing"); err == nil {
		t.Error("Expected an error for an unknown schedule")
	}
}
