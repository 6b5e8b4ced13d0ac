//go:build !js
// +build !js

package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/simukka/journey-soundscape/audio"
)

//go:embed index.html
var indexHTML []byte

// loadSchedule resolves a preset name or a JSON file path.
func loadSchedule(arg string) (*audio.Schedule, error) {
	if _, ok := audio.SchedulePresets[arg]; ok {
		return audio.GetSchedule(arg), nil
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("schedule %q is neither a preset (%s) nor a readable file: %w",
			arg, strings.Join(audio.ScheduleNames(), ", "), err)
	}
	defer f.Close()
	return audio.LoadSchedule(f)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// newMux serves the page, the bundle and the schedule API.
func newMux(staticDir string, schedule *audio.Schedule) *http.ServeMux {
	mux := http.NewServeMux()
	static := http.FileServer(http.Dir(staticDir))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(indexHTML)
			return
		}
		static.ServeHTTP(w, r)
	})

	// Active schedule, or a preset by ?name=
	mux.HandleFunc("/api/schedule", func(w http.ResponseWriter, r *http.Request) {
		if name := r.URL.Query().Get("name"); name != "" {
			s, ok := audio.SchedulePresets[name]
			if !ok {
				http.Error(w, "unknown schedule", http.StatusNotFound)
				return
			}
			writeJSON(w, s)
			return
		}
		writeJSON(w, schedule)
	})

	mux.HandleFunc("/api/schedules", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"active":  schedule.Name,
			"presets": audio.ScheduleNames(),
		})
	})

	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})
	return mux
}

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	staticDir := flag.String("static", ".", "Directory to serve static files from")
	scheduleArg := flag.String("schedule", audio.DefaultScheduleName, "Schedule preset name or JSON file")
	flag.Parse()

	schedule, err := loadSchedule(*scheduleArg)
	if err != nil {
		log.Fatal(err)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Journey server starting on http://localhost%s", addr)
	log.Printf("Serving static files from: %s", *staticDir)
	log.Printf("Schedule: %s (%d windows)", schedule.Name, len(schedule.Windows))

	if err := http.ListenAndServe(addr, newMux(*staticDir, schedule)); err != nil {
		log.Fatal(err)
	}
}
