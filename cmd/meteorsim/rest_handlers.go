package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

func startRESTServer() {
	router := mux.NewRouter()
	router.HandleFunc("/projectiles", spawnHandler).Methods("POST")
	router.HandleFunc("/projectiles", getProjectilesHandler).Methods("GET")
	router.HandleFunc("/prediction", getPredictionHandler).Methods("GET")
	router.HandleFunc("/stats", getStatsHandler).Methods("GET")
	router.HandleFunc("/controls", updateControlsHandler).Methods("PUT")
	router.HandleFunc("/aim", updateAimHandler).Methods("PUT")

	log.Println("REST API server running on port 8087")
	log.Fatal(http.ListenAndServe(":8087", router))
}

func spawnHandler(w http.ResponseWriter, r *http.Request) {
	var req spawnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if len(req.Origin) != 3 || len(req.Direction) != 3 {
		http.Error(w, "origin and direction must be 3-vectors", http.StatusBadRequest)
		return
	}
	select {
	case spawnQueue <- req:
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprintln(w, "Spawn request accepted")
	default:
		http.Error(w, "Spawn queue full", http.StatusServiceUnavailable)
	}
}

func getProjectilesHandler(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	views := snapshot.Projectiles
	mu.Unlock()
	writeJSON(w, views)
}

func getPredictionHandler(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	pred := snapshot.Prediction
	mu.Unlock()
	writeJSON(w, pred)
}

func getStatsHandler(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	stats := snapshot.Stats
	mu.Unlock()
	writeJSON(w, stats)
}

func updateControlsHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Realistic *bool    `json:"realistic"`
		Speed     *float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Speed != nil && *payload.Speed <= 0 {
		http.Error(w, "speed must be positive", http.StatusBadRequest)
		return
	}
	mu.Lock()
	if payload.Realistic != nil {
		controls.Realistic = *payload.Realistic
	}
	if payload.Speed != nil {
		controls.Speed = *payload.Speed
	}
	mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func updateAimHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Origin    []float64 `json:"origin"`
		Direction []float64 `json:"direction"`
		Speed     *float64  `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	mu.Lock()
	if len(payload.Origin) == 3 {
		controls.AimOrigin = payload.Origin
	}
	if len(payload.Direction) == 3 {
		controls.AimDir = payload.Direction
	}
	if payload.Speed != nil {
		controls.AimSpeed = *payload.Speed
	}
	mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
