package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// SeedHeader carries the seed a generated response was drawn from.
const SeedHeader = "X-Telemetry-Seed"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeSeeded(w http.ResponseWriter, seed uint64, v any) {
	w.Header().Set(SeedHeader, strconv.FormatUint(seed, 10))
	writeJSON(w, http.StatusOK, v)
}

// seedParam reads ?seed=. Absent means 0, i.e. "pick one".
func seedParam(r *http.Request) (uint64, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}

// withSeed rejects a malformed seed before calling fn.
func withSeed(fn func(w http.ResponseWriter, r *http.Request, seed uint64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed, err := seedParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an unsigned integer")
			return
		}
		fn(w, r, seed)
	}
}
