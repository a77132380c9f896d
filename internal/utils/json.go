package utils

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// JSON is a drop-in replacement for encoding/json.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// ValidJSON reports whether b is a single well-formed JSON value.
func ValidJSON(b []byte) bool {
	return len(b) > 0 && JSON.Valid(b)
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return JSON.NewEncoder(w).Encode(v)
}

// WriteRawJSON writes an already encoded JSON body unchanged.
func WriteRawJSON(w http.ResponseWriter, status int, body []byte) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}
