package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON shape every API handler responds with. Single
// records go in Result, collections in Results and Total, failures in
// Message with Success=false.
type Envelope struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
	Results interface{} `json:"results,omitempty"`
	Total   *int64      `json:"total,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// JSONResult writes a single-record success envelope.
func JSONResult(w http.ResponseWriter, status int, result interface{}) {
	writeJSON(w, status, Envelope{Success: true, Result: result})
}

// JSONResults writes a collection success envelope.
func JSONResults(w http.ResponseWriter, status int, results interface{}) {
	writeJSON(w, status, Envelope{Success: true, Results: results})
}

// JSONResultsTotal writes a collection envelope with a total count for
// paginated listings.
func JSONResultsTotal(w http.ResponseWriter, status int, results interface{}, total int64) {
	writeJSON(w, status, Envelope{Success: true, Results: results, Total: &total})
}

// JSONMessage writes a success envelope carrying only a message.
func JSONMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: true, Message: message})
}

// JSONError writes a failure envelope.
func JSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}
