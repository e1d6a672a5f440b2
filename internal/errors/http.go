package errors

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON body of every error response.
type Response struct {
	Error string `json:"error"`
}

// WriteJSON writes err as a JSON error response with the status from
// HTTPStatus.
func WriteJSON(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(HTTPStatus(err))
	json.NewEncoder(w).Encode(Response{Error: Message(err)})
}
