package handlers

import (
	"encoding/json"
	"net/http"
)

// decodeStrict decodes a JSON body, rejecting unknown fields. Every request
// shape is an explicit struct; nothing is passed through untyped.
func decodeStrict(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
