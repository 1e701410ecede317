package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodyBytes bounds request bodies so a client cannot stream an unbounded
// payload into the JSON decoder.
const maxBodyBytes = 1 << 20 // 1 MiB

// DecodeJSON decodes the request body into the given struct. Unknown fields
// are rejected so typos in payloads surface as 400s instead of silently
// dropped data.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
