package archive

import (
	"encoding/json"
	"fmt"
	"io"
)

// decodeBody decodes a JSON response with UseNumber so that integers wider
// than 2^53 never pass through float64. Trailing garbage after the document
// is a decode error, not silence.
func decodeBody[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	if dec.More() {
		return out, fmt.Errorf("unexpected data after JSON document")
	}
	return out, nil
}
