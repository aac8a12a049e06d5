package codec

import gojson "github.com/goccy/go-json"

// JSON is a codec backed by github.com/goccy/go-json.
//
// It works for typical structs/maps/slices. Non-finite floats are rejected by
// the encoder.
type JSON[T any] struct{}

// Append encodes the value to JSON and appends it to dst.
func (JSON[T]) Append(dst []byte, v T) ([]byte, error) {
	b, err := gojson.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

// Decode decodes JSON data into a new T.
func (JSON[T]) Decode(data []byte) (T, error) {
	var v T
	err := gojson.Unmarshal(data, &v)
	return v, err
}

// Name returns the unique name of the codec ("go-json").
func (JSON[T]) Name() string { return "go-json" }
