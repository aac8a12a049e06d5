package extsort

import (
	"errors"
	"fmt"
)

// ErrCorruptChunk is returned when a chunk file fails its checksum or ends
// inside a record frame.
var ErrCorruptChunk = errors.New("extsort: corrupt chunk")

// ChunkError reports a failure while writing or reading one chunk file.
type ChunkError struct {
	Path   string
	Record uint64 // zero-based record index within the chunk
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("extsort: chunk %s record %d: %v", e.Path, e.Record, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}
