package extsort

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/ggca/internal/fs"
	"github.com/hupe1980/ggca/internal/resource"
)

const (
	frameHeaderSize = 8
	maxRecordSize   = 64 << 20
	ioBufferSize    = 64 << 10
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// chunkWriter writes framed records to one chunk file.
type chunkWriter struct {
	path    string
	f       fs.File
	buf     *bufio.Writer
	enc     io.WriteCloser // nil when uncompressed
	w       io.Writer
	header  [frameHeaderSize]byte
	records uint64
	bytes   int64
}

func createChunk(ctx context.Context, fsys fs.FileSystem, path string, c Compression, rc *resource.Controller) (*chunkWriter, error) {
	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, &ChunkError{Path: path, Err: err}
	}

	cw := &chunkWriter{
		path: path,
		f:    f,
		buf:  bufio.NewWriterSize(resource.NewRateLimitedWriter(ctx, f, rc), ioBufferSize),
	}
	cw.w = cw.buf

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		zw := lz4.NewWriter(cw.buf)
		// Block size fixes the buffers every reader of this chunk allocates.
		if err := zw.Apply(lz4.BlockSizeOption(lz4.Block64Kb), lz4.ConcurrencyOption(1)); err != nil {
			_ = f.Close()
			return nil, &ChunkError{Path: path, Err: err}
		}
		cw.enc = zw
		cw.w = zw
	case CompressionZSTD:
		enc, err := zstd.NewWriter(cw.buf, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderConcurrency(1))
		if err != nil {
			_ = f.Close()
			return nil, &ChunkError{Path: path, Err: err}
		}
		cw.enc = enc
		cw.w = enc
	default:
		_ = f.Close()
		return nil, &ChunkError{Path: path, Err: fmt.Errorf("unknown compression %d", c)}
	}
	return cw, nil
}

func (cw *chunkWriter) write(payload []byte) error {
	if len(payload) > maxRecordSize {
		return &ChunkError{Path: cw.path, Record: cw.records, Err: fmt.Errorf("record of %d bytes exceeds %d", len(payload), maxRecordSize)}
	}
	binary.LittleEndian.PutUint32(cw.header[0:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(cw.header[4:], crc32.Checksum(payload, crc32cTable))
	if _, err := cw.w.Write(cw.header[:]); err != nil {
		return &ChunkError{Path: cw.path, Record: cw.records, Err: err}
	}
	if _, err := cw.w.Write(payload); err != nil {
		return &ChunkError{Path: cw.path, Record: cw.records, Err: err}
	}
	cw.records++
	cw.bytes += int64(frameHeaderSize + len(payload))
	return nil
}

// close flushes the encoder and the buffer, then closes the file. The file is
// closed even when flushing fails.
func (cw *chunkWriter) close() error {
	var errs []error
	if cw.enc != nil {
		errs = append(errs, cw.enc.Close())
	}
	errs = append(errs, cw.buf.Flush())
	errs = append(errs, cw.f.Close())
	if err := errors.Join(errs...); err != nil {
		return &ChunkError{Path: cw.path, Record: cw.records, Err: err}
	}
	return nil
}

// chunkReader reads framed records back from one chunk file.
type chunkReader struct {
	path    string
	f       fs.File
	r       io.Reader
	release func()
	header  [frameHeaderSize]byte
	payload []byte
	record  uint64
}

func openChunk(ctx context.Context, fsys fs.FileSystem, path string, c Compression, rc *resource.Controller) (*chunkReader, error) {
	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, &ChunkError{Path: path, Err: err}
	}

	cr := &chunkReader{path: path, f: f}
	br := bufio.NewReaderSize(resource.NewRateLimitedReader(ctx, f, rc), ioBufferSize)
	cr.r = br

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		zr := lz4.NewReader(br)
		if err := zr.Apply(lz4.ConcurrencyOption(1)); err != nil {
			_ = f.Close()
			return nil, &ChunkError{Path: path, Err: err}
		}
		cr.r = zr
	case CompressionZSTD:
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			_ = f.Close()
			return nil, &ChunkError{Path: path, Err: err}
		}
		cr.r = dec
		cr.release = dec.Close
	default:
		_ = f.Close()
		return nil, &ChunkError{Path: path, Err: fmt.Errorf("unknown compression %d", c)}
	}
	return cr, nil
}

// next returns the next payload. The slice is reused by the following call.
// ok is false at a clean end of file.
func (cr *chunkReader) next() (payload []byte, ok bool, err error) {
	if _, err := io.ReadFull(cr.r, cr.header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		return nil, false, cr.fail(err)
	}

	n := binary.LittleEndian.Uint32(cr.header[0:])
	sum := binary.LittleEndian.Uint32(cr.header[4:])
	if n > maxRecordSize {
		return nil, false, cr.fail(fmt.Errorf("%w: frame length %d", ErrCorruptChunk, n))
	}
	if cap(cr.payload) < int(n) {
		cr.payload = make([]byte, n)
	}
	cr.payload = cr.payload[:n]
	if _, err := io.ReadFull(cr.r, cr.payload); err != nil {
		return nil, false, cr.fail(err)
	}
	if crc32.Checksum(cr.payload, crc32cTable) != sum {
		return nil, false, cr.fail(fmt.Errorf("%w: checksum mismatch", ErrCorruptChunk))
	}
	cr.record++
	return cr.payload, true, nil
}

func (cr *chunkReader) fail(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = fmt.Errorf("%w: truncated frame", ErrCorruptChunk)
	}
	return &ChunkError{Path: cr.path, Record: cr.record, Err: err}
}

func (cr *chunkReader) close() error {
	if cr.release != nil {
		cr.release()
	}
	return cr.f.Close()
}
