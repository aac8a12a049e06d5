// Package extsort sorts record streams that may not fit in memory.
//
// A [Sorter] buffers up to a fixed number of records. Each time the buffer
// fills it is stably sorted and spilled to a chunk file in a private temporary
// directory. When the input ends, the last partial buffer is sorted and kept in
// memory. [Result.All] then lazily merges the resident run with every chunk file
// through a min-heap of run heads.
//
// Streams that never fill the buffer are sorted entirely in memory and touch no
// files.
//
// A merge reads at most [WithMaxOpenChunks] chunk files at once. When a sort
// spills more chunks than that, [Sorter.Sort] merges consecutive groups into
// intermediate chunks, pass after pass, until the final merge fits. LZ4 chunks
// use 64 KiB blocks so each open reader holds a small fixed buffer.
//
// # Chunk files
//
// Every record is framed as
//
//	[len uint32][crc32c uint32][payload]
//
// where payload is the record encoded by a [codec.Codec]. The whole framed
// stream is optionally wrapped in an LZ4 or ZSTD streaming encoder. A checksum
// mismatch or a truncated frame surfaces as [ErrCorruptChunk] wrapped in a
// [*ChunkError]. The sorter is not resumable: any error is fatal for the run.
//
// # Ordering
//
// The merge is stable. Records that compare equal come out in input order,
// because earlier chunks hold earlier input and heap ties are broken by run
// index.
package extsort
