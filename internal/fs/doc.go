// Package fs provides the filesystem abstraction used for sort chunk files.
//
// The package defines two key interfaces:
//
//   - [File]: an open chunk file with read/write/sync capabilities
//   - [FileSystem]: the operations a sort run needs (temp dirs, open, remove)
//
// # Implementations
//
//   - [LocalFS]: production implementation using the standard os package
//   - [FaultyFS]: test utility for fault injection (simulate I/O errors)
//
// # Usage
//
// Production code uses fs.Default (which is [LocalFS]):
//
//	dir, err := fs.Default.MkdirTemp("", "ggca-sort-*")
//	file, err := fs.Default.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("chunk-000002", fs.Fault{FailAfterBytes: 16})
//	// inject ffs into the sorter under test
//
// Filesystem operations take no context.Context. Chunk files are local and the
// calls are not interruptible at the syscall level.
package fs
