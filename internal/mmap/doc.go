// Package mmap maps read-only files into memory.
//
// The local blob store uses it so large cavity files are parsed straight
// from the page cache. Mapping is safe for concurrent reads; Close is
// idempotent but callers must not touch Bytes after it returns.
//
// On Windows the mapping uses CreateFileMapping and Advise is a no-op.
package mmap
