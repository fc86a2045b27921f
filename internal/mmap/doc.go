// Package mmap maps local vocabulary files read-only into memory.
//
//	m, err := mmap.Open("vocab.txt")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.HintSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2); Windows uses MapViewOfFile and ignores
// access hints. Close is idempotent; callers must not use Bytes after Close.
package mmap
