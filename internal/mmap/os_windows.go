//go:build windows

package mmap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// osMap maps the whole file through a read-only section view.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	if size == 0 {
		return nil, nil, nil
	}

	section, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, nil, err
	}
	defer windows.CloseHandle(section)

	addr, err := windows.MapViewOfFile(section, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		return nil, nil, err
	}

	unmap := func([]byte) error { return windows.UnmapViewOfFile(addr) }
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), unmap, nil
}

// osAdvise is a no-op; Windows has no madvise equivalent for views.
func osAdvise([]byte, AccessPattern) error { return nil }
