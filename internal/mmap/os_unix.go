//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

var advice = map[Hint]int{
	HintNormal:     unix.MADV_NORMAL,
	HintSequential: unix.MADV_SEQUENTIAL,
	HintWillNeed:   unix.MADV_WILLNEED,
}

func osAdvise(data []byte, h Hint) error {
	if len(data) == 0 {
		return nil
	}
	a, ok := advice[h]
	if !ok {
		a = unix.MADV_NORMAL
	}
	// EINVAL means an unaligned or unsupported range; hints are optional.
	if err := unix.Madvise(data, a); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
