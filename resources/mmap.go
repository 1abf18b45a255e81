//go:build !wasip1 && !js

package resources

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

func readMmap(file *os.File, size int64) (*[]byte, func() error, error) {
	// Zero-length files cannot be mapped.
	if size == 0 {
		empty := make([]byte, 0)
		return &empty, func() error { return nil }, nil
	}
	fileMmap, mmapErr := mmap.Map(file, mmap.RDONLY, 0)
	if mmapErr != nil {
		return nil, nil, mmapErr
	}
	mmapBytes := []byte(fileMmap)
	return &mmapBytes, fileMmap.Unmap, nil
}
