//go:build js || wasip1

package resources

import (
	"io"
	"os"
)

func readMmap(file *os.File, _ int64) (*[]byte, func() error, error) {
	contents, err := io.ReadAll(file)
	return &contents, func() error { return nil }, err
}
