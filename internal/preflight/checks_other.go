//go:build !(linux || darwin || freebsd || dragonfly || windows)

package preflight

import (
	"errors"
	"os"
)

func accessible(path string) error {
	_, err := os.ReadDir(path)
	return err
}

func freeBytes(string) (uint64, error) {
	return 0, errors.ErrUnsupported
}
