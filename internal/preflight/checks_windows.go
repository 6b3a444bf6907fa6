//go:build windows

package preflight

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/windows"
)

// accessible lists the directory and creates a scratch file in it. Windows
// has no access(2) and ACLs make mode bits meaningless.
func accessible(path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	_, err = dir.Readdirnames(1)
	_ = dir.Close()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	scratch, err := os.CreateTemp(path, ".mkvsubstrip-access-*")
	if err != nil {
		return err
	}
	name := scratch.Name()
	_ = scratch.Close()
	return os.Remove(name)
}

func freeBytes(dir string) (uint64, error) {
	name, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, err
	}
	var available, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(name, &available, &total, &free); err != nil {
		return 0, err
	}
	return available, nil
}
