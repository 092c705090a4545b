package config

import (
	"io"
	"os"
)

// CopyFileContents copies src to dst, creating or truncating dst and
// applying perm. Adapted from the teacher's store/fileutil.go, which used
// this to seed per-client cache files; here it seeds a user config file
// from a system-wide template.
func CopyFileContents(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err = out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
