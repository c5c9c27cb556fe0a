// Package deepcopy copies directory trees through the streamio host bridge.
package deepcopy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/usherasnick/Useful-Go-Gadgets/fwriter"
	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

// fcopy 将src拷贝到dst, dst只有在拷贝完整后才会出现.
func fcopy(dst, src string, mode os.FileMode) (uint64, error) {
	srcFd, err := os.Open(src)
	if err != nil {
		return 0, streamio.FromHostError(err)
	}
	defer srcFd.Close()

	w, err := fwriter.NewSafeWriter(dst)
	if err != nil {
		return 0, err
	}
	n, err := streamio.Copy(w, streamio.FromReader(srcFd))
	if err != nil {
		w.Abort()
		return n, err
	}
	if err = w.Commit(); err != nil {
		return n, err
	}
	return n, streamio.FromHostError(os.Chmod(dst, mode))
}

// Copy copies a whole directory recursively and returns the number of bytes
// copied.
func Copy(dst, src string) (uint64, error) {
	fInfo, err := os.Stat(src)
	if err != nil {
		return 0, streamio.FromHostError(err)
	}
	if !fInfo.IsDir() {
		return 0, streamio.NewError(streamio.InvalidInput, fmt.Errorf("%s is not a directory", src))
	}
	if err = os.MkdirAll(dst, fInfo.Mode().Perm()); err != nil {
		return 0, streamio.FromHostError(err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, streamio.FromHostError(err)
	}

	var total uint64
	for _, entry := range entries {
		srcFp := filepath.Join(src, entry.Name())
		dstFp := filepath.Join(dst, entry.Name())
		info, err := entry.Info()
		if err != nil {
			return total, streamio.FromHostError(err)
		}
		var n uint64
		switch {
		case info.IsDir():
			n, err = Copy(dstFp, srcFp)
		case info.Mode().IsRegular():
			n, err = fcopy(dstFp, srcFp, info.Mode().Perm())
		default:
			log.Warn().Str("path", srcFp).Msg("skip irregular file")
			continue
		}
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
