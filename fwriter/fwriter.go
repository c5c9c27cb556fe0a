package fwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

// SafeWriter 先写临时文件, Commit时原子替换目标文件. 同一目标文件同时只能有一个SafeWriter.
//
// SafeWriter实现了streamio.Writer, 所有错误都经过streamio.FromHostError归类.
type SafeWriter struct {
	flock     *FLock
	writer    *os.File
	fn        string
	tmpSuffix string
	closed    bool
}

// NewSafeWriter 新建SafeWriter对象.
func NewSafeWriter(fn string) (*SafeWriter, error) {
	if err := os.MkdirAll(filepath.Dir(fn), 0750); err != nil {
		return nil, streamio.FromHostError(err)
	}

	flock := NewFLock(fn)
	if err := flock.Acquire(); err != nil {
		return nil, err
	}

	tmpSuffix := fmt.Sprintf(".tmp%v", time.Now().UnixNano())

	writer, err := os.OpenFile(fn+tmpSuffix, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		flock.Release() // nolint
		flock.Remove()  // nolint
		return nil, streamio.FromHostError(err)
	}

	return &SafeWriter{
		flock:     flock,
		writer:    writer,
		fn:        fn,
		tmpSuffix: tmpSuffix,
	}, nil
}

// Write 写字节流.
func (w *SafeWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, streamio.NewError(streamio.InvalidInput, os.ErrClosed)
	}
	n, err := w.writer.Write(p)
	return n, streamio.FromHostError(err)
}

// WriteString 写字符串.
func (w *SafeWriter) WriteString(content string) (int, error) {
	return w.Write([]byte(content))
}

// Flush 将已写入的数据同步到硬盘, 目标文件保持不变.
func (w *SafeWriter) Flush() error {
	if w.closed {
		return streamio.NewError(streamio.InvalidInput, os.ErrClosed)
	}
	return streamio.FromHostError(w.writer.Sync())
}

// Commit 持久化数据并替换目标文件.
func (w *SafeWriter) Commit() error {
	if w.closed {
		return streamio.NewError(streamio.InvalidInput, os.ErrClosed)
	}
	defer w.exit()
	if err := w.writer.Sync(); err != nil {
		return streamio.FromHostError(err)
	}
	if err := os.Rename(w.fn+w.tmpSuffix, w.fn); err != nil {
		return streamio.FromHostError(err)
	}
	return nil
}

// Abort 放弃当前写操作.
func (w *SafeWriter) Abort() {
	if w.closed {
		return
	}
	w.exit()
}

func (w *SafeWriter) exit() {
	w.closed = true
	w.writer.Close() // nolint
	w.unlock()
	os.Remove(w.fn + w.tmpSuffix) // nolint
}

func (w *SafeWriter) unlock() {
	w.flock.Release() // nolint
	w.flock.Remove()  // nolint
}
