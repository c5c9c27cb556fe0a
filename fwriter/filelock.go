package fwriter

import (
	"errors"
	"os"
	"syscall"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

// ErrLocked 文件锁已被其他持有者获取.
var ErrLocked = streamio.NewError(streamio.Other, errors.New("file has been locked by another writer"))

// FLock 文件锁
type FLock struct {
	fn string
	fd int
}

// NewFLock 新建FLock对象.
func NewFLock(fn string) *FLock {
	return &FLock{
		fn: fn + ".lock",
		fd: -1,
	}
}

// File 返回锁文件路径.
func (l *FLock) File() string {
	return l.fn
}

// Acquire 获取文件锁.
func (l *FLock) Acquire() error {
	if err := l.open(); err != nil {
		return err
	}
	// 非阻塞互斥锁
	if err := syscall.Flock(l.fd, syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		// 需要关闭由多余的Flock操作打开的文件句柄
		syscall.Close(l.fd) // nolint
		l.fd = -1
		if err == syscall.EWOULDBLOCK {
			return ErrLocked
		}
		return streamio.FromHostError(err)
	}
	return nil
}

func (l *FLock) open() error {
	fd, err := syscall.Open(l.fn, syscall.O_CREAT|syscall.O_RDONLY, 0600)
	if err != nil {
		return streamio.FromHostError(&os.PathError{Op: "open", Path: l.fn, Err: err})
	}
	l.fd = fd
	return nil
}

// Release 释放文件锁.
func (l *FLock) Release() error {
	if l.fd < 0 {
		return nil
	}
	err := syscall.Close(l.fd)
	l.fd = -1
	return streamio.FromHostError(err)
}

// Remove 删除锁文件.
func (l *FLock) Remove() error {
	return streamio.FromHostError(os.Remove(l.fn))
}
