//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// socketHandle 非阻塞路由 socket 句柄
//
// fd 包装为 *os.File 后由运行时 poller 管理，Close 会唤醒阻塞中的 Read，
// 从而实现"关闭即取消"。
type socketHandle struct {
	file     *os.File
	buf      []byte
	queue    []pkgif.ChangeKind
	classify func(b []byte) []pkgif.ChangeKind
	closed   atomic.Bool
}

func newSocketHandle(fd int, name string, classify func(b []byte) []pkgif.ChangeKind) (*socketHandle, error) {
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("set nonblock: %w", err)
	}
	unix.CloseOnExec(fd)

	return &socketHandle{
		file:     os.NewFile(uintptr(fd), name),
		buf:      make([]byte, os.Getpagesize()*2),
		classify: classify,
	}, nil
}

// ReadNext 实现 SourceHandle
func (h *socketHandle) ReadNext() (pkgif.ChangeKind, error) {
	for {
		if h.closed.Load() {
			return pkgif.ChangeNone, pkgif.ErrSourceClosed
		}
		if len(h.queue) > 0 {
			kind := h.queue[0]
			h.queue = h.queue[1:]
			return kind, nil
		}

		n, err := h.file.Read(h.buf)
		if err != nil {
			if h.closed.Load() {
				return pkgif.ChangeNone, pkgif.ErrSourceClosed
			}
			kind, retry, rerr := mapReadError(h.file.Name(), err)
			if retry {
				continue
			}
			return kind, rerr
		}

		h.queue = h.classify(h.buf[:n])
	}
}

// mapReadError 将路由 socket 读取错误映射为 (事件, 是否重试, 错误)
func mapReadError(name string, err error) (kind pkgif.ChangeKind, retry bool, rerr error) {
	switch {
	case errors.Is(err, os.ErrClosed):
		return pkgif.ChangeNone, false, pkgif.ErrSourceClosed
	case errors.Is(err, unix.ENOBUFS):
		// 内核接收缓冲区溢出，消息已丢失
		logger.Debug("路由 socket 溢出，按可用性变化处理", "socket", name)
		return pkgif.ChangeAvailabilityChanged, false, nil
	case errors.Is(err, unix.EINTR), errors.Is(err, unix.EAGAIN):
		return pkgif.ChangeNone, true, nil
	case errors.Is(err, io.EOF):
		return pkgif.ChangeNone, false, fmt.Errorf("%s: unexpected end of stream", name)
	default:
		return pkgif.ChangeNone, false, err
	}
}

// Close 实现 SourceHandle
func (h *socketHandle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return pkgif.ErrSourceClosed
	}
	return h.file.Close()
}
