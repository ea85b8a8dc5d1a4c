//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package source

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/net/route"
	"golang.org/x/sys/unix"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// rtMsgHdrLen rt_msghdr 公共前缀: msglen(2) version(1) type(1)
const rtMsgHdrLen = 4

// RouteSource BSD/macOS routing socket 变化源
type RouteSource struct{}

var _ pkgif.ChangeSource = (*RouteSource)(nil)

// NewRouteSource 创建 routing socket 变化源
func NewRouteSource() *RouteSource {
	return &RouteSource{}
}

func newNativeSource(_ *Config) pkgif.ChangeSource {
	return NewRouteSource()
}

// Open 实现 ChangeSource
func (s *RouteSource) Open() (pkgif.SourceHandle, error) {
	fd, err := unix.Socket(unix.AF_ROUTE, unix.SOCK_RAW, unix.AF_UNSPEC)
	if err != nil {
		return nil, fmt.Errorf("routing socket: %w", err)
	}

	h, err := newSocketHandle(fd, "routing-socket", classifyRouteMessages)
	if err != nil {
		return nil, err
	}
	logger.Debug("routing socket 变化源已打开", "fd", fd)
	return h, nil
}

// classifyRouteMessages 解析 routing 消息并分类
//
// 优先用 x/net/route 解析；它对整段缓冲区要么全部成功要么失败，
// 失败时（版本不符、截断、未知布局）退回到只看公共消息头。
func classifyRouteMessages(b []byte) []pkgif.ChangeKind {
	msgs, err := route.ParseRIB(route.RIBTypeRoute, b)
	if err != nil {
		logger.Debug("解析 routing 消息失败，按消息头分类", "error", err)
		return classifyRouteHeaders(b)
	}

	var kinds []pkgif.ChangeKind
	for _, msg := range msgs {
		switch m := msg.(type) {
		case *route.InterfaceAddrMessage:
			kinds = appendRouteKind(kinds, m.Type)
		case *route.InterfaceMessage:
			kinds = appendRouteKind(kinds, m.Type)
		case *route.RouteMessage:
			kinds = appendRouteKind(kinds, m.Type)
		}
	}
	return kinds
}

// classifyRouteHeaders 按 rt_msghdr 公共前缀分类
func classifyRouteHeaders(b []byte) []pkgif.ChangeKind {
	var kinds []pkgif.ChangeKind

	for len(b) >= rtMsgHdrLen {
		msgLen := int(binary.NativeEndian.Uint16(b[0:2]))
		if msgLen < rtMsgHdrLen || msgLen > len(b) {
			break
		}
		kinds = appendRouteKind(kinds, int(b[3]))
		b = b[msgLen:]
	}

	return kinds
}

func appendRouteKind(kinds []pkgif.ChangeKind, typ int) []pkgif.ChangeKind {
	switch typ {
	case unix.RTM_NEWADDR:
		return append(kinds, pkgif.ChangeAddressAdded)
	case unix.RTM_DELADDR:
		return append(kinds, pkgif.ChangeAddressRemoved)
	case unix.RTM_ADD, unix.RTM_DELETE, unix.RTM_CHANGE, unix.RTM_IFINFO:
		return append(kinds, pkgif.ChangeAvailabilityChanged)
	}
	return kinds
}
