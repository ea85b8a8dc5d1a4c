package netchange

import (
	"errors"

	core "github.com/dep2p/go-netchange/internal/core/netchange"
	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 变化源错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNetworkInformationUnavailable 平台网络变化设施无法打开/关闭/读取
	ErrNetworkInformationUnavailable = core.ErrNetworkInformationUnavailable

	// ErrReaderFault 读取循环遇到非关闭类错误
	ErrReaderFault = core.ErrReaderFault

	// ErrSourceClosed 变化源句柄已关闭
	ErrSourceClosed = pkgif.ErrSourceClosed

	// ────────────────────────────────────────────────────────────────────────
	// 生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotifierClosed 通知器已关闭
	ErrNotifierClosed = core.ErrNotifierClosed

	// ErrAlreadyStarted 服务已启动
	ErrAlreadyStarted = errors.New("netchange: service already started")

	// ErrNotStarted 服务未启动
	ErrNotStarted = errors.New("netchange: service not started")
)

// UnavailableError 变化源操作失败，携带平台诊断信息
type UnavailableError = core.UnavailableError
