package netchange

import (
	"errors"
	"fmt"
)

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrNetworkInformationUnavailable 平台网络变化设施无法打开/关闭/读取
	ErrNetworkInformationUnavailable = errors.New("network information unavailable")

	// ErrReaderFault 读取循环遇到非关闭类错误
	ErrReaderFault = errors.New("network change reader fault")

	// ErrNotifierClosed 通知器已关闭
	ErrNotifierClosed = errors.New("network change notifier closed")
)

// UnavailableError 变化源操作失败
//
// 携带平台诊断信息，errors.Is 匹配 ErrNetworkInformationUnavailable；
// Op 为 "read" 时同时匹配 ErrReaderFault。
type UnavailableError struct {
	// Op 失败的操作: open / close / read
	Op string

	// Err 平台错误
	Err error
}

func newUnavailableError(op string, err error) *UnavailableError {
	return &UnavailableError{Op: op, Err: err}
}

// Error 实现 error 接口
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrNetworkInformationUnavailable, e.Op, e.Err)
}

// Unwrap 返回平台错误
func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is 支持 errors.Is 匹配哨兵错误
func (e *UnavailableError) Is(target error) bool {
	switch target {
	case ErrNetworkInformationUnavailable:
		return true
	case ErrReaderFault:
		return e.Op == "read"
	}
	return false
}
