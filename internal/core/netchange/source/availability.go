package source

import (
	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// InterfaceChecker 基于接口状态的可用性查询
//
// 存在任一非回环、已启用且处于运行状态的接口即认为网络可用。
type InterfaceChecker struct {
	list interfaceLister
}

var _ pkgif.AvailabilityChecker = (*InterfaceChecker)(nil)

// NewInterfaceChecker 创建可用性查询
func NewInterfaceChecker() *InterfaceChecker {
	return &InterfaceChecker{list: systemInterfaces}
}

// IsNetworkAvailable 实现 AvailabilityChecker
func (c *InterfaceChecker) IsNetworkAvailable() bool {
	ifaces, err := c.list()
	if err != nil {
		logger.Warn("获取网络接口失败", "error", err)
		return false
	}

	for _, iface := range ifaces {
		if iface.isUp() && !iface.isLoopback() {
			return true
		}
	}
	return false
}
