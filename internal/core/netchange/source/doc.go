// Package source 提供平台网络变化源
//
// 实现 pkg/interfaces.ChangeSource：
//   - Linux: 经 vishvananda/netlink 订阅 rtnetlink 链路/地址/路由更新
//   - macOS/BSD: AF_ROUTE routing socket
//   - 其他平台或原生源不可用时: 基于 net.Interfaces() 的轮询
//
// 分类规则：
//
//	新增地址                         → ChangeAddressAdded
//	删除地址                         → ChangeAddressRemoved
//	链路/路由变化、内核丢弃消息       → ChangeAvailabilityChanged
//
// Linux 订阅意外结束时重新订阅并上报一次可用性变化，连续中断过多时返回读取故障。
//
// 关闭句柄会让阻塞中的 ReadNext 返回 interfaces.ErrSourceClosed。
package source

import (
	"github.com/dep2p/go-netchange/pkg/lib/log"
)

var logger = log.Logger("core/netchange/source")
