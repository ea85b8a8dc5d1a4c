// Package netchange 实现进程级网络变化通知
//
// # 概述
//
// netchange 监听操作系统的接口地址变化和网络可用性变化，
// 并以线程安全、防抖的方式通知任意数量的订阅者：
//   - 地址变化（AddressAdded / AddressRemoved）逐个投递，不合并
//   - 可用性变化（AvailabilityChanged）在窗口 W（默认 150ms）内合并为一次投递，
//     投递时携带当时查询到的可用性
//
// # 生命周期
//
// 生命周期完全由订阅数驱动：
//
//	任一类型首个订阅者   → ChangeSource.Open()，启动读取 goroutine
//	可用性首个订阅者     → 创建防抖器
//	可用性最后一个离开   → 停止防抖器，丢弃待投递通知
//	两类订阅者都为 0     → SourceHandle.Close()，读取 goroutine 退出
//
// 所有状态转换都在同一把 gate 下进行；处理函数在释放 gate 后调用。
// 每次 Open 分配一个新的代数（generation），读取 goroutine 只处理自己代数的事件，
// 关闭句柄后读到的过期事件会被丢弃。
//
// # 使用示例
//
//	n := netchange.NewNotifier(netchange.DefaultConfig(), nil)
//	defer n.Close()
//
//	sub, err := n.SubscribeAvailability(ctx, func(ctx context.Context, available bool) {
//	    logger.Info("网络可用性变化", "available", available)
//	})
//	if err != nil {
//	    // errors.Is(err, netchange.ErrNetworkInformationUnavailable)
//	}
//	defer sub.Close()
//
// # 错误策略
//
//   - Open/Close 失败同步返回给触发它的订阅/取消订阅调用，状态回滚
//   - 读取故障记录在 Err() 中，读取 goroutine 退出；下一次订阅以新代数重新打开变化源，
//     已有订阅随之恢复
//   - 处理函数 panic 被隔离，不影响其他订阅者
package netchange
