// Package netchange 提供进程级网络变化通知
//
// 监听操作系统的接口地址变化和网络可用性变化，向任意数量的订阅者投递通知。
// 地址变化逐个投递；可用性变化在 150ms 窗口内合并，投递时携带当时的可用性。
//
// # 快速开始
//
//	import "github.com/dep2p/go-netchange"
//
//	sub, err := netchange.SubscribeAvailability(ctx, func(ctx context.Context, available bool) {
//	    fmt.Println("network available:", available)
//	})
//	if err != nil {
//	    // errors.Is(err, netchange.ErrNetworkInformationUnavailable)
//	    return err
//	}
//	defer netchange.UnsubscribeAvailability(sub)
//
// 包级函数使用进程级单例 Default()。需要独立实例（测试、自定义变化源、
// 独立的指标 Registry）时使用 New：
//
//	svc, err := netchange.New(
//	    netchange.WithAvailabilityWindow(300*time.Millisecond),
//	    netchange.WithSource(netchange.SourcePolling),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := svc.Start(ctx); err != nil {
//	    return err
//	}
//	defer svc.Stop(context.Background())
//
// # 生命周期
//
// 变化源在任一类型的首个订阅者出现时打开，在两类订阅者都离开时关闭，
// 与 Start/Stop 无关。Stop 会移除所有订阅并释放变化源。
//
// # 文件组织
//
//	doc.go       包文档
//	netchange.go Service 及订阅 API
//	default.go   进程级单例与包级函数
//	options.go   选项
//	fx.go        Fx 应用组装
//	errors.go    错误定义
package netchange
