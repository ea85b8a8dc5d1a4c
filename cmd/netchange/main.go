// Package main 提供 netchange 命令行入口
//
// 订阅地址和可用性变化并逐条打印，可选地通过 HTTP 暴露 Prometheus 指标
// 和 websocket 事件流（/events）。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-netchange"
	"github.com/dep2p/go-netchange/config"
	"github.com/dep2p/go-netchange/pkg/lib/log"
)

var logger = log.Logger("netchange/cmd")

// version 构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖 / 快速测试
//   JSON 配置文件：持久化配置
//
// 优先级：命令行 > 环境变量（NETCHANGE_*）> 配置文件 > 默认值
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile   = flag.String("config", "", "配置文件路径")
	window       = flag.Duration("window", 0, "可用性防抖窗口（默认 150ms）")
	sourceMode   = flag.String("source", "", "变化源 (auto/native/polling)")
	pollInterval = flag.Duration("poll", 0, "轮询间隔（仅 polling 源）")
	logLevel     = flag.String("log-level", "", "日志级别 (debug/info/warn/error)")
	logFile      = flag.String("log", "", "日志文件路径")
	metricsAddr  = flag.String("metrics", "", "指标和事件流监听地址，例如 127.0.0.1:9464")
	showVersion  = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Printf("netchange %s\n", version)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, err := netchange.New(
		netchange.WithConfig(cfg),
		netchange.WithRegisterer(reg),
	)
	if err != nil {
		return fmt.Errorf("创建服务失败: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}

	hub := newEventHub()
	if err := watch(ctx, svc, hub); err != nil {
		return multierr.Append(err, svc.Stop(context.Background()))
	}

	fmt.Printf("正在监听网络变化 (source=%s, window=%s)，按 Ctrl+C 退出\n",
		cfg.NetChange.Source, cfg.NetChange.AvailabilityWindow)
	logger.Info("netchange 已启动", "version", version, "source", cfg.NetChange.Source)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Metrics.Enabled {
		srv := newHTTPServer(cfg.Metrics.ListenAddr, reg, hub)
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP 服务退出: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			hub.close()
			return srv.Shutdown(shutdownCtx)
		})
		fmt.Printf("指标: http://%s/metrics\n事件: ws://%s/events\n",
			cfg.Metrics.ListenAddr, cfg.Metrics.ListenAddr)
	}

	<-gctx.Done()
	fmt.Println("\n正在关闭...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()

	errs := g.Wait()
	errs = multierr.Append(errs, svc.Stop(stopCtx))
	return errs
}

// watch 订阅两类变化，打印并推送给事件客户端
func watch(ctx context.Context, svc *netchange.Service, hub *eventHub) error {
	if _, err := svc.SubscribeAddress(ctx, func(context.Context) {
		now := time.Now()
		fmt.Printf("%s  address changed\n", now.Format(time.RFC3339Nano))
		hub.publish(event{Time: now, Kind: "address"})
	}); err != nil {
		return fmt.Errorf("订阅地址变化失败: %w", err)
	}

	if _, err := svc.SubscribeAvailability(ctx, func(_ context.Context, available bool) {
		now := time.Now()
		fmt.Printf("%s  availability changed: available=%t\n", now.Format(time.RFC3339Nano), available)
		hub.publish(event{Time: now, Kind: "availability", Available: &available})
	}); err != nil {
		return fmt.Errorf("订阅可用性变化失败: %w", err)
	}
	return nil
}

// newHTTPServer 创建指标和事件 HTTP 服务
func newHTTPServer(addr string, reg *prometheus.Registry, hub *eventHub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("/events", hub)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// setupLogging 按配置设置日志级别和输出
func setupLogging(cfg config.LogConfig) (func(), error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	if cfg.File == "" {
		log.SetLevel(level)
		return func() {}, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	log.SetOutputWithLevel(file, level)
	return func() { _ = file.Close() }, nil
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
