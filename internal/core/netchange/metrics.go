package netchange

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

const metricsNamespace = "netchange"

// metrics 通知器指标
type metrics struct {
	sourceOpens     prometheus.Counter
	sourceCloses    prometheus.Counter
	sourceErrors    *prometheus.CounterVec
	events          *prometheus.CounterVec
	coalesced       prometheus.Counter
	dispatches      *prometheus.CounterVec
	handlerPanics   *prometheus.CounterVec
	staleEvents     prometheus.Counter
	subscribers     *prometheus.GaugeVec
	debouncePending prometheus.Gauge
}

// newMetrics 创建指标
//
// reg 为 nil 时指标仍然可用，只是不注册到任何 Registry。
// 重复注册时复用已注册的采集器，允许同一进程内创建多个通知器。
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		sourceOpens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "source_opens_total",
			Help:      "Number of times the change source was opened.",
		}),
		sourceCloses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "source_closes_total",
			Help:      "Number of times the change source was closed.",
		}),
		sourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "source_errors_total",
			Help:      "Change source failures by operation.",
		}, []string{"op"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Classified raw events read from the change source.",
		}, []string{"kind"}),
		coalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "availability_coalesced_total",
			Help:      "Availability events merged into an already pending window.",
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "handler_invocations_total",
			Help:      "Subscriber handler invocations by subscription kind.",
		}, []string{"kind"}),
		handlerPanics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "handler_panics_total",
			Help:      "Recovered subscriber handler panics by subscription kind.",
		}, []string{"kind"}),
		staleEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stale_events_total",
			Help:      "Events dropped because their source generation was no longer live.",
		}),
		subscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "subscribers",
			Help:      "Current number of subscribers by kind.",
		}, []string{"kind"}),
		debouncePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "availability_pending",
			Help:      "1 while an availability notification is pending.",
		}),
	}

	if reg != nil {
		m.sourceOpens = register(reg, m.sourceOpens)
		m.sourceCloses = register(reg, m.sourceCloses)
		m.sourceErrors = register(reg, m.sourceErrors)
		m.events = register(reg, m.events)
		m.coalesced = register(reg, m.coalesced)
		m.dispatches = register(reg, m.dispatches)
		m.handlerPanics = register(reg, m.handlerPanics)
		m.staleEvents = register(reg, m.staleEvents)
		m.subscribers = register(reg, m.subscribers)
		m.debouncePending = register(reg, m.debouncePending)
	}
	return m
}

// register 注册采集器，已注册时返回已有实例
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		logger.Warn("注册指标失败", "error", err)
	}
	return c
}

func (m *metrics) opened() {
	m.sourceOpens.Inc()
}

func (m *metrics) closed() {
	m.sourceCloses.Inc()
}

func (m *metrics) sourceFailed(op string) {
	m.sourceErrors.WithLabelValues(op).Inc()
}

func (m *metrics) eventRead(kind pkgif.ChangeKind) {
	m.events.WithLabelValues(kind.String()).Inc()
}

func (m *metrics) eventCoalesced() {
	m.coalesced.Inc()
}

func (m *metrics) eventStale() {
	m.staleEvents.Inc()
}

func (m *metrics) dispatched(kind string, n int) {
	if n > 0 {
		m.dispatches.WithLabelValues(kind).Add(float64(n))
	}
}

func (m *metrics) handlerPanicked(kind string) {
	m.handlerPanics.WithLabelValues(kind).Inc()
}

func (m *metrics) setSubscribers(address, availability int) {
	m.subscribers.WithLabelValues("address").Set(float64(address))
	m.subscribers.WithLabelValues("availability").Set(float64(availability))
}

func (m *metrics) setPending(pending bool) {
	if pending {
		m.debouncePending.Set(1)
		return
	}
	m.debouncePending.Set(0)
}
