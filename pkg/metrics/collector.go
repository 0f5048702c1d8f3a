package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/i18nrouter/pkg/manifest"
	"github.com/dmitrymomot/i18nrouter/pkg/rewrite"
	"github.com/dmitrymomot/i18nrouter/pkg/routing"
)

// Reload result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// noSource labels decisions that carry no locale.
const noSource = "none"

type options struct {
	namespace   string
	constLabels prometheus.Labels
	registry    prometheus.Registerer
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace sets the metrics namespace (default "i18nrouter").
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithConstLabels adds constant labels to every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(o *options) { o.constLabels = labels }
}

// WithRegistry sets the registerer (default prometheus.DefaultRegisterer).
func WithRegistry(r prometheus.Registerer) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// Collector records routing metrics.
type Collector struct {
	decisions *prometheus.CounterVec
	rewrites  *prometheus.CounterVec
	reloads   *prometheus.CounterVec
	locales   prometheus.Gauge
	rules     *prometheus.GaugeVec
}

// New registers the metrics and returns a Collector. It panics if the metrics
// are already registered on the registry.
func New(opts ...Option) *Collector {
	o := options{
		namespace: "i18nrouter",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&o)
	}

	factory := promauto.With(o.registry)

	return &Collector{
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "decisions_total",
			Help:        "Routing decisions by outcome and locale source.",
			ConstLabels: o.constLabels,
		}, []string{"outcome", "source"}),

		rewrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "rewrites_total",
			Help:        "Applied beforeFiles rewrites.",
			ConstLabels: o.constLabels,
		}, []string{"external"}),

		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "reloads_total",
			Help:        "Routing manifest reload attempts by result.",
			ConstLabels: o.constLabels,
		}, []string{"result"}),

		locales: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   o.namespace,
			Name:        "manifest_locales",
			Help:        "Locales configured in the active manifest.",
			ConstLabels: o.constLabels,
		}),

		rules: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   o.namespace,
			Name:        "manifest_rewrites",
			Help:        "Rewrites configured in the active manifest by phase.",
			ConstLabels: o.constLabels,
		}, []string{"phase"}),
	}
}

// ObserveDecision counts a routing decision.
func (c *Collector) ObserveDecision(d routing.Decision) {
	source := string(d.LocaleSource)
	if source == "" {
		source = noSource
	}
	c.decisions.WithLabelValues(string(d.Outcome), source).Inc()
	if d.Rewrite != nil {
		c.rewrites.WithLabelValues(strconv.FormatBool(d.Rewrite.External)).Inc()
	}
}

// ObserveReload counts a reload attempt.
func (c *Collector) ObserveReload(err error) {
	if err != nil {
		c.reloads.WithLabelValues(ResultFailure).Inc()
		return
	}
	c.reloads.WithLabelValues(ResultSuccess).Inc()
}

// SetManifest updates the gauges describing the active manifest. A nil
// manifest resets them to zero.
func (c *Collector) SetManifest(m *manifest.Manifest) {
	var locales int
	counts := make(map[rewrite.Phase]int, len(rewrite.Phases))
	if m != nil {
		if t := m.Table(); t != nil {
			locales = len(t.AllLocales())
		}
		for _, p := range rewrite.Phases {
			counts[p] = len(m.Matcher().Rules(p))
		}
	}
	c.locales.Set(float64(locales))
	for _, p := range rewrite.Phases {
		c.rules.WithLabelValues(string(p)).Set(float64(counts[p]))
	}
}
