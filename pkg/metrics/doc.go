// Package metrics exposes Prometheus counters for routing decisions and
// manifest reloads.
//
// A Collector registers its metrics on the configured registry (the default
// registerer unless WithRegistry is used) and offers callbacks shaped for
// routing.WithObserver and reload.WithHook:
//
//	c := metrics.New(metrics.WithRegistry(reg))
//	mw := routing.Middleware(store, routing.WithObserver(c.ObserveDecision))
//	w, _ := reload.New(path, store, reload.WithHook(c.ObserveReload))
//
// Metrics:
//   - i18nrouter_decisions_total{outcome,source}
//   - i18nrouter_rewrites_total{external}
//   - i18nrouter_reloads_total{result}
//   - i18nrouter_manifest_locales
//   - i18nrouter_manifest_rewrites{phase}
package metrics
