// Package routing turns an incoming request into a routing decision.
//
// Route runs the pipeline against a manifest snapshot:
//
//  1. strip the base path (requests outside it are reported, not routed);
//  2. apply beforeFiles rewrites, first match wins;
//  3. resolve the locale from the path, domain, cookie and Accept-Language;
//  4. re-attach the base path to the resulting pathname and asPath.
//
// The pipeline is pure: it performs no I/O, holds no state and never fails. Every
// outcome, including "outside the base path" and "no rewrite matched", is encoded
// in the returned Decision.
//
// # HTTP Middleware
//
// Middleware routes each request against the current snapshot of a manifest.Store
// and stores the Decision in the request context:
//
//	store := manifest.NewStore(m)
//	handler := routing.Middleware(store, routing.WithLogger(log))(next)
//
//	// inside next
//	d, ok := routing.FromContext(r.Context())
//
// The resolved locale is also stored with i18n.SetLocale so packages that only
// care about the locale do not need to depend on this one.
package routing
