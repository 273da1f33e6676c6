// Package httpapi serves a refget.Service over HTTP.
//
// Routes:
//
//	GET /faidx/{id}                          sequence
//	GET /faidx/metadata/{id}                 metadata
//	GET /faidx/{algorithm}/{id}              sequence, label endpoints only
//	GET /faidx/metadata/{algorithm}/{id}     metadata, label endpoints only
//	GET /healthz                             liveness
//	GET /metrics                             Prometheus, when configured
//
// Every response carries an X-Request-Id header; an incoming one is
// reused.
package httpapi
