// Package sinks provides the stock progress.Sink implementations: a zap
// log sink, a Prometheus sink, and an in-memory store backing the ops
// API.
package sinks
