// Package crawler implements the recursive crawl engine: a Crawler
// orchestrates one coordinator goroutine per crawl target, each
// coordinator fans out one worker goroutine per discovered page, and
// related hosts found along the way are promoted to new targets.
//
// All coordination happens over channels. Membership sets (the global
// target set, each target's crawled-URL set) are only ever touched by the
// single goroutine that owns them, so the engine needs no locks.
package crawler
