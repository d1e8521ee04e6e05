// Package sentry wires the whole daemon: configuration, GPIO claim, the
// armed indicator, the capture/notify pipeline and the poll loop, plus the
// safe-state shutdown that drives every output inactive on any exit path.
package sentry
