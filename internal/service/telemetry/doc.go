// Package telemetry publishes accepted trigger events to an MQTT broker.
//
// It is a best-effort side channel: publishes are fire-and-forget and a
// broker failure never disturbs the alert pipeline. The publisher is only
// constructed when a broker is configured.
package telemetry
