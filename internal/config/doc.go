// Package config defines the startup settings of the mat-sentry daemon and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type covers sensor wiring and debounce, actuator pins, beep
// cadence, camera timing, the capture directory, the mail relay and cooldown,
// and optional MQTT telemetry. Credentials themselves never live in the file;
// it only names the environment variables they are read from.
package config
