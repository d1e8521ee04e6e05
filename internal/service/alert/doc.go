// Package alert drives the buzzer and the armed/alarm indicators.
package alert
