// Package dispatcher reacts to one accepted trigger at a time: alarm
// indicator on, buzzer pattern, image capture, email notification, alarm
// indicator off. Strictly in that order, blocking the poll loop.
package dispatcher
