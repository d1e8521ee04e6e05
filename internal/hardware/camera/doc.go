// Package camera defines the still-capture port owned by the capture
// service and its libcamera adapter.
//
// The camera is an exclusive resource: exactly one Camera handle exists at
// a time, and a faulted handle is replaced through the Factory rather than
// reused.
package camera
