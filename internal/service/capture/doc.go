// Package capture owns the camera and writes timestamped JPEG artifacts.
//
// A capture that fails gets exactly one retry on a freshly reinitialized
// camera handle; a second failure is terminal for that capture.
package capture
