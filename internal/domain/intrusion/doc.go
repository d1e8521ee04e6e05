// Package intrusion contains core domain types for the trigger pipeline.
//
// It defines Channel (a debounced sensor input with its last accepted
// trigger time) and Event (a single accepted trigger handed to the
// dispatcher).
package intrusion
