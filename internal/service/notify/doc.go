// Package notify sends the intrusion email: one recipient, plain body, the
// captured JPEG attached, over implicit-TLS SMTP.
//
// Sends are rate-limited by a single process-wide cooldown timestamp. The
// cooldown is consumed on entry, before the credential check, mirroring the
// deployed behavior (see DESIGN.md for the flagged consequence).
package notify
