// Package diag defines the diagnostic model for obsgen: rule codes with
// stable string IDs, severities, spans, notes, suggested fixes, and the
// Reporter sinks pipeline stages emit into. Codes are an external contract
// (suppression entries and editors key off them) and are append-only.
package diag
