// Package logging builds the archiver's slog logger.
//
// Two formats are supported: "console", a compact line-per-record layout
// with coloured level badges when writing to a terminal, and "json", one
// object per record for log shippers.
package logging
