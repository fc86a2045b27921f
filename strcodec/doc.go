// Package strcodec converts string batches to and from a fixed-width byte
// layout.
//
// Each string occupies one record of maxLength code points stored as
// little-endian 32-bit units (UTF-32LE). Shorter strings are zero padded,
// longer ones are truncated. A record is decoded up to its first zero unit.
//
// ArgsCalc computes the record length and buffer size needed to hold a
// batch without truncation.
package strcodec
