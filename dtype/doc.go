// Package dtype defines the closed set of element kinds the lookup engine
// understands and the array descriptor used at the host boundary.
//
// A Kind selects a table instantiation and validates every batch handed to an
// entry point. DataType mirrors the {code, bits, lanes} triple carried by host
// array descriptors; the string kind uses the custom code 130.
package dtype
