// Package logger is a standardized event logging framework for the
// interpreter.
//
// Events are written as newline delimited JSON objects. Each object is the
// protojson encoding of a google.protobuf.Struct so the log can be consumed
// by anything that understands the well-known types.
package logger
