// Package coord implements the coordinate machine: a small register engine that
// converts positions between World space and Canvas (device) space.
//
// # Registers
//
// A [Machine] owns a current point, a current rectangle and ONE space tag shared
// by both, so the point and rectangle are never in different spaces. Around
// them sit the camera (World position plus an integer zoom ratio), the viewport
// size, three single-slot named registers (attachment rectangle, label point,
// event point) and a LIFO snapshot stack.
//
// # Projection
//
// World to Canvas:
//
//	dev = ((world - cam) * num) / den + viewport/2
//
// Canvas to World:
//
//	world = ((dev - viewport/2) * den) / num + cam
//
// Every division is integer floor division applied to the full product, so
// placement is deterministic to the pixel. A World -> Canvas -> World round trip
// is not exact for non-unit ratios; with num >= den each axis lands within one
// unit of where it started.
//
// A zero denominator (or a zero numerator when projecting back to World) is not
// checked and panics with the runtime's integer divide by zero.
//
// # Tokens
//
// Loads and stores name their operand with a fixed token set: attachment, event,
// center, center-south, nw, ne, se, sw, label and cam. [Source] and [Dest] carry
// these tokens; [ParseSource] and [ParseDest] accept them from external input.
//
// # Concurrency
//
// A Machine is not safe for concurrent use. It is meant to be owned by a single
// goroutine (the UI loop or a render pass); callers sharing one must serialize
// access themselves.
package coord
