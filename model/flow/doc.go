// Package flow defines the canvas snapshot captured by the history engine.
//
// A State is a plain, serialisable copy of the editor canvas at one instant:
// nodes, edges and (optionally) the viewport. The history core never renders
// or interprets node payloads; it only copies, hashes and compares them.
package flow
