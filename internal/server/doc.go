// Package server implements the MCP (Model Context Protocol) host surface
// for the tracing pipeline.
//
// The server communicates via JSON-RPC 2.0 over stdin/stdout, one message
// per line. It exposes the pipeline as tools: image_info for inspecting an
// image before tracing, trace_outline for raw geometry, trace_svg for a
// styled SVG document, and edge_map for visualizing the boundary-pixel scan
// when a mask refuses to trace.
//
// # Error Mapping
//
// Pipeline failures are typed (see the trace package); the server maps each
// kind to one human-readable status string in the JSON-RPC error payload, so
// a client can surface "the image outline is too complex" instead of a raw
// error chain. No partial geometry is ever returned for a failed trace.
//
// # Protocol Flow
//
//  1. Client sends "initialize", server responds with capabilities
//  2. Client sends "notifications/initialized" (no response)
//  3. Client calls "tools/list" to discover the tools above
//  4. Client calls "tools/call" to execute them
//
// Logging goes to stderr via the standard log package; stdout carries only
// protocol frames.
package server
