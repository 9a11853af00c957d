// Package server exposes layout engines over HTTP.
//
// A client posts a tile sequence once, receives a layout id, and then asks
// for frames by index or by viewport rectangle while resizing the
// container. Each layout id owns one [layout.Engine]; resizing prepares a
// new snapshot and concurrent readers keep seeing the previous one until it
// is swapped in.
//
// # Routes
//
//	POST   /v1/layouts                        create a layout
//	GET    /v1/layouts/{id}                   layout document
//	PUT    /v1/layouts/{id}/width             prepare for a new width
//	GET    /v1/layouts/{id}/frames/{index}    frame of one tile
//	GET    /v1/layouts/{id}/frames?x=&y=&w=&h= frames intersecting a rectangle
//	GET    /v1/layouts/{id}/render.svg        SVG, optionally cropped to x,y,w,h
//	DELETE /v1/layouts/{id}                   drop a layout
//	GET    /healthz                           liveness and build info
//
// Errors are JSON objects {"code": "...", "message": "..."} with the status
// derived from the error code.
//
// Layouts live in memory. The registry holds at most a fixed number of
// layouts, evicting the least recently used, and drops layouts idle for
// longer than the configured TTL.
package server
