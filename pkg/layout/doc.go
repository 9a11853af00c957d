// Package layout computes tile frames for a packed segment sequence and
// answers spatial queries over them.
//
// # Geometry
//
// Given a container width W and side padding P, every segment is a
// rectangle (P, y, W-2P, (W-2P)/2) subdivided according to its
// [tile.Pattern]. Double-height segments are twice as tall. The first
// segment starts at y=0 and each later one starts one unit below the
// previous segment's bottom edge. A tile's [Frame] is its cell inset by P
// on every side.
//
// # Snapshots
//
// [Compute] is a pure function returning an immutable [Snapshot]. [Engine]
// owns the current snapshot for a fixed pattern sequence: [Engine.Prepare]
// recomputes and publishes a new snapshot atomically, so readers never
// observe a half-built frame list. [Engine.Invalidate] reports whether a
// new container width requires a prepare.
//
// # Queries
//
// [Snapshot.Frame] is a direct index lookup. [Snapshot.Intersecting]
// binary-searches the y-sorted segment list for a segment overlapping the
// query vertically, walks outward to every neighbour that still overlaps,
// and tests each frame of those segments exactly. Cost is O(log n + k).
package layout
