// Package tile defines tile sizes, segment patterns and the segment packer.
//
// A tile is the atomic unit of the grid. Its [Size] is one of four classes
// expressed relative to a half-column square:
//
//   - [Square] (1x1): one column wide, one unit tall
//   - [FullWidth] (2x1): both columns, one unit tall
//   - [DoubleHeight] (1x2): one column, two units tall
//   - [HalfHeight] (1x0.5): one column, half a unit tall
//
// Consecutive tiles are grouped into segments. Each segment is one row of
// the grid and follows a fixed [Pattern]: one full-width tile, two squares,
// two double-heights, four half-heights, or a square beside two stacked
// half-heights (in either order).
//
// # Packing
//
// [Pack] walks the size sequence once with a pending buffer. After every
// tile the buffer is compared against the patterns of the same length; a
// match emits the pattern and clears the buffer.
//
//	p, err := tile.Pack([]tile.Size{tile.FullWidth, tile.Square, tile.Square})
//	// p.Patterns == [OneFullWidth TwoSquares]
//
// A buffer that can no longer grow into any pattern is rejected with an
// UNPACKABLE error. Tiles left in the buffer at the end of the input are
// reported in [Packing.Remainder]; [Packing.Err] turns a non-empty
// remainder into an INCOMPLETE_GROUP error for callers that require every
// tile to be placed.
package tile
