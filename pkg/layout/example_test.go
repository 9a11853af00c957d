package layout_test

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

func ExampleEngine() {
	packing, _ := tile.Pack([]tile.Size{tile.FullWidth, tile.Square, tile.Square})

	e, _ := layout.NewEngine(packing.Patterns, layout.Options{})
	if e.Invalidate(348) {
		if _, err := e.Prepare(348); err != nil {
			fmt.Println(err)
			return
		}
	}

	size, _ := e.ContentSize()
	fmt.Printf("content %vx%v\n", size.Width, size.Height)

	visible, _ := e.FramesIntersecting(layout.Rect{X: 0, Y: 200, Width: 348, Height: 50})
	for _, f := range visible {
		fmt.Printf("tile %d at (%v,%v) %vx%v\n", f.Index, f.X, f.Y, f.Width, f.Height)
	}
	// Output:
	// content 348x317
	// tile 1 at (32,175) 126x126
	// tile 2 at (190,175) 126x126
}
