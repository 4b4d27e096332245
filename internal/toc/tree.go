package toc

import "tocsmith/internal/outline"

// assignDepths maps each heading level that occurs in the (already filtered)
// sequence to a compact 1-based TOC depth, assigned in increasing level order.
// Levels that never occur are absent from the map and read back as 0, meaning
// "not used for indentation". This keeps a document using only h2 and h4 from
// producing an empty nesting step between them.
func assignDepths(headings []outline.Heading) map[int]int {
	var occurs [7]bool
	for _, h := range headings {
		occurs[h.Level] = true
	}
	depths := make(map[int]int, 6)
	d := 0
	for lvl := 1; lvl <= 6; lvl++ {
		if occurs[lvl] {
			d++
			depths[lvl] = d
		}
	}
	return depths
}

// buildTree nests entries according to their assigned depth. A stack of
// containers tracks the current insertion path: equal depth appends a sibling,
// deeper depth opens a sub-list under the most recent entry, shallower depth
// truncates the stack back before appending.
func buildTree(entries []outline.Entry) []*outline.Node {
	root := &outline.Node{}
	// stack[d-1] is the container receiving entries of depth d.
	stack := []*outline.Node{root}

	for i := range entries {
		e := &entries[i]

		if len(stack) > e.Depth {
			stack = stack[:e.Depth]
		}
		for len(stack) < e.Depth {
			parent := stack[len(stack)-1]
			var holder *outline.Node
			if n := len(parent.Children); n > 0 {
				holder = parent.Children[n-1]
			} else {
				// No entry to nest under yet: insert a label-less holder.
				holder = &outline.Node{}
				parent.Children = append(parent.Children, holder)
			}
			stack = append(stack, holder)
		}

		top := stack[len(stack)-1]
		top.Children = append(top.Children, &outline.Node{Label: e.Numbered, ID: e.ID})
	}

	return root.Children
}
