// Package reducejoin concatenates the strings of an N-dimensional batch
// along a set of axes.
//
// Reducing a (2,3) batch over axis 1 joins each row:
//
//	in := batch.MustOf([]string{"a", "b", "c", "d", "e", "f"}, 2, 3)
//	out, _ := reducejoin.Join(in, []int{1}, false, "-")
//	// out = ["a-b-c", "d-e-f"] with shape (2)
//
// When several axes are reduced, the strings of a group are visited in
// row-major order over the axes as listed, so the last listed axis varies
// fastest. Listing the axes in another order changes the concatenation
// order, not the grouping.
package reducejoin
