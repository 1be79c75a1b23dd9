// Package parallel implements recursive fork/join parallel algorithms over
// an index range [first,last), the way the original's parallel algorithm
// skeleton does (spec.md §4.5): a Partitioner decides, at every level of
// recursion, whether a subrange is small enough to run as a single leaf
// task or should be bisected into two halves forked concurrently.
package parallel

// Partitioner decides where to split [first,last) for the next level of
// recursion. Returning last (or anything >= last) means "don't split,
// this range is a leaf".
type Partitioner func(first, last int) int

// Halve returns a Partitioner that always bisects down to subranges of at
// most minGrain elements, the simplest policy from spec.md §4.5 ("halve
// until a minimum grain size").
func Halve(minGrain int) Partitioner {
	if minGrain < 1 {
		minGrain = 1
	}
	return func(first, last int) int {
		if last-first <= minGrain {
			return last
		}
		return first + (last-first)/2
	}
}

// Thread bisects [first,last) at its midpoint unless the subrange holds no
// more than ceil(n/hardwareConcurrency()) elements, where n is the size of
// that same subrange. hardwareConcurrency is called once per Partitioner
// invocation rather than cached, since an executor's capacity (e.g. a
// Pool) can change between calls. Because the grain is recomputed from
// each subrange's own size, any concurrency above 1 keeps bisecting down
// to single-element leaves: the number of leaves is not bounded by
// hardwareConcurrency(), and Thread keeps no count of the splits it has
// already made.
func Thread(hardwareConcurrency func() int) Partitioner {
	return func(first, last int) int {
		n := last - first
		concurrency := hardwareConcurrency()
		if concurrency < 1 {
			concurrency = 1
		}
		grain := (n + concurrency - 1) / concurrency
		if grain < 1 {
			grain = 1
		}
		if n <= grain {
			return last
		}
		return first + n/2
	}
}
