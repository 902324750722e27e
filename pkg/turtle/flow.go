package turtle

// Branch runs f on the current turtle, keeps everything f drew, and restores
// position, heading, and pen state to their values before f ran.
func (t Turtle) Branch(f func(Turtle) Turtle) Turtle {
	r := f(t)
	r.pos = t.pos
	r.angle = t.angle
	r.pen = t.pen
	return r
}

// Repeat applies f n times, threading the turtle and the iteration index.
func (t Turtle) Repeat(n int, f func(Turtle, int) Turtle) Turtle {
	for i := 0; i < n; i++ {
		t = f(t, i)
	}
	return t
}

// Branches applies f n times, wrapping each iteration in Branch so every
// call starts from the same pose.
func (t Turtle) Branches(n int, f func(Turtle, int) Turtle) Turtle {
	for i := 0; i < n; i++ {
		i := i
		t = t.Branch(func(b Turtle) Turtle { return f(b, i) })
	}
	return t
}

// Each threads every item through f in order.
func Each[T any](t Turtle, items []T, f func(Turtle, T) Turtle) Turtle {
	for _, it := range items {
		t = f(t, it)
	}
	return t
}

// EachBranch threads every item through f, wrapping each call in Branch.
func EachBranch[T any](t Turtle, items []T, f func(Turtle, T) Turtle) Turtle {
	for _, it := range items {
		it := it
		t = t.Branch(func(b Turtle) Turtle { return f(b, it) })
	}
	return t
}
