package turtle

import (
	"errors"
	"fmt"

	"github.com/chazu/joinery/pkg/geom"
)

// ErrEmptyStack is returned by Peek and Pop when the named stack holds no
// saved state.
var ErrEmptyStack = errors.New("turtle: empty state stack")

type snapKind uint8

const (
	snapFull snapKind = iota
	snapPos
	snapAngle
	snapPosAngle
	snapPen
)

// snapshot is a partial-state save on a named stack. kind selects which
// fields are meaningful.
type snapshot struct {
	kind  snapKind
	pos   geom.Point
	angle float64
	pen   bool
}

func (t Turtle) snap(kind snapKind) snapshot {
	return snapshot{kind: kind, pos: t.pos, angle: t.angle, pen: t.pen}
}

// pushSnap appends s to the named stack, copying the map and the affected
// slice so sibling turtles never observe the change.
func (t Turtle) pushSnap(stack string, s snapshot) Turtle {
	stacks := make(map[string][]snapshot, len(t.stacks)+1)
	for k, v := range t.stacks {
		stacks[k] = v
	}
	prev := stacks[stack]
	next := make([]snapshot, len(prev)+1)
	copy(next, prev)
	next[len(prev)] = s
	stacks[stack] = next
	t.stacks = stacks
	return t
}

// Push saves the full pose (position, heading, pen) on the named stack.
// The empty string names the default stack.
func (t Turtle) Push(stack string) Turtle {
	return t.pushSnap(stack, t.snap(snapFull))
}

// PushPos saves only the position.
func (t Turtle) PushPos(stack string) Turtle {
	return t.pushSnap(stack, t.snap(snapPos))
}

// PushAngle saves only the heading.
func (t Turtle) PushAngle(stack string) Turtle {
	return t.pushSnap(stack, t.snap(snapAngle))
}

// PushPosAndAngle saves the position and heading but not the pen state.
func (t Turtle) PushPosAndAngle(stack string) Turtle {
	return t.pushSnap(stack, t.snap(snapPosAngle))
}

// PushPen saves only the pen state.
func (t Turtle) PushPen(stack string) Turtle {
	return t.pushSnap(stack, t.snap(snapPen))
}

func (t Turtle) restore(s snapshot) Turtle {
	switch s.kind {
	case snapFull:
		t.pos = s.pos
		t.angle = s.angle
		t.pen = s.pen
	case snapPos:
		t.pos = s.pos
	case snapAngle:
		t.angle = s.angle
	case snapPosAngle:
		t.pos = s.pos
		t.angle = s.angle
	case snapPen:
		t.pen = s.pen
	}
	return t
}

// Peek restores the top saved state of the named stack without removing it.
func (t Turtle) Peek(stack string) (Turtle, error) {
	saved := t.stacks[stack]
	if len(saved) == 0 {
		return t, fmt.Errorf("peek %q: %w", stack, ErrEmptyStack)
	}
	return t.restore(saved[len(saved)-1]), nil
}

// Pop restores the top saved state of the named stack and removes it.
func (t Turtle) Pop(stack string) (Turtle, error) {
	saved := t.stacks[stack]
	if len(saved) == 0 {
		return t, fmt.Errorf("pop %q: %w", stack, ErrEmptyStack)
	}
	top := saved[len(saved)-1]

	stacks := make(map[string][]snapshot, len(t.stacks))
	for k, v := range t.stacks {
		stacks[k] = v
	}
	if len(saved) == 1 {
		delete(stacks, stack)
	} else {
		stacks[stack] = saved[:len(saved)-1]
	}
	t.stacks = stacks
	return t.restore(top), nil
}

// StackDepth returns the number of saved states on the named stack.
func (t Turtle) StackDepth(stack string) int {
	return len(t.stacks[stack])
}
