package engine

import "sort"

// Redistribute equalizes task counts across candidates so that, as much as
// possible, no single candidate is left holding more tasks than its real
// capacity while a sibling has spare room.
//
// Candidates are packed into a stack ordered by priority ascending so the
// highest-priority candidates (lowest priority number) are popped first.
// The slice is mutated in place; candidate order afterward is unspecified.
func Redistribute(candidates []*Candidate) {
	stack := make([]*Candidate, len(candidates))
	copy(stack, candidates)
	// Descending priority so the highest-priority (lowest number) candidate
	// ends up at the top of the stack (end of slice, popped first).
	sort.SliceStable(stack, func(i, j int) bool {
		return stack[i].Priority > stack[j].Priority
	})

	pop := func() *Candidate {
		if len(stack) == 0 {
			return nil
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}
	push := func(c *Candidate) {
		stack = append(stack, c)
	}

	for len(stack) >= 1 {
		a := pop()
		if a.RelativeCapacity() >= 1 {
			continue
		}
		b := pop()
		if b == nil {
			break
		}

		amount := a.realCapacity - a.TaskCount
		if b.TaskCount < amount {
			amount = b.TaskCount
		}
		a.TaskCount += amount
		b.TaskCount -= amount

		if b.TaskCount > 0 {
			push(b)
		}
		if a.RelativeCapacity() < 1 {
			push(a)
		}
	}
}
