package exec

import "github.com/timewinder-dev/springs/record"

// Branch is one partially resolved arrangement waiting to be checked. Cells
// is owned by the branch; State records how far into Cells it has already
// been validated.
type Branch struct {
	State ValidationState
	Cells []record.Cell
}

// Stack is the frontier of the backtracking search.
type Stack struct {
	Branches []Branch
}

func (s *Stack) Push(b Branch) {
	s.Branches = append(s.Branches, b)
}

func (s *Stack) Pop() (Branch, bool) {
	if len(s.Branches) == 0 {
		return Branch{}, false
	}
	b := s.Branches[len(s.Branches)-1]
	s.Branches[len(s.Branches)-1] = Branch{}
	s.Branches = s.Branches[:len(s.Branches)-1]
	return b, true
}

func (s *Stack) Len() int {
	return len(s.Branches)
}
