package math3d

// MatrixStack is a model-view stack in the style of fixed-function GL:
// Push saves the current top, Mul post-multiplies it, Pop restores it.
// The zero value is not usable; use NewMatrixStack.
type MatrixStack struct {
	stack []Mat4
}

// NewMatrixStack returns a stack holding a single identity matrix.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{stack: []Mat4{Identity()}}
}

// Top returns the current matrix.
func (s *MatrixStack) Top() Mat4 {
	return s.stack[len(s.stack)-1]
}

// Load replaces the current matrix.
func (s *MatrixStack) Load(m Mat4) {
	s.stack[len(s.stack)-1] = m
}

// Mul post-multiplies the current matrix by m, so m applies to vertices first.
func (s *MatrixStack) Mul(m Mat4) {
	top := len(s.stack) - 1
	s.stack[top] = s.stack[top].Mul(m)
}

// Push duplicates the current matrix.
func (s *MatrixStack) Push() {
	s.stack = append(s.stack, s.Top())
}

// Pop discards the current matrix. Popping the last entry resets it to
// identity instead of emptying the stack.
func (s *MatrixStack) Pop() {
	if len(s.stack) == 1 {
		s.stack[0] = Identity()
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}
