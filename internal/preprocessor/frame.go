package preprocessor

// frame is one open #if block. A frame is exactly one of *evaluated or
// *passThrough; nothing else implements the interface.
type frame interface {
	openedAt() int
	markElse() bool
}

// block holds the bookkeeping shared by both frame kinds.
type block struct {
	line    int
	sawElse bool
}

func (b *block) openedAt() int { return b.line }

// markElse records an #else and reports false if the block already had one.
func (b *block) markElse() bool {
	if b.sawElse {
		return false
	}
	b.sawElse = true
	return true
}

// evaluated is a block whose branch was decided against the active symbols.
type evaluated struct {
	block
	active bool
}

// passThrough is a block guarded by a pass-through symbol. It never
// suppresses output and its directive lines are kept.
type passThrough struct {
	block
}

// condStack tracks open #if blocks, innermost last.
type condStack struct {
	frames []frame
}

func (s *condStack) push(f frame) {
	s.frames = append(s.frames, f)
}

func (s *condStack) top() frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *condStack) pop() (frame, bool) {
	f := s.top()
	if f == nil {
		return nil, false
	}
	s.frames = s.frames[:len(s.frames)-1]
	return f, true
}

func (s *condStack) depth() int { return len(s.frames) }

// visible reports whether a line at the current position is emitted:
// no frame on the stack may be an inactive evaluated branch.
func (s *condStack) visible() bool {
	for _, f := range s.frames {
		if e, ok := f.(*evaluated); ok && !e.active {
			return false
		}
	}
	return true
}
