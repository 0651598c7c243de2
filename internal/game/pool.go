package game

// Pool is the FIFO of tetrominoes waiting to be played. It is a ring
// buffer that grows when full.
type Pool struct {
	items []*Tetromino
	head  int
	size  int
}

// NewPool returns an empty pool with room for capacity pieces.
func NewPool(capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{items: make([]*Tetromino, capacity)}
}

func (p *Pool) Len() int { return p.size }

// Push appends t at the back.
func (p *Pool) Push(t *Tetromino) {
	if p.size == len(p.items) {
		p.grow()
	}
	p.items[(p.head+p.size)%len(p.items)] = t
	p.size++
}

// Pop removes and returns the front piece, or nil when the pool is empty.
func (p *Pool) Pop() *Tetromino {
	if p.size == 0 {
		return nil
	}
	t := p.items[p.head]
	p.items[p.head] = nil
	p.head = (p.head + 1) % len(p.items)
	p.size--
	return t
}

// Peek returns up to n pieces from the front, in play order, without
// removing them.
func (p *Pool) Peek(n int) []*Tetromino {
	if n > p.size {
		n = p.size
	}
	if n < 0 {
		n = 0
	}
	out := make([]*Tetromino, n)
	for i := range out {
		out[i] = p.items[(p.head+i)%len(p.items)]
	}
	return out
}

func (p *Pool) grow() {
	items := make([]*Tetromino, len(p.items)*2)
	for i := 0; i < p.size; i++ {
		items[i] = p.items[(p.head+i)%len(p.items)]
	}
	p.items = items
	p.head = 0
}
