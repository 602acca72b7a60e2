package model

import "sync"

var sharedPool = NewGridPool()

// GridPool recycles cell buffers used to stage the next generation
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &[][]bool{}
			},
		},
	}
}

// Get retrieves a buffer shaped height x width. Contents are unspecified;
// callers overwrite every cell.
func (p *GridPool) Get(width, height int) [][]bool {
	cells := *p.pool.Get().(*[][]bool)

	if len(cells) != height {
		cells = make([][]bool, height)
	}
	for i := range cells {
		if len(cells[i]) != width {
			cells[i] = make([]bool, width)
		}
	}
	return cells
}

// Put returns a buffer to the pool for reuse
func (p *GridPool) Put(cells [][]bool) {
	if cells == nil {
		return
	}
	p.pool.Put(&cells)
}
