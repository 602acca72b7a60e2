package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sheikhrachel/go-life-board/model"
)

var _ = Describe("Patterns", func() {
	It("looks up built-ins regardless of case", func() {
		p, err := model.PatternByName(" Glider ")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name).To(Equal("glider"))
		w, h := p.Size()
		Expect(w).To(Equal(3))
		Expect(h).To(Equal(3))
	})

	It("rejects unknown names", func() {
		_, err := model.PatternByName("spaceship")
		Expect(err).To(MatchError(model.ErrUnknownPattern))
	})

	It("lists every built-in in order", func() {
		Expect(model.PatternNames()).To(Equal([]string{"beacon", "blinker", "block", "glider", "toad"}))
	})

	It("stamps relative to the top-left corner", func() {
		g := newGrid(10, 10)
		Expect(g.Stamp(model.Blinker, 4, 6)).To(Succeed())
		Expect(liveCells(g)).To(ConsistOf(
			model.Point{X: 4, Y: 6}, model.Point{X: 5, Y: 6}, model.Point{X: 6, Y: 6},
		))
	})

	It("writes nothing when part of the pattern falls off the board", func() {
		g := newGrid(10, 10)
		Expect(g.Stamp(model.Glider, 8, 0)).To(MatchError(model.ErrOutOfBounds))
		Expect(g.CountLivingCells()).To(BeZero())
	})

	It("keeps a toad oscillating with period two", func() {
		g := newGrid(8, 8)
		Expect(g.Stamp(model.Toad, 2, 3)).To(Succeed())
		start := g.Hash()

		g.Tick()
		Expect(g.Hash()).NotTo(Equal(start))
		g.Tick()
		Expect(g.Hash()).To(Equal(start))
	})
})

var _ = Describe("GridPool", func() {
	It("reshapes recycled buffers", func() {
		pool := model.NewGridPool()
		buf := pool.Get(4, 3)
		Expect(buf).To(HaveLen(3))
		Expect(buf[0]).To(HaveLen(4))

		pool.Put(buf)
		buf = pool.Get(6, 5)
		Expect(buf).To(HaveLen(5))
		for _, row := range buf {
			Expect(row).To(HaveLen(6))
		}
	})

	It("backs grids created with an explicit pool", func() {
		g, err := model.NewGridWithPool(5, 5, model.NewGridPool())
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Stamp(model.Block, 1, 1)).To(Succeed())
		g.Tick()
		Expect(g.CountLivingCells()).To(Equal(4))
	})
})
