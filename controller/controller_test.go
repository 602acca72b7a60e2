package controller_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sheikhrachel/go-life-board/controller"
	"github.com/sheikhrachel/go-life-board/model"
	"github.com/sheikhrachel/go-life-board/utils"
)

var _ = Describe("Controller", func() {
	var c *controller.Controller

	BeforeEach(func() {
		cfg := utils.DefaultConfig()
		cfg.TickInterval = 5 * time.Millisecond
		c = controller.New(cfg)
	})

	Context("without a board", func() {
		It("refuses board actions", func() {
			Expect(c.HasBoard()).To(BeFalse())

			_, err := c.Step()
			Expect(err).To(MatchError(controller.ErrNoBoard))
			Expect(c.Toggle(0, 0)).To(MatchError(controller.ErrNoBoard))
			Expect(c.Seed("glider", 0, 0)).To(MatchError(controller.ErrNoBoard))
			Expect(c.SetAutoTick(true)).To(MatchError(controller.ErrNoBoard))
			Expect(c.AutoTick()).To(BeFalse())
		})
	})

	Describe("CreateBoard", func() {
		It("enforces the minimum size and keeps the old board", func() {
			Expect(c.CreateBoard(12, 10)).To(Succeed())
			Expect(c.Toggle(3, 3)).To(Succeed())

			Expect(c.CreateBoard(9, 20)).To(MatchError(controller.ErrBelowMinimum))
			Expect(c.CreateBoard(20, 0)).To(MatchError(controller.ErrBelowMinimum))

			snap, err := c.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Width).To(Equal(12))
			Expect(snap.Height).To(Equal(10))
			Expect(snap.Population).To(Equal(1))
		})

		It("replaces the board wholesale", func() {
			Expect(c.CreateBoard(10, 10)).To(Succeed())
			Expect(c.Seed("block", 1, 1)).To(Succeed())
			_, err := c.Step()
			Expect(err).NotTo(HaveOccurred())

			Expect(c.CreateBoard(15, 11)).To(Succeed())
			snap, err := c.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(snap).To(Equal(controller.Snapshot{Width: 15, Height: 11}))

			stats, err := c.Stats()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalGenerations).To(BeZero())
		})

		It("can be destroyed", func() {
			Expect(c.CreateBoard(10, 10)).To(Succeed())
			Expect(c.SetAutoTick(true)).To(Succeed())
			c.DestroyBoard()
			Expect(c.HasBoard()).To(BeFalse())
			Expect(c.AutoTick()).To(BeFalse())
		})
	})

	Describe("Step", func() {
		BeforeEach(func() {
			Expect(c.CreateBoard(10, 10)).To(Succeed())
		})

		It("advances the board and reports the outcome", func() {
			Expect(c.Seed("blinker", 3, 4)).To(Succeed())

			snap, err := c.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Generation).To(Equal(1))
			Expect(snap.Population).To(Equal(3))
			Expect(snap.Births).To(Equal(2))
			Expect(snap.Deaths).To(Equal(2))
			Expect(snap.Density).To(BeNumerically("~", 3.0))

			Expect(c.View(func(g *model.Grid) {
				Expect(g.Alive(4, 3)).To(BeTrue())
				Expect(g.Alive(4, 5)).To(BeTrue())
				Expect(g.Alive(3, 4)).To(BeFalse())
			})).To(Succeed())
		})

		It("notices a still life", func() {
			Expect(c.Seed("block", 4, 4)).To(Succeed())
			var snap controller.Snapshot
			for range 3 {
				var err error
				snap, err = c.Step()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(snap.Stagnant).To(BeTrue())
		})

		It("passes cell errors through untouched", func() {
			Expect(c.Toggle(10, 0)).To(MatchError(model.ErrOutOfBounds))
			Expect(c.Seed("nope", 0, 0)).To(MatchError(model.ErrUnknownPattern))
			Expect(c.Set(0, 0, true)).To(Succeed())
			snap, err := c.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Population).To(Equal(1))
		})

		It("randomizes and clears", func() {
			Expect(c.Randomize(1)).To(Succeed())
			snap, _ := c.Snapshot()
			Expect(snap.Population).To(Equal(100))

			Expect(c.Clear()).To(Succeed())
			snap, _ = c.Snapshot()
			Expect(snap.Population).To(BeZero())

			Expect(c.InjectRandomLife(3)).To(Succeed())
			snap, _ = c.Snapshot()
			Expect(snap.Population).To(BeNumerically(">", 0))
		})
	})

	Describe("interval", func() {
		It("ignores non-positive values", func() {
			Expect(c.SetInterval(0)).To(BeFalse())
			Expect(c.SetInterval(-time.Second)).To(BeFalse())
			Expect(c.Interval()).To(Equal(5 * time.Millisecond))

			Expect(c.SetInterval(time.Second)).To(BeTrue())
			Expect(c.Interval()).To(Equal(time.Second))
		})
	})

	Describe("Run", func() {
		BeforeEach(func() {
			Expect(c.CreateBoard(10, 10)).To(Succeed())
			Expect(c.Seed("blinker", 3, 4)).To(Succeed())
		})

		It("ticks only while auto-tick is on and stops on cancel", func() {
			ctx, cancel := context.WithCancel(context.Background())
			var ticks atomic.Int32
			done := make(chan error, 1)
			go func() {
				done <- c.Run(ctx, func(controller.Snapshot) { ticks.Add(1) })
			}()

			Consistently(ticks.Load, 30*time.Millisecond).Should(BeZero())

			on, err := c.ToggleAutoTick()
			Expect(err).NotTo(HaveOccurred())
			Expect(on).To(BeTrue())
			Eventually(ticks.Load).Should(BeNumerically(">=", 3))

			on, err = c.ToggleAutoTick()
			Expect(err).NotTo(HaveOccurred())
			Expect(on).To(BeFalse())
			settled := ticks.Load()
			Consistently(ticks.Load, 30*time.Millisecond).Should(BeNumerically("<=", settled+1))

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
		})
	})
})
