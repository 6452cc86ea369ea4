package pbc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cgview/internal/pbc"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

var _ = Describe("Wrap", func() {
	DescribeTable("normalizes into [0, size)",
		func(v, size, want float64) {
			Expect(pbc.Wrap(v, size)).To(BeNumerically("~", want, tol))
		},
		Entry("inside the box", 3.0, 10.0, 3.0),
		Entry("on the upper edge", 10.0, 10.0, 0.0),
		Entry("just past the edge", 10.5, 10.0, 0.5),
		Entry("several boxes out", 42.0, 10.0, 2.0),
		Entry("negative", -0.5, 10.0, 9.5),
		Entry("several boxes negative", -25.0, 10.0, 5.0),
		Entry("zero stays zero", 0.0, 10.0, 0.0),
	)

	It("keeps results in range for a sweep of inputs", func() {
		for v := -100.0; v <= 100.0; v += 0.7 {
			w := pbc.Wrap(v, 7.3)
			Expect(w).To(BeNumerically(">=", 0))
			Expect(w).To(BeNumerically("<", 7.3))
		}
	})

	It("passes through when the box size is zero", func() {
		Expect(pbc.Wrap(12.5, 0)).To(Equal(12.5))
		Expect(pbc.Wrap(-3.0, 0)).To(Equal(-3.0))
	})
})

var _ = Describe("Model", func() {
	var (
		box       pbc.Box
		positions []r3.Vec
		bonds     [][2]int
		m         *pbc.Model
	)

	BeforeEach(func() {
		box = pbc.Box{X: 10, Y: 10, Z: 10}
		positions = []r3.Vec{
			{X: 1, Y: 2, Z: 3},
			{X: 9.5, Y: 0, Z: 5},
			{X: 4, Y: 4, Z: 4},
		}
		bonds = [][2]int{{0, 1}, {1, 2}}
		m = pbc.NewModel(box, positions, bonds)
	})

	It("starts with a zero offset and unwrapped positions intact", func() {
		Expect(m.Offset()).To(Equal(r3.Vec{}))
		Expect(m.Position(0)).To(Equal(r3.Vec{X: 1, Y: 2, Z: 3}))
		Expect(m.Len()).To(Equal(3))
		Expect(m.NumBonds()).To(Equal(2))
	})

	It("snapshots the canonical positions", func() {
		positions[0].X = 99
		Expect(m.Position(0).X).To(Equal(1.0))
	})

	It("accumulates shifts on one axis", func() {
		m.Shift(pbc.AxisX, 2)
		m.Shift(pbc.AxisX, 3)
		Expect(m.Offset().X).To(Equal(5.0))
		Expect(m.Position(0).X).To(BeNumerically("~", 6, tol))
	})

	It("wraps a particle pushed past the boundary", func() {
		m.Shift(pbc.AxisX, 1)
		Expect(m.Position(1).X).To(BeNumerically("~", 0.5, tol))
	})

	It("leaves displayed positions unchanged after a full box-length shift", func() {
		before := make([]r3.Vec, m.Len())
		for i := range before {
			before[i] = m.Position(i)
		}
		m.Shift(pbc.AxisX, box.X)
		for i := range before {
			Expect(m.Position(i).X).To(BeNumerically("~", before[i].X, 1e-9))
			Expect(m.Position(i).Y).To(Equal(before[i].Y))
			Expect(m.Position(i).Z).To(Equal(before[i].Z))
		}
	})

	It("shifts axes independently", func() {
		m.Shift(pbc.AxisY, 9)
		Expect(m.Position(0).X).To(Equal(1.0))
		Expect(m.Position(0).Y).To(BeNumerically("~", 1, tol))
		Expect(m.Position(0).Z).To(Equal(3.0))
	})

	It("derives bond endpoints through the same wrap", func() {
		m.Shift(pbc.AxisX, 1)
		a, b := m.BondEndpoints(0)
		Expect(a).To(Equal(m.Position(0)))
		Expect(b).To(Equal(m.Position(1)))
		// Endpoint b crossed the boundary; it is wrapped independently,
		// no minimum-image correction.
		Expect(a.X).To(BeNumerically("~", 2, tol))
		Expect(b.X).To(BeNumerically("~", 0.5, tol))
	})

	It("passes positions through on a zero-sized axis", func() {
		m = pbc.NewModel(pbc.Box{X: 10}, positions, bonds)
		m.Shift(pbc.AxisZ, 4)
		Expect(m.Position(0).Z).To(Equal(7.0))
		m.Shift(pbc.AxisX, 10.5)
		Expect(m.Position(0).X).To(BeNumerically("~", 1.5, tol))
	})
})
