package bitvec_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmipssim/bitvec"
)

func TestBitvec(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "BitVec Suite")
}

var _ = Describe("BitVec", func() {
	Describe("Signed/Unsigned round trip", func() {
		It("recovers the original value for in-range integers", func() {
			for _, v := range []int64{0, 1, -1, 42, -42, 2147483647, -2147483648} {
				bv := bitvec.New(v)
				Expect(bv.Signed()).To(Equal(v))
			}
		})
	})

	Describe("TwosCompl", func() {
		It("is its own inverse", func() {
			bv := bitvec.New(12345)
			Expect(bv.TwosCompl().TwosCompl().Signed()).To(Equal(bv.Signed()))
		})
	})

	Describe("Add/Sub/Mul", func() {
		It("wraps around on overflow", func() {
			maxPos := bitvec.New(2147483647)
			one := bitvec.New(1)
			result := bitvec.Add(maxPos, one)
			Expect(result.Signed()).To(Equal(int64(-2147483648)))
		})

		It("computes simple arithmetic", func() {
			a := bitvec.New(10)
			b := bitvec.New(3)
			Expect(bitvec.Add(a, b).Signed()).To(Equal(int64(13)))
			Expect(bitvec.Sub(a, b).Signed()).To(Equal(int64(7)))
			Expect(bitvec.Mul(a, b).Signed()).To(Equal(int64(30)))
		})
	})

	Describe("Div", func() {
		It("floor-divides signed values", func() {
			a := bitvec.New(-7)
			b := bitvec.New(2)
			result, divByZero := bitvec.Div(a, b)
			Expect(divByZero).To(BeFalse())
			Expect(result.Signed()).To(Equal(int64(-4)))
		})

		It("saturates to max positive on divide by zero", func() {
			a := bitvec.New(5)
			zero := bitvec.New(0)
			result, divByZero := bitvec.Div(a, zero)
			Expect(divByZero).To(BeTrue())
			Expect(result.Signed()).To(Equal(int64(2147483647)))
		})
	})

	Describe("Bitwise ops", func() {
		It("computes and/or/xor on unsigned interpretation", func() {
			a := bitvec.New(0b1100)
			b := bitvec.New(0b1010)
			Expect(bitvec.And(a, b).Unsigned()).To(Equal(uint64(0b1000)))
			Expect(bitvec.Or(a, b).Unsigned()).To(Equal(uint64(0b1110)))
			Expect(bitvec.Xor(a, b).Unsigned()).To(Equal(uint64(0b0110)))
		})
	})

	Describe("Shifts", func() {
		It("reduces the shift amount modulo width", func() {
			a := bitvec.New(1)
			shiftByWidth := bitvec.New(32)
			Expect(bitvec.Sll(a, shiftByWidth).Signed()).To(Equal(int64(1)))
		})

		It("zero-fills on Srl regardless of sign", func() {
			neg := bitvec.New(-1)
			one := bitvec.New(1)
			result := bitvec.Srl(neg, one)
			Expect(result.Unsigned()).To(Equal(uint64(0x7fffffff)))
		})

		It("sign-extends on Sra", func() {
			neg := bitvec.New(-8)
			one := bitvec.New(1)
			Expect(bitvec.Sra(neg, one).Signed()).To(Equal(int64(-4)))
		})
	})

	Describe("Equal", func() {
		It("compares value and width", func() {
			Expect(bitvec.New(5).Equal(bitvec.New(5))).To(BeTrue())
			Expect(bitvec.New(5).Equal(bitvec.New(6))).To(BeFalse())
		})
	})
})
