package emu_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmipssim/bitvec"
	"github.com/sarchlab/vmipssim/emu"
	"github.com/sarchlab/vmipssim/isa"
	"github.com/sarchlab/vmipssim/mem"
)

// newMemCore builds a core over fresh, directly-writable memories -- the
// caller seeds sd/vd before calling Run, rather than going through a
// SDMEM.txt/VDMEM.txt file.
func newMemCore(dir, program string) (*emu.Core, *mem.DMEM, *mem.DMEM) {
	imemPath := filepath.Join(dir, "Code.asm")
	ExpectWithOffset(1, os.WriteFile(imemPath, []byte(program), 0o644)).To(Succeed())
	im, err := mem.LoadIMEM(imemPath)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	sd := mem.NewDMEM("SDMEM", 10)
	vd := mem.NewDMEM("VDMEM", 10)
	return emu.NewCore(im, sd, vd), sd, vd
}

var _ = Describe("vector memory addressing", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("generates strided addresses for LVWS (stride != 1)", func() {
		// SR1=base(2), SR2=stride(3), SR3=VL(4): addrs = 2, 5, 8, 11.
		c, sd, vd := newMemCore(dir, ""+
			"LS SR1 SR0 0\n"+
			"LS SR2 SR0 1\n"+
			"LS SR3 SR0 2\n"+
			"MTCL SR3\n"+
			"LVWS VR1 SR1 SR2\n"+
			"HALT\n")
		Expect(sd.Write(0, bitvec.New(2))).To(Succeed())
		Expect(sd.Write(1, bitvec.New(3))).To(Succeed())
		Expect(sd.Write(2, bitvec.New(4))).To(Succeed())
		for _, addr := range []int{2, 5, 8, 11} {
			Expect(vd.Write(addr, bitvec.New(int64(addr*100)))).To(Succeed())
		}
		// A naive stride-1 read would touch address 3, which must stay zero.
		Expect(c.Run()).To(Succeed())

		vals, err := c.VRF().Read(isa.Register{Kind: isa.Vector, Index: 1})
		Expect(err).NotTo(HaveOccurred())
		for i, addr := range []int{2, 5, 8, 11} {
			Expect(vals[i].Signed()).To(Equal(int64(addr * 100)))
		}
	})

	It("generates register-indexed addresses for LVI (non-identity index)", func() {
		// VR2 is loaded (plain LV) with the offsets [5, 0, 3, 9].
		// SR4=base(100): addrs = 105, 100, 103, 109.
		c, sd, vd := newMemCore(dir, ""+
			"LS SR1 SR0 0\n"+ // SR1 = 0, base for the VR2 offset load
			"LV VR2 SR1\n"+
			"LS SR3 SR0 1\n"+ // SR3 = VL
			"MTCL SR3\n"+
			"LS SR4 SR0 2\n"+ // SR4 = base for LVI
			"LVI VR3 SR4 VR2\n"+
			"HALT\n")
		Expect(sd.Write(0, bitvec.New(0))).To(Succeed())
		Expect(sd.Write(1, bitvec.New(4))).To(Succeed())
		Expect(sd.Write(2, bitvec.New(100))).To(Succeed())

		offsets := []int64{5, 0, 3, 9}
		for i, off := range offsets {
			Expect(vd.Write(i, bitvec.New(off))).To(Succeed())
		}
		markers := map[int]int64{105: 200, 100: 201, 103: 202, 109: 203}
		for addr, v := range markers {
			Expect(vd.Write(addr, bitvec.New(v))).To(Succeed())
		}

		Expect(c.Run()).To(Succeed())

		vals, err := c.VRF().Read(isa.Register{Kind: isa.Vector, Index: 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(vals[0].Signed()).To(Equal(int64(200)))
		Expect(vals[1].Signed()).To(Equal(int64(201)))
		Expect(vals[2].Signed()).To(Equal(int64(202)))
		Expect(vals[3].Signed()).To(Equal(int64(203)))
	})

	It("scatters to strided addresses for SVWS (stride != 1)", func() {
		// VR5 is loaded (plain LV) with [111, 222, 333, 444].
		// SR2=storeBase(50), SR3=stride(7): addrs = 50, 57, 64, 71.
		c, sd, vd := newMemCore(dir, ""+
			"LS SR1 SR0 0\n"+ // SR1 = 0, base for the VR5 data load
			"LV VR5 SR1\n"+
			"LS SR4 SR0 1\n"+ // SR4 = VL
			"MTCL SR4\n"+
			"LS SR2 SR0 2\n"+ // SR2 = store base
			"LS SR3 SR0 3\n"+ // SR3 = stride
			"SVWS VR5 SR2 SR3\n"+
			"HALT\n")
		Expect(sd.Write(0, bitvec.New(0))).To(Succeed())
		Expect(sd.Write(1, bitvec.New(4))).To(Succeed())
		Expect(sd.Write(2, bitvec.New(50))).To(Succeed())
		Expect(sd.Write(3, bitvec.New(7))).To(Succeed())
		for i, v := range []int64{111, 222, 333, 444} {
			Expect(vd.Write(i, bitvec.New(v))).To(Succeed())
		}

		Expect(c.Run()).To(Succeed())

		for i, addr := range []int{50, 57, 64, 71} {
			v, err := vd.Read(addr)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.Signed()).To(Equal([]int64{111, 222, 333, 444}[i]))
		}
		// A naive stride-1 write would have touched address 51.
		unwritten, err := vd.Read(51)
		Expect(err).NotTo(HaveOccurred())
		Expect(unwritten.Signed()).To(Equal(int64(0)))
	})

	It("scatters to register-indexed addresses for SVI (non-identity index)", func() {
		// VR6 data = [10, 20, 30, 40]; VR7 offsets = [6, 1, 4, 2].
		// SR2=storeBase(80): addrs = 86, 81, 84, 82.
		c, sd, vd := newMemCore(dir, ""+
			"LS SR1 SR0 0\n"+ // SR1 = 0, base for the VR6 data load
			"LV VR6 SR1\n"+
			"LS SR5 SR0 1\n"+ // SR5 = 10, base for the VR7 offset load
			"LV VR7 SR5\n"+
			"LS SR4 SR0 2\n"+ // SR4 = VL
			"MTCL SR4\n"+
			"LS SR2 SR0 3\n"+ // SR2 = store base
			"SVI VR6 SR2 VR7\n"+
			"HALT\n")
		Expect(sd.Write(0, bitvec.New(0))).To(Succeed())
		Expect(sd.Write(1, bitvec.New(10))).To(Succeed())
		Expect(sd.Write(2, bitvec.New(4))).To(Succeed())
		Expect(sd.Write(3, bitvec.New(80))).To(Succeed())
		for i, v := range []int64{10, 20, 30, 40} {
			Expect(vd.Write(i, bitvec.New(v))).To(Succeed())
		}
		for i, off := range []int64{6, 1, 4, 2} {
			Expect(vd.Write(10+i, bitvec.New(off))).To(Succeed())
		}

		Expect(c.Run()).To(Succeed())

		expected := map[int]int64{86: 10, 81: 20, 84: 30, 82: 40}
		for addr, want := range expected {
			v, err := vd.Read(addr)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.Signed()).To(Equal(want))
		}
		// A naive stride-1 write would have touched address 83.
		unwritten, err := vd.Read(83)
		Expect(err).NotTo(HaveOccurred())
		Expect(unwritten.Signed()).To(Equal(int64(0)))
	})
})
