package trace_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmipssim/isa"
	"github.com/sarchlab/vmipssim/trace"
)

func TestTrace(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Trace Suite")
}

var _ = Describe("Writer", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "trace.txt")
	})

	It("writes an unannotated instruction bare", func() {
		w, err := trace.NewWriter(path)
		Expect(err).NotTo(HaveOccurred())

		ins := isa.Instruction{
			Opcode: "ADD",
			Ops: []isa.Operand{
				isa.NewRegOperand(isa.Register{Kind: isa.Scalar, Index: 3}),
				isa.NewRegOperand(isa.Register{Kind: isa.Scalar, Index: 1}),
				isa.NewRegOperand(isa.Register{Kind: isa.Scalar, Index: 2}),
			},
		}
		Expect(w.Write(ins)).To(Succeed())
		Expect(w.Close()).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("ADD SR3 SR1 SR2\n"))
	})

	It("writes a scalar annotation bare inside parens", func() {
		w, err := trace.NewWriter(path)
		Expect(err).NotTo(HaveOccurred())

		ins := isa.Instruction{
			Opcode:     "MTCL",
			Ops:        []isa.Operand{isa.NewRegOperand(isa.Register{Kind: isa.Scalar, Index: 4})},
			Annotation: isa.ScalarAnnotation(16),
		}
		Expect(w.Write(ins)).To(Succeed())
		Expect(w.Close()).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("MTCL SR4 (16)\n"))
	})

	It("comma-joins a vector annotation", func() {
		w, err := trace.NewWriter(path)
		Expect(err).NotTo(HaveOccurred())

		ins := isa.Instruction{
			Opcode:     "LV",
			Ops:        []isa.Operand{isa.NewRegOperand(isa.Register{Kind: isa.Vector, Index: 1}), isa.NewRegOperand(isa.Register{Kind: isa.Scalar, Index: 1})},
			Annotation: isa.VectorAnnotation([]int64{4, 5, 6}),
		}
		Expect(w.Write(ins)).To(Succeed())
		Expect(w.Close()).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("LV VR1 SR1 (4,5,6)\n"))
	})
})

var _ = Describe("Reader", func() {
	It("round-trips what Writer produced, stripping annotations", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "trace.txt")
		Expect(os.WriteFile(path, []byte("ADD SR3 SR1 SR2\nMTCL SR4 (16)\nHALT\n"), 0o644)).To(Succeed())

		r, err := trace.NewReader(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Len()).To(Equal(3))

		ins := r.Read(0)
		Expect(ins.Opcode).To(Equal("ADD"))
		Expect(ins.NumOps()).To(Equal(3))

		ins = r.Read(1)
		Expect(ins.Opcode).To(Equal("MTCL"))
		Expect(ins.NumOps()).To(Equal(1))
	})

	It("returns a synthetic HALT past the recorded trace", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "trace.txt")
		Expect(os.WriteFile(path, []byte("HALT\n"), 0o644)).To(Succeed())

		r, err := trace.NewReader(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Read(50).Opcode).To(Equal("HALT"))
	})

	It("ignores comments and blank lines", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "trace.txt")
		Expect(os.WriteFile(path, []byte("# header\n\nADD SR1 SR2 SR3\n"), 0o644)).To(Succeed())

		r, err := trace.NewReader(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Len()).To(Equal(1))
	})
})
