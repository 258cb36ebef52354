package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmipssim/timing/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

const validConfig = `
# pipeline shape
dataQueueDepth = 4
computeQueueDepth = 4
numLanes = 2
pipelineDepthMul = 3
pipelineDepthDiv = 5
pipelineDepthAdd = 1
vlsPipelineDepth = 2

vdmNumBanks = 4
vdmBankWait = 2
`

var _ = Describe("LoadConfig", func() {
	It("parses every required key", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "config.txt")
		Expect(os.WriteFile(path, []byte(validConfig), 0o644)).To(Succeed())

		c, err := config.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.DataQueueDepth).To(Equal(4))
		Expect(c.NumLanes).To(Equal(2))
		Expect(c.PipelineDepthDiv).To(Equal(5))
		Expect(c.VDMBankWait).To(Equal(2))
	})

	It("fails on a missing required key", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "config.txt")
		Expect(os.WriteFile(path, []byte("dataQueueDepth = 4\n"), 0o644)).To(Succeed())

		_, err := config.LoadConfig(path)
		Expect(err).To(HaveOccurred())
	})

	It("fails on a non-positive value", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "config.txt")
		bad := validConfig + "\nnumLanes = 0\n"
		Expect(os.WriteFile(path, []byte(bad), 0o644)).To(Succeed())

		_, err := config.LoadConfig(path)
		Expect(err).To(HaveOccurred())
	})

	It("fails on an unrecognized key", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "config.txt")
		bad := validConfig + "\nbogusKey = 1\n"
		Expect(os.WriteFile(path, []byte(bad), 0o644)).To(Succeed())

		_, err := config.LoadConfig(path)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Clone", func() {
	It("returns an independent copy", func() {
		c := &config.Config{NumLanes: 2}
		clone := c.Clone()
		clone.NumLanes = 4
		Expect(c.NumLanes).To(Equal(2))
	})
})
