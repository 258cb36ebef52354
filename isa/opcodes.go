package isa

// MVL is the maximum vector length.
const MVL = 64

// Opcode sets used by both the functional core (to pick a handler) and the
// timing core (to classify an instruction for dispatch and scoreboarding).
// Grounded on timing_sim/core.py's VEC_DATA_OPS/VEC_COMPUTE_OPS/... module
// constants.
var (
	ScalarALUOps = set("ADD", "SUB", "AND", "OR", "XOR", "SLL", "SRL", "SRA")

	VectorVectorALUOps = set("ADDVV", "SUBVV", "MULVV", "DIVVV")
	VectorScalarALUOps = set("ADDVS", "SUBVS", "MULVS", "DIVVS")

	VectorDataOps = set("LV", "LVWS", "LVI", "SV", "SVWS", "SVI")

	BranchOps = set("BEQ", "BNE", "BGT", "BLT", "BGE", "BLE")

	VectorCompareVVOps = set("SEQVV", "SNEVV", "SGTVV", "SLTVV", "SGEVV", "SLEVV")
	VectorCompareVSOps = set("SEQVS", "SNEVS", "SGTVS", "SLTVS", "SGEVS", "SLEVS")

	// VMRScalarOps are the non-vector opcodes that read or write VMR.
	VMRScalarOps = set("CVM", "POP")
	// VLRScalarOps are the non-vector opcodes that read or write VLR.
	VLRScalarOps = set("MTCL", "MFCL")

	// ScalarDstOps are the opcodes whose only scoreboard-relevant write is
	// to a scalar destination register (ops[0]).
	ScalarDstOps = set("ADD", "SUB", "AND", "OR", "XOR", "LS", "SLL", "SRL", "SRA", "MFCL", "POP")
)

// VectorComputeOps is every vector-vector/vector-scalar arithmetic and
// compare-to-mask opcode — the set routed to the vector-compute dispatch
// queue.
var VectorComputeOps = union(VectorVectorALUOps, VectorScalarALUOps, VectorCompareVVOps, VectorCompareVSOps)

// VectorOps is every opcode that reads or writes a vector register or
// operates vector-wide (data + compute).
var VectorOps = union(VectorDataOps, VectorComputeOps)

// VectorCompareOps is every compare-to-mask opcode (VV and VS forms).
var VectorCompareOps = union(VectorCompareVVOps, VectorCompareVSOps)

func set(opcodes ...string) map[string]bool {
	m := make(map[string]bool, len(opcodes))
	for _, op := range opcodes {
		m[op] = true
	}
	return m
}

func union(sets ...map[string]bool) map[string]bool {
	m := make(map[string]bool)
	for _, s := range sets {
		for k := range s {
			m[k] = true
		}
	}
	return m
}
