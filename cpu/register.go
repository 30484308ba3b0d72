package cpu

import (
	"strconv"
	"strings"
)

// Registers with a fixed calling convention role.
const (
	REG_ZERO  = 0  // Hardwired zero.
	REG_RA    = 1  // Return address.
	REG_SP    = 2  // Stack pointer.
	REG_A0    = 10 // First argument and return value.
	REG_A1    = 11
	REG_COUNT = 32
)

var registerAbi = [REG_COUNT]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// RegisterName returns the calling convention name of a register.
func RegisterName(r int) string {
	if r < 0 || r >= REG_COUNT {
		return "x?"
	}
	return registerAbi[r]
}

// ParseRegister accepts 'xN' names, calling convention names, and 'fp'.
func ParseRegister(name string) (r int, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	if name == "fp" {
		return 8, true
	}

	if num, found := strings.CutPrefix(name, "x"); found {
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 || n >= REG_COUNT || num != strconv.Itoa(n) {
			return
		}
		return n, true
	}

	for n, abi := range registerAbi {
		if abi == name {
			return n, true
		}
	}

	return
}
