// Package cpu implements the processor core and assembler for minirisc.
//
// The processor has a program counter, thirty-two 32-bit registers (x0
// always reads as zero), and executes fixed 32-bit instructions fetched
// from a memory bus. Loads and stores go through the same bus, which
// also routes the memory mapped output device.
//
// The assembler provides a text assembly language for the minirisc
// instruction set, supporting macros, labels, equates, and compile-time
// expression evaluation.
package cpu
