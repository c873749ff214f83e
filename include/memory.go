/*
memory.go stack sizing

files combined from the original X86 version include:
memory.h
getstk.c

*/

package include

// MINSTK is the minimum stack size in bytes
const MINSTK uint32 = 400

// RoundMB function round(look up) x to the minimum memory block size, which is multiples of 8
// eg: 25 -> 32
//     41 -> 48
//     105 -> 112
//     305 -> 312
//     1001 -> 1008
func RoundMB(x uint32) uint32 {
	return (7 + x) & (^uint32(7))
}

// getstk function returns the stack size a process asking for nbytes gets:
// at least MINSTK, rounded up to a memory block
func getstk(nbytes uint32) uint32 {
	if nbytes < MINSTK {
		nbytes = MINSTK
	}
	return RoundMB(nbytes)
}
