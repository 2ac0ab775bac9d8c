package srp

import (
	"bufio"
	"fmt"
	"io"
)

// DumpState writes the general registers four to a line, followed by the
// control registers.
func DumpState(w io.Writer, regs *RegisterFile) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < NumGeneralRegs; i++ {
		sep := " "
		if i%4 == 3 {
			sep = "\n"
		}
		fmt.Fprintf(bw, "%s=%08x%s", Reg(i), regs.slots[i], sep)
	}
	fmt.Fprintf(bw, "PSW=%08x,  SP=%08x,  PC=%08x\n", regs.PSW(), regs.SP(), regs.PC())
	return bw.Flush()
}
