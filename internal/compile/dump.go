package compile

import (
	"fmt"
	"strings"
)

// Dump returns a readable listing of code, one instruction per line, with
// section bodies indented.
func Dump(code []ByteCode) string {
	var b strings.Builder
	indent := 0
	for _, ins := range code {
		if ins.Op == EndMakeSection && indent > 0 {
			indent--
		}
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("    ", indent), ins)
		if ins.Op == MakeSection {
			indent++
		}
	}
	return b.String()
}
