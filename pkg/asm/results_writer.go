/*
Copyright © 2023 Moses Schmiedel

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package asm

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// Whether to dump the label table to the screen.
// For now, yes. Maybe make this a command line option someday.
const dumpLabels = true

const wordsPerLine = 8

// WriteResults writes the word stream of a successful run as text,
// one 5-digit hex word per word, wordsPerLine per line. The label
// table is optionally dumped to the screen.
func WriteResults(prog *Program, out io.Writer) error {
	if dumpLabels {
		writeLabels(prog.IR)
	}

	w := bufio.NewWriter(out)
	for i, word := range prog.Words {
		if _, err := w.WriteString(word.String()); err != nil {
			return err
		}
		if (i+1)%wordsPerLine == 0 || i == len(prog.Words)-1 {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		} else {
			if err := w.WriteByte(' '); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

func writeLabels(ir *IR) {
	defs := make([]LabelDef, 0, len(ir.Labels))
	for _, def := range ir.Labels {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Addr < defs[j].Addr })

	fmt.Println()
	fmt.Printf("%-16s %s\n", "LABEL", "ADDR")
	for _, def := range defs {
		fmt.Printf("%-16s 0x%04X\n", def.Name, def.Addr)
	}
}
