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
package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/moseschmiedel/masm/pkg/asm"
)

var asmDebug bool
var asmOutput string

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "Assemble a source file into a hex word stream",
	Long: `Asm translates one assembly source file into the binary word stream
for the 20-bit CPU and writes it as a text file of 5-digit hex words,
eight per line. The output file name is the source file name with its
extension replaced by .hex unless -o is given.

Labels are lines ending in ':'. Instruction lines are indented and may
carry a comment from ';' to end of line. Every program is terminated by
a hlt instruction; one is appended if the source does not end in one.
`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log.SetFlags(log.Lmsgprefix)
		log.SetPrefix("masm: ")

		prog, err := asm.Assemble(args[0])
		if err != nil {
			log.Fatal(err)
		}
		if asmDebug {
			pp.Println(prog.IR)
		}

		out := asmOutput
		if out == "" {
			out = hexName(args[0])
		}
		f, err := os.Create(out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := asm.WriteResults(prog, f); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d words to %s\n", len(prog.Words), out)
	},
}

// hexName replaces the extension of the source file with .hex.
func hexName(source string) string {
	if i := strings.LastIndexByte(source, '.'); i > 0 {
		return source[:i] + ".hex"
	}
	return source + ".hex"
}

func init() {
	rootCmd.AddCommand(asmCmd)
	asmCmd.Flags().BoolVar(&asmDebug, "debug", false, "dump the intermediate representation")
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "", "output file path")
}
