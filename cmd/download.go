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
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/moseschmiedel/masm/pkg/board"
)

var downloadDevice string
var downloadBaud int

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download hexFile",
	Short: "Download an assembled hex file to the CPU board",
	Long: `Download sends the word stream of an assembled hex file to the board
over a serial link and starts the program. The hex file is the output
of masm asm: 5-digit hex words separated by whitespace.
`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log.SetFlags(log.Lmsgprefix)
		log.SetPrefix("masm: ")

		words, err := readHex(args[0])
		if err != nil {
			log.Fatal(err)
		}

		b, err := board.Open(downloadDevice, downloadBaud)
		if err != nil {
			log.Fatal(err)
		}
		defer b.Close()

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		progress := func(done, total int) {
			if interactive {
				fmt.Printf("\r%d/%d words", done, total)
			}
		}
		if err := board.Download(b, words, progress); err != nil {
			if interactive {
				fmt.Println()
			}
			log.Fatal(err)
		}
		if interactive {
			fmt.Println()
		}
		log.Printf("downloaded %d words from %s\n", len(words), args[0])
	},
}

// readHex reads a hex file back into a word slice.
func readHex(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []uint32
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		w, err := strconv.ParseUint(sc.Text(), 16, 32)
		if err != nil || w > 0xFFFFF {
			return nil, fmt.Errorf("%s: invalid word %q", path, sc.Text())
		}
		words = append(words, uint32(w))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVar(&downloadDevice, "device", "/dev/ttyUSB0", "serial device of the board")
	downloadCmd.Flags().IntVar(&downloadBaud, "baud", 115200, "baud rate of the serial link")
}
