// Command stm32crc prints the STM32 hardware CRC32 of a file, in decimal
// and hexadecimal form.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goforj/godump"
	"github.com/schollz/progressbar/v3"

	"github.com/gawen/stm32crc"
)

func main() {
	dumpTable := flag.Bool("table", false, "dump the lookup table instead of checksumming a file")
	tableBits := flag.Uint("bits", 8, "lookup table index width in bits")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if *dumpTable {
		table, err := stm32crc.MakeTable(*tableBits)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		godump.Dump(table)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-table] [-bits n] [-v] <file>\n", os.Args[0])
		os.Exit(2)
	}

	crc, err := checksumFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("%d or 0x%x\n", crc, crc)
}

func checksumFile(path string) (uint32, error) {
	log := slog.Default()
	log.Debug("checksumming", "path", path)

	fh, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("unable to open '%s': %w", path, err)
	}
	defer fh.Close()

	st, err := fh.Stat()
	if err != nil {
		return 0, fmt.Errorf("unable to stat '%s': %w", path, err)
	}

	bar := progressbar.DefaultBytes(st.Size(), "reading "+path)
	defer bar.Close()
	barReader := progressbar.NewReader(fh, bar)

	// The final partial word folds pad bytes, so the checksum cannot be
	// streamed chunk-wise unless every chunk is word-aligned. Read it all.
	buf, err := io.ReadAll(&barReader)
	if err != nil {
		return 0, fmt.Errorf("unable to read '%s': %w", path, err)
	}
	log.Debug("read", "size", len(buf))

	return stm32crc.Checksum(buf), nil
}
