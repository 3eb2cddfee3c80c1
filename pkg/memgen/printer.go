package memgen

import (
	"encoding/hex"
	"fmt"
	"io"
)

// Printer outputs an image's layout, initializer program and memory.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new image printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintImage prints the globals table, the initializer program and a hex
// dump of the statically allocated bytes as they currently stand.
func (p *Printer) PrintImage(img *Image) {
	p.PrintLayout(img)
	fmt.Fprintln(p.w)
	p.PrintProgram(img)
	fmt.Fprintln(p.w)
	p.PrintMemory(img)
}

// PrintLayout prints one line per global: address, size, type key, name.
func (p *Printer) PrintLayout(img *Image) {
	fmt.Fprintf(p.w, "// globals (%d bytes)\n", img.StaticAllocationSize)
	for _, d := range img.Decls {
		fmt.Fprintf(p.w, "0x%04x %2d %-20s %s\n", d.Address, d.Size, d.Key, d.Name)
	}
}

// PrintProgram prints the initializer instructions in execution order.
func (p *Printer) PrintProgram(img *Image) {
	fmt.Fprintln(p.w, "// initializer")
	for _, in := range img.Program {
		fmt.Fprintln(p.w, in)
	}
}

// PrintMemory hex dumps the used prefix of memory.
func (p *Printer) PrintMemory(img *Image) {
	fmt.Fprintln(p.w, "// memory")
	fmt.Fprint(p.w, hex.Dump(img.Used()))
}
