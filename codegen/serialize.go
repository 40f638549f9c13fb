package codegen

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// serialize concatenates any accumulated top-level instructions, the
// .data section (strings then globals), the .text section with main
// first, and a provenance comment header. It fails if no main function
// was emitted.
func (g *Generator) serialize() (string, error) {
	if _, ok := g.funcText["main"]; !ok {
		return "", errors.New("codegen: program has no main function")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# simplec output, generated %s\n", time.Now().UTC().Format(time.RFC3339)))

	if g.topText.Len() > 0 {
		sb.WriteString(g.topText.String())
	}

	sb.WriteString(".data\n")
	for _, label := range g.syms.StringLabels() {
		sb.WriteString(fmt.Sprintf("%s: .asciiz %s\n", label, g.syms.Strings()[label]))
	}
	for _, name := range g.syms.GlobalNames() {
		gl := g.syms.Global(name)
		sb.WriteString(fmt.Sprintf("%s: .word %s\n", name, gl.Init))
	}

	sb.WriteString(".text\n")
	sb.WriteString(g.funcText["main"])
	for _, name := range g.funcOrder {
		if name == "main" {
			continue
		}
		sb.WriteString(g.funcText[name])
	}

	return sb.String(), nil
}
