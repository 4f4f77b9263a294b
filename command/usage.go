// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/kr/text"
)

// maxLineLength is the maximum width of any line.
const maxLineLength int = 72

// Usage renders a command's usage slug followed by the help text of every
// flag in the set, wrapped to a consistent width.
func Usage(txt string, flags *flag.FlagSet) string {
	out := new(bytes.Buffer)

	// Write out the usage slug.
	out.WriteString(strings.TrimSpace(txt))
	out.WriteString("\n")
	out.WriteString("\n")

	if flags != nil {
		_, _ = fmt.Fprintf(out, "Command Options\n\n")

		flags.VisitAll(func(f *flag.Flag) {
			_, _ = fmt.Fprintf(out, "  -%s\n", f.Name)

			indented := wrapAtLength(f.Usage, 5)
			_, _ = fmt.Fprintf(out, "%s\n\n", indented)
		})
	}

	return strings.TrimRight(out.String(), "\n")
}

// wrapAtLength wraps the given text at the maxLineLength, taking into account
// any provided left padding.
func wrapAtLength(s string, pad int) string {
	wrapped := text.Wrap(s, maxLineLength-pad)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(lines, "\n")
}
