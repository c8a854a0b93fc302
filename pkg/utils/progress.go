package utils

import (
	"fmt"
	"io"
	"strings"
)

type ProgressCallback func(section string, current int, total int, description string)

// ProgressPrinter returns a ProgressCallback drawing a single-line bar on w.
func ProgressPrinter(w io.Writer) ProgressCallback {
	return func(section string, current int, total int, description string) {
		fmt.Fprint(w, FormatProgress(section, current, total, description))
		if current >= total {
			fmt.Fprintln(w)
		}
	}
}

func FormatProgress(section string, current int, total int, description string) string {
	nbBlocks := 50

	if total <= 0 {
		total = 1
	}
	current = max(0, min(current, total))

	blocks := current * nbBlocks / total
	percentage := current * 100 / total

	return fmt.Sprintf("\r%s [%s%s] %d%% (%d/%d) | %s",
		section,
		strings.Repeat("=", blocks),
		strings.Repeat(" ", nbBlocks-blocks),
		percentage,
		current,
		total,
		description)
}
