package lessongen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A fenced block opened with ```python.run, optionally followed by
// :height='N' and ,width='N%'.  The block must be closed by a fence.
var runnableBlockRe = regexp.MustCompile("(?s)```python\\.run(?::\\s*height='?(\\d+)'?)?(?:,width='?(\\d+)%?'?)?\\n(.*?)```")

// Empirical height of a trinket embed: 16.8px per source line plus 90px of chrome.
const (
	runnableLineHeight = 16.8
	runnableChrome     = 90
)

// ReplaceFunc produces the text that replaces a runnable block.
type ReplaceFunc func(code string, height float64) string

// RunnableHeight is the embed height used when a block has no explicit height.
func RunnableHeight(code string) float64 {
	lines := len(strings.Split(strings.TrimSuffix(code, "\n"), "\n"))
	return float64(lines)*runnableLineHeight + runnableChrome
}

// FormatHeight prints a height the way it appears in pages: 300, 140.4
func FormatHeight(height float64) string {
	return strconv.FormatFloat(height, 'f', -1, 64)
}

// ExtractRunnable rewrites every ```python.run block of markdown.
//
// With a replace callback each block becomes replace(code, height).  Without
// one the code of block n is recorded as "<baseName>_<n>.py" in the returned
// programs and the block becomes a trinket template call reading that file.
// Blocks are numbered from 1 in order of appearance; the counter is local to
// this call.
func ExtractRunnable(markdown, baseName string, replace ReplaceFunc) (string, map[string]string) {
	programs := map[string]string{}
	counter := 1

	out := runnableBlockRe.ReplaceAllStringFunc(markdown, func(block string) string {
		m := runnableBlockRe.FindStringSubmatch(block)
		code := m[3]

		var height float64
		if m[1] != "" {
			h, _ := strconv.Atoi(m[1])
			height = float64(h)
		} else {
			height = RunnableHeight(code)
		}

		var replacement string
		if replace != nil {
			replacement = replace(code, height)
		} else {
			progName := fmt.Sprintf("%s_%d.py", baseName, counter)
			programs[progName] = code
			replacement = fmt.Sprintf(`{{ trinket %q "100%%" %q "python" }}`, progName, FormatHeight(height))
		}
		counter++
		return replacement
	})
	return out, programs
}

// HasRunnable tells whether markdown contains at least one runnable block.
func HasRunnable(markdown string) bool {
	return runnableBlockRe.MatchString(markdown)
}
