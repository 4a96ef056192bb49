package document

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/tliron/commonlog"
)

// LineDiff computes a line-level diff between two contents.
func LineDiff(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, table)
}

// DiffStats counts the lines added and removed between two contents.
func DiffStats(before, after string) (added, removed int) {
	for _, d := range LineDiff(before, after) {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}
	return added, removed
}

// RenderDiff formats the changed lines between two contents, prefixing
// insertions with "+" and deletions with "-". Unchanged lines are omitted.
func RenderDiff(before, after string) string {
	var b strings.Builder
	for _, d := range LineDiff(before, after) {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			continue
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			b.WriteString(prefix)
			b.WriteString(strings.TrimSuffix(l, "\n"))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

func (d *Document) logWrite(before, after string) {
	if !d.log.AllowLevel(commonlog.Info) {
		return
	}
	added, removed := DiffStats(before, after)
	d.log.Infof("wrote %d byte(s): +%d -%d line(s)", len(after), added, removed)
	if d.log.AllowLevel(commonlog.Debug) {
		d.log.Debugf("diff:\n%s", RenderDiff(before, after))
	}
}
