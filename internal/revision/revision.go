// Package revision diffs a regenerated conclusion against the one it replaces.
package revision

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a diff-match-patch patch text turning previous into current.
// Both sides are normalized first so line-ending or trailing-space changes
// alone produce no diff. Identical texts return "".
func Diff(previous, current string) string {
	before := normalize(previous)
	after := normalize(current)
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.PatchToText(dmp.PatchMake(before, diffs))
}

// Stats counts inserted and deleted runes between previous and current.
func Stats(previous, current string) (inserted, deleted int) {
	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(normalize(previous), normalize(current), false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			deleted += len([]rune(d.Text))
		}
	}
	return inserted, deleted
}

// normalize trims trailing whitespace from each line and converts CRLF to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
