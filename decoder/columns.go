package decoder

import (
	"path/filepath"
	"strings"
)

// Column is a requested column resolved to its header position.
type Column struct {
	Index int
	Name  string
}

// ColumnSelection is the ordered set of columns a run transforms.
type ColumnSelection []Column

// Names returns the column names in selection order.
func (s ColumnSelection) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// ResolveColumns maps each requested name to the index of its first match in
// header. Names requested more than once resolve to a single column. The
// second return value lists the names that have no match.
func ResolveColumns(header Row, names []string) (ColumnSelection, []string) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	var selection ColumnSelection
	var missing []string
	seen := make(map[int]bool, len(names))
	for _, name := range names {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		selection = append(selection, Column{Index: i, Name: name})
	}
	return selection, missing
}

// OutputPath derives the decoded file name for input: the same directory,
// with a trailing ".csv" replaced by "_opts.csv".
func OutputPath(input string) string {
	return derivePath(input, "_opts")
}

func derivePath(input, suffix string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	if stem := strings.TrimSuffix(base, ".csv"); stem != "" {
		base = stem
	}
	return filepath.Join(dir, base+suffix+".csv")
}
