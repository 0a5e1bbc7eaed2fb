package folder

import (
	"slices"
	"strings"
)

// SortField selects the primary ordering key.
type SortField int

const (
	SortName SortField = iota
	SortModified
	SortCreated
	SortSize
	SortType
)

func (f SortField) String() string {
	switch f {
	case SortModified:
		return "modified"
	case SortCreated:
		return "created"
	case SortSize:
		return "size"
	case SortType:
		return "type"
	default:
		return "name"
	}
}

// ParseSortField maps configuration values onto a SortField, defaulting to name.
func ParseSortField(value string) SortField {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "date", "modified", "date-modified", "datemodified", "mtime":
		return SortModified
	case "created", "date-created", "datecreated", "ctime", "birth":
		return SortCreated
	case "size":
		return SortSize
	case "type", "ext", "extension":
		return SortType
	default:
		return SortName
	}
}

// SortPolicy orders entries. FoldersFirst is applied before the primary key
// and Descending only negates the primary key; equal keys always fall back to
// an ascending case-insensitive name comparison.
type SortPolicy struct {
	Field        SortField
	Descending   bool
	FoldersFirst bool
}

// Compare returns a negative, zero or positive value like strings.Compare.
func (p SortPolicy) Compare(a, b Entry) int {
	if p.FoldersFirst && a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	var res int
	switch p.Field {
	case SortModified:
		res = a.Modified.Compare(b.Modified)
	case SortCreated:
		res = a.Created.Compare(b.Created)
	case SortSize:
		switch {
		case a.Size < b.Size:
			res = -1
		case a.Size > b.Size:
			res = 1
		}
	case SortType:
		res = foldCompare(a.Ext(), b.Ext())
	default:
		res = foldCompare(a.Name, b.Name)
	}
	if p.Descending {
		res = -res
	}
	if res == 0 {
		res = foldCompare(a.Name, b.Name)
	}
	return res
}

// Sort orders entries in place.
func (p SortPolicy) Sort(entries []Entry) {
	slices.SortStableFunc(entries, p.Compare)
}

func foldCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
