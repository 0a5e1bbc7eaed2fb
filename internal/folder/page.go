package folder

// HardCeiling caps a single page regardless of the configured page size.
const HardCeiling = 500

// Page returns the window of entries starting at offset. A pageSize <= 0
// means "everything remaining", still bounded by HardCeiling.
func Page(entries []Entry, offset, pageSize int) ([]Entry, bool) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) {
		return nil, false
	}
	if pageSize <= 0 || pageSize > HardCeiling {
		pageSize = HardCeiling
	}
	end := offset + pageSize
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end], end < len(entries)
}
