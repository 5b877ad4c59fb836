package store

// Page describes one window of a paginated query. Number is zero-based, so
// page n covers rows [n*Size, n*Size+Size-1].
type Page struct {
	Number int
	Size   int
}

const DefaultPageSize = 20

func (p Page) Offset() int {
	if p.Number < 0 {
		return 0
	}
	return p.Number * p.limit()
}

func (p Page) Limit() int {
	return p.limit()
}

// End returns the index of the last row covered by the page.
func (p Page) End() int {
	return p.Offset() + p.limit() - 1
}

// HasMore reports whether rows exist past this page given an exact total.
func (p Page) HasMore(total int64) bool {
	return total > int64(p.End()+1)
}

func (p Page) limit() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}
