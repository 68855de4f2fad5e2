// models/list_options.go
package models

// ListOptions holds the optional pagination query of GET /games.
// A nil field means "not given".
type ListOptions struct {
	Offset *int
	Limit  *int
}

// Window returns the [start, end) bounds of the page inside a sequence of
// length n. Offsets past the end yield an empty window.
func (o ListOptions) Window(n int) (int, int) {
	start := 0
	if o.Offset != nil {
		start = *o.Offset
	}
	if start > n {
		start = n
	}

	end := n
	if o.Limit != nil && *o.Limit < n-start {
		end = start + *o.Limit
	}
	return start, end
}
