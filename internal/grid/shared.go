package grid

// Shared is the scope handed to every user callback: an opaque application
// context plus the grid and column APIs.
type Shared struct {
	Context   any
	API       API
	ColumnAPI ColumnAPI
}

// API is the subset of grid operations callbacks may use.
type API interface {
	// FlashCells runs the highlight animation on cells.
	FlashCells(cells ...CellIdentity)
	// RefreshRow re-renders every cell of row.
	RefreshRow(row *RowNode)
}

// ColumnAPI gives callbacks read access to the columns.
type ColumnAPI interface {
	Column(id string) (*Column, bool)
	Columns() []*Column
}
