// Package value resolves and writes back cell values.
package value

import (
	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Service reads cell values through column value getters or fields and
// writes edited values back to rows.
type Service struct {
	bus    *event.Bus
	shared grid.Shared
}

// NewService creates a value service publishing cell.value_changed on bus.
func NewService(bus *event.Bus, shared grid.Shared) *Service {
	return &Service{bus: bus, shared: shared}
}

// GetValue returns the value of column for row, reading from data rather
// than row.Data so that group rows can be blanked out by the caller.
func (s *Service) GetValue(column *grid.Column, data any, row *grid.RowNode) any {
	def := column.ColDef()
	if def.ValueGetter != nil {
		return def.ValueGetter(grid.ValueGetterParams{
			Node:   row,
			Data:   data,
			Column: column,
			ColDef: def,
			GetValue: func(field string) any {
				v, _ := Field(data, field)
				return v
			},
			Shared: s.shared,
		})
	}
	if def.Field == "" {
		return nil
	}
	v, _ := Field(data, def.Field)
	return v
}

// SetValue writes newValue to row. A column NewValueHandler takes over the
// write entirely; otherwise the column field is set. On success the column's
// OnCellValueChanged runs and cell.value_changed is published with the value
// read back from the row.
func (s *Service) SetValue(row *grid.RowNode, column *grid.Column, newValue any) error {
	def := column.ColDef()
	oldValue := s.GetValue(column, row.Data, row)

	if def.NewValueHandler != nil {
		def.NewValueHandler(grid.NewValueParams{
			Node:     row,
			Data:     row.Data,
			OldValue: oldValue,
			NewValue: newValue,
			Column:   column,
			ColDef:   def,
			Shared:   s.shared,
		})
	} else {
		if def.Field == "" {
			return errors.NewCellError("column has no field to write", errors.ErrInvalidInput).
				WithRow(row.ID).WithColumn(column.ID()).
				WithSeverity(errors.SeverityWarning)
		}
		data, err := SetField(row.Data, def.Field, newValue)
		if err != nil {
			return errors.NewCellError("write back failed", err).
				WithRow(row.ID).WithColumn(column.ID())
		}
		row.Data = data
	}

	params := grid.CellValueChangedParams{
		Node:     row,
		Data:     row.Data,
		OldValue: oldValue,
		NewValue: s.GetValue(column, row.Data, row),
		Column:   column,
		ColDef:   def,
		Shared:   s.shared,
	}
	if def.OnCellValueChanged != nil {
		def.OnCellValueChanged(params)
	}
	if s.bus != nil {
		s.bus.Publish(grid.CellValueChangedEvent{
			Base:   event.NewBase(grid.EventCellValueChanged),
			Params: params,
		})
	}
	return nil
}

// DataForRow returns the data a cell of row should display. Footer rows
// always show their data. An expanded group row shows nothing when group
// footers are on and the blank header is not suppressed, so the footer
// carries the aggregate instead.
func DataForRow(row *grid.RowNode, opts *grid.Options) any {
	if row.Footer {
		return row.Data
	}
	if row.Group && row.Expanded && opts.GroupIncludeFooter && !opts.GroupSuppressBlankHeader {
		return nil
	}
	return row.Data
}
