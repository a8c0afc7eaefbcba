package value

import (
	"encoding/json"
	"testing"

	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

type recordData struct {
	fields map[string]any
}

func (r *recordData) Field(path string) (any, bool) {
	v, ok := r.fields[path]
	return v, ok
}

func (r *recordData) SetField(path string, value any) error {
	r.fields[path] = value
	return nil
}

func TestField(t *testing.T) {
	nested := map[string]any{
		"name":  "Widget",
		"stock": map[string]any{"qty": 7},
	}
	raw := json.RawMessage(`{"name":"Gadget","stock":{"qty":3},"tags":["a","b"]}`)

	tests := []struct {
		name   string
		data   any
		path   string
		want   any
		wantOK bool
	}{
		{"map top level", nested, "name", "Widget", true},
		{"map nested", nested, "stock.qty", 7, true},
		{"map missing", nested, "stock.missing", nil, false},
		{"map through scalar", nested, "name.first", nil, false},
		{"json top level", raw, "name", "Gadget", true},
		{"json nested", raw, "stock.qty", float64(3), true},
		{"json array index", raw, "tags.1", "b", true},
		{"json missing", raw, "price", nil, false},
		{"bytes", []byte(`{"a":true}`), "a", true, true},
		{"accessor", &recordData{fields: map[string]any{"x": 1}}, "x", 1, true},
		{"nil data", nil, "name", nil, false},
		{"empty path", nested, "", nil, false},
		{"unsupported", 42, "name", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Field(tt.data, tt.path)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Field() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSetField(t *testing.T) {
	t.Run("map creates intermediate maps", func(t *testing.T) {
		m := map[string]any{}
		out, err := SetField(m, "stock.qty", 9)
		if err != nil {
			t.Fatalf("SetField() error = %v", err)
		}
		if v, _ := Field(out, "stock.qty"); v != 9 {
			t.Errorf("stock.qty = %v, want 9", v)
		}
	})

	t.Run("raw json returns a new document", func(t *testing.T) {
		raw := json.RawMessage(`{"name":"Gadget"}`)
		out, err := SetField(raw, "name", "Sprocket")
		if err != nil {
			t.Fatalf("SetField() error = %v", err)
		}
		if _, ok := out.(json.RawMessage); !ok {
			t.Fatalf("SetField() returned %T, want json.RawMessage", out)
		}
		if v, _ := Field(out, "name"); v != "Sprocket" {
			t.Errorf("name = %v", v)
		}
		if v, _ := Field(raw, "name"); v != "Gadget" {
			t.Errorf("original document was modified: %v", v)
		}
	})

	t.Run("unsupported data", func(t *testing.T) {
		if _, err := SetField("plain", "a", 1); !errors.Is(err, errors.ErrInvalidRowData) {
			t.Errorf("SetField() error = %v, want ErrInvalidRowData", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := SetField(map[string]any{}, "", 1); !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("SetField() error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestService_GetValue(t *testing.T) {
	svc := NewService(nil, grid.Shared{Context: "ctx"})
	row := grid.NewRowNode("r1", 0, map[string]any{"price": 2.5, "qty": 4})

	t.Run("field", func(t *testing.T) {
		col := grid.NewColumn(&grid.ColDef{Field: "price"})
		if got := svc.GetValue(col, row.Data, row); got != 2.5 {
			t.Errorf("GetValue() = %v", got)
		}
	})

	t.Run("value getter", func(t *testing.T) {
		col := grid.NewColumn(&grid.ColDef{ColID: "total", ValueGetter: func(p grid.ValueGetterParams) any {
			if p.Context != "ctx" {
				t.Errorf("getter context = %v", p.Context)
			}
			return p.GetValue("price").(float64) * float64(p.GetValue("qty").(int))
		}})
		if got := svc.GetValue(col, row.Data, row); got != 10.0 {
			t.Errorf("GetValue() = %v", got)
		}
	})

	t.Run("no field", func(t *testing.T) {
		col := grid.NewColumn(&grid.ColDef{ColID: "blank"})
		if got := svc.GetValue(col, row.Data, row); got != nil {
			t.Errorf("GetValue() = %v, want nil", got)
		}
	})
}

func TestService_SetValue(t *testing.T) {
	bus := event.NewBus()
	svc := NewService(bus, grid.Shared{})

	var published []grid.CellValueChangedParams
	bus.Subscribe(grid.EventCellValueChanged, func(e event.Event) {
		published = append(published, e.(grid.CellValueChangedEvent).Params)
	})

	t.Run("field write on raw json", func(t *testing.T) {
		published = nil
		var callback grid.CellValueChangedParams
		col := grid.NewColumn(&grid.ColDef{Field: "qty", OnCellValueChanged: func(p grid.CellValueChangedParams) {
			callback = p
		}})
		row := grid.NewRowNode("r1", 0, json.RawMessage(`{"qty":1}`))

		if err := svc.SetValue(row, col, 5); err != nil {
			t.Fatalf("SetValue() error = %v", err)
		}
		if v, _ := Field(row.Data, "qty"); v != float64(5) {
			t.Errorf("row qty = %v", v)
		}
		if callback.OldValue != float64(1) || callback.NewValue != float64(5) {
			t.Errorf("callback params = %+v", callback)
		}
		if len(published) != 1 {
			t.Fatalf("published %d events, want 1", len(published))
		}
	})

	t.Run("new value handler replaces the field write", func(t *testing.T) {
		data := map[string]any{"qty": 1}
		col := grid.NewColumn(&grid.ColDef{Field: "qty", NewValueHandler: func(p grid.NewValueParams) bool {
			p.Data.(map[string]any)["qty"] = p.NewValue.(int) * 10
			return true
		}})
		row := grid.NewRowNode("r2", 0, data)

		if err := svc.SetValue(row, col, 3); err != nil {
			t.Fatalf("SetValue() error = %v", err)
		}
		if data["qty"] != 30 {
			t.Errorf("qty = %v, want 30", data["qty"])
		}
	})

	t.Run("column without field", func(t *testing.T) {
		published = nil
		col := grid.NewColumn(&grid.ColDef{ColID: "calc"})
		row := grid.NewRowNode("r3", 0, map[string]any{})

		err := svc.SetValue(row, col, 1)
		var cellErr *errors.CellError
		if !errors.As(err, &cellErr) || cellErr.Column != "calc" {
			t.Errorf("SetValue() error = %v, want a CellError for calc", err)
		}
		if got := errors.GetSeverity(err); got != errors.SeverityWarning {
			t.Errorf("severity = %v, want warning for a definition problem", got)
		}
		if len(published) != 0 {
			t.Error("a failed write must not publish")
		}
	})
}

func TestDataForRow(t *testing.T) {
	data := map[string]any{"a": 1}

	tests := []struct {
		name    string
		row     grid.RowNode
		opts    grid.Options
		wantNil bool
	}{
		{"plain row", grid.RowNode{Data: data}, grid.Options{GroupIncludeFooter: true}, false},
		{"footer row", grid.RowNode{Data: data, Group: true, Footer: true, Expanded: true}, grid.Options{GroupIncludeFooter: true}, false},
		{"expanded group with footers", grid.RowNode{Data: data, Group: true, Expanded: true}, grid.Options{GroupIncludeFooter: true}, true},
		{"expanded group, blank header suppressed", grid.RowNode{Data: data, Group: true, Expanded: true}, grid.Options{GroupIncludeFooter: true, GroupSuppressBlankHeader: true}, false},
		{"collapsed group", grid.RowNode{Data: data, Group: true}, grid.Options{GroupIncludeFooter: true}, false},
		{"expanded group without footers", grid.RowNode{Data: data, Group: true, Expanded: true}, grid.Options{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DataForRow(&tt.row, &tt.opts)
			if (got == nil) != tt.wantNil {
				t.Errorf("DataForRow() = %v, wantNil %v", got, tt.wantNil)
			}
		})
	}
}
