// Package dataset loads the rows and column definitions a grid displays.
//
// Rows files are YAML or JSON. The document is either a list of row objects
// or a mapping with "rows", "pinned_top" and "pinned_bottom" lists. JSON rows
// are kept as raw documents so that values are read and written with JSON
// paths; YAML rows become maps. Keys starting with an underscore describe
// the row rather than holding data:
//
//	_id        row id (defaults to the position in its section)
//	_group     the row is a group row
//	_footer    the group row is a footer
//	_expanded  the group is expanded
//	_selected  the row starts selected
//
// Column files are YAML lists of column definitions. Without one, columns
// are inferred from the keys of the first row.
package dataset

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Row meta keys.
const (
	KeyID       = "_id"
	KeyGroup    = "_group"
	KeyFooter   = "_footer"
	KeyExpanded = "_expanded"
	KeySelected = "_selected"
)

// Dataset is everything a grid displays.
type Dataset struct {
	Columns      []*grid.ColDef
	Rows         []*grid.RowNode
	PinnedTop    []*grid.RowNode
	PinnedBottom []*grid.RowNode
}

// RowCount returns the number of rows across all sections.
func (d *Dataset) RowCount() int {
	return len(d.PinnedTop) + len(d.Rows) + len(d.PinnedBottom)
}

// Loader reads datasets from a filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader over fs. A nil fs means the OS filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load reads rowsPath and, when columnsPath is not empty, the column file.
func (l *Loader) Load(rowsPath, columnsPath string) (*Dataset, error) {
	raw, err := afero.ReadFile(l.fs, rowsPath)
	if err != nil {
		return nil, errors.Wrap(err, "read rows")
	}

	var sections rawSections
	if isJSON(rowsPath, raw) {
		sections, err = parseJSONRows(raw)
	} else {
		sections, err = parseYAMLRows(raw)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", rowsPath)
	}

	ds := &Dataset{
		Rows:         buildRows(sections.rows, grid.FloatingNone),
		PinnedTop:    buildRows(sections.top, grid.FloatingTop),
		PinnedBottom: buildRows(sections.bottom, grid.FloatingBottom),
	}

	if columnsPath != "" {
		ds.Columns, err = l.LoadColumns(columnsPath)
		if err != nil {
			return nil, err
		}
	} else {
		ds.Columns = inferColumns(sections.keys)
	}
	if len(ds.Columns) == 0 {
		return nil, errors.NewValidationError("no columns").WithField(rowsPath)
	}
	return ds, nil
}

// LoadColumns reads a YAML list of column definitions. Every column needs
// an id or a field, and ids must be unique.
func (l *Loader) LoadColumns(path string) ([]*grid.ColDef, error) {
	raw, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "read columns")
	}
	var defs []*grid.ColDef
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	seen := make(map[string]bool, len(defs))
	for i, def := range defs {
		id := def.ID()
		if id == "" {
			return nil, errors.NewValidationError("column needs a col_id or field").
				WithField("columns[" + strconv.Itoa(i) + "]")
		}
		if seen[id] {
			return nil, errors.NewValidationError("duplicate column id").
				WithField("columns[" + strconv.Itoa(i) + "]").
				WithValue(id)
		}
		seen[id] = true
		if def.HeaderName == "" {
			def.HeaderName = headerFor(def.Field, id)
		}
	}
	return defs, nil
}

// -----------------------------------------------------------------------------
// Rows
// -----------------------------------------------------------------------------

type rawRow struct {
	data     any
	id       string
	group    bool
	footer   bool
	expanded bool
	selected bool
}

type rawSections struct {
	rows, top, bottom []rawRow
	// keys of the first data row, in document order
	keys []string
}

func isJSON(path string, raw []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return true
	case ".yaml", ".yml":
		return false
	}
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{')
}

func parseJSONRows(raw []byte) (rawSections, error) {
	if !gjson.ValidBytes(raw) {
		return rawSections{}, errors.NewValidationError("invalid JSON")
	}
	doc := gjson.ParseBytes(raw)

	var out rawSections
	var err error
	switch {
	case doc.IsArray():
		out.rows, err = jsonRowList(doc)
	case doc.IsObject():
		if out.rows, err = jsonRowList(doc.Get("rows")); err != nil {
			return out, err
		}
		if out.top, err = jsonRowList(doc.Get("pinned_top")); err != nil {
			return out, err
		}
		out.bottom, err = jsonRowList(doc.Get("pinned_bottom"))
	default:
		return out, errors.NewValidationError("expected a list of rows or a mapping of sections")
	}
	if err != nil {
		return out, err
	}

	if first, ok := firstData(out); ok {
		gjson.ParseBytes(first.([]byte)).ForEach(func(key, _ gjson.Result) bool {
			out.keys = append(out.keys, key.String())
			return true
		})
	}
	return out, nil
}

func jsonRowList(list gjson.Result) ([]rawRow, error) {
	if !list.Exists() {
		return nil, nil
	}
	if !list.IsArray() {
		return nil, errors.NewValidationError("rows must be a list")
	}
	var rows []rawRow
	var err error
	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			err = errors.NewValidationError("row must be an object").WithValue(item.Raw)
			return false
		}
		var row rawRow
		row, err = jsonRow([]byte(item.Raw))
		rows = append(rows, row)
		return err == nil
	})
	return rows, err
}

// jsonRow reads the meta keys of raw and strips them from the row data.
func jsonRow(raw []byte) (rawRow, error) {
	row := rawRow{
		id:       gjson.GetBytes(raw, KeyID).String(),
		group:    gjson.GetBytes(raw, KeyGroup).Bool(),
		footer:   gjson.GetBytes(raw, KeyFooter).Bool(),
		expanded: gjson.GetBytes(raw, KeyExpanded).Bool(),
		selected: gjson.GetBytes(raw, KeySelected).Bool(),
	}
	for _, key := range []string{KeyID, KeyGroup, KeyFooter, KeyExpanded, KeySelected} {
		if !gjson.GetBytes(raw, key).Exists() {
			continue
		}
		var err error
		if raw, err = sjson.DeleteBytes(raw, key); err != nil {
			return row, errors.Wrapf(err, "strip %s", key)
		}
	}
	row.data = raw
	return row, nil
}

func parseYAMLRows(raw []byte) (rawSections, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return rawSections{}, err
	}
	var out rawSections
	if len(doc.Content) == 0 {
		return out, nil
	}
	root := doc.Content[0]

	var err error
	switch root.Kind {
	case yaml.SequenceNode:
		out.rows, out.keys, err = yamlRowList(root)
	case yaml.MappingNode:
		keys := make(map[string][]string, 3)
		for i := 0; i+1 < len(root.Content) && err == nil; i += 2 {
			name, value := root.Content[i].Value, root.Content[i+1]
			switch name {
			case "rows":
				out.rows, keys[name], err = yamlRowList(value)
			case "pinned_top":
				out.top, keys[name], err = yamlRowList(value)
			case "pinned_bottom":
				out.bottom, keys[name], err = yamlRowList(value)
			default:
				err = errors.NewValidationError("unknown section").WithValue(name)
			}
		}
		for _, name := range []string{"rows", "pinned_top", "pinned_bottom"} {
			if len(keys[name]) > 0 {
				out.keys = keys[name]
				break
			}
		}
	default:
		err = errors.NewValidationError("expected a list of rows or a mapping of sections")
	}
	return out, err
}

// yamlRowList decodes a sequence of mappings and returns the keys of the
// first data row in document order.
func yamlRowList(list *yaml.Node) ([]rawRow, []string, error) {
	if list.Kind != yaml.SequenceNode {
		return nil, nil, errors.NewValidationError("rows must be a list").
			WithField("line " + strconv.Itoa(list.Line))
	}
	rows := make([]rawRow, 0, len(list.Content))
	var keys []string
	for _, item := range list.Content {
		if item.Kind != yaml.MappingNode {
			return nil, nil, errors.NewValidationError("row must be a mapping").
				WithField("line " + strconv.Itoa(item.Line))
		}
		var data map[string]any
		if err := item.Decode(&data); err != nil {
			return nil, nil, err
		}
		row := yamlRow(data)
		if keys == nil && !row.group {
			for i := 0; i < len(item.Content); i += 2 {
				keys = append(keys, item.Content[i].Value)
			}
		}
		rows = append(rows, row)
	}
	return rows, keys, nil
}

func yamlRow(data map[string]any) rawRow {
	row := rawRow{
		group:    cast.ToBool(data[KeyGroup]),
		footer:   cast.ToBool(data[KeyFooter]),
		expanded: cast.ToBool(data[KeyExpanded]),
		selected: cast.ToBool(data[KeySelected]),
	}
	if id, ok := data[KeyID]; ok {
		row.id = cast.ToString(id)
	}
	for _, key := range []string{KeyID, KeyGroup, KeyFooter, KeyExpanded, KeySelected} {
		delete(data, key)
	}
	row.data = data
	return row
}

func firstData(s rawSections) (any, bool) {
	for _, list := range [][]rawRow{s.rows, s.top, s.bottom} {
		for _, row := range list {
			if !row.group {
				return row.data, true
			}
		}
	}
	return nil, false
}

func buildRows(raw []rawRow, floating grid.Floating) []*grid.RowNode {
	nodes := make([]*grid.RowNode, 0, len(raw))
	for i, r := range raw {
		id := r.id
		if id == "" {
			id = strconv.Itoa(i)
			if floating != grid.FloatingNone {
				id = floating.String() + "-" + id
			}
		}
		node := grid.NewRowNode(id, i, r.data)
		node.Floating = floating
		node.Group = r.group
		node.Footer = r.group && r.footer
		node.Expanded = r.expanded
		if r.selected {
			node.SetSelected(true)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// -----------------------------------------------------------------------------
// Columns
// -----------------------------------------------------------------------------

func inferColumns(keys []string) []*grid.ColDef {
	defs := make([]*grid.ColDef, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, "_") {
			continue
		}
		defs = append(defs, &grid.ColDef{Field: key, HeaderName: headerFor(key, key)})
	}
	return defs
}

// headerFor turns "unit_price" into "Unit Price".
func headerFor(field, fallback string) string {
	name := field
	if name == "" {
		name = fallback
	}
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

