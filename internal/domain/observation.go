package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"

	"github.com/atl08-heightmap/internal/pkg/errors"
)

// Column names every observation table must carry.
const (
	ColumnLat = "lat"
	ColumnLon = "lon"
)

// Defaults used by the ATL08 products.
const (
	DefaultMetricColumn    = "h_can"
	DefaultNightFlagColumn = "night_flg"
)

// Value is a single table cell: either a number or free text.
type Value struct {
	num     float64
	text    string
	numeric bool
}

// Number wraps a numeric cell.
func Number(f float64) Value {
	return Value{num: f, numeric: true}
}

// Text wraps a textual cell.
func Text(s string) Value {
	return Value{text: s}
}

// ParseValue reads s as a number when possible, otherwise keeps it as text.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return Text(s)
}

// Float returns the numeric content of v.
func (v Value) Float() (float64, bool) {
	return v.num, v.numeric
}

// Equal compares numbers numerically and everything else by text.
// Number(1) equals ParseValue("1.0"); Number(2) does not equal Number(1).
func (v Value) Equal(o Value) bool {
	if v.numeric && o.numeric {
		return v.num == o.num
	}
	if v.numeric != o.numeric {
		return false
	}
	return v.text == o.text
}

func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// MarshalJSON keeps numbers as JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	}
	return []byte(strconv.Quote(v.text)), nil
}

// Table is a column-oriented set of observations, one row per observation.
type Table struct {
	names   []string
	columns map[string][]Value
	rows    int
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	t := &Table{
		names:   make([]string, 0, len(columns)),
		columns: make(map[string][]Value, len(columns)),
	}
	for _, c := range columns {
		if _, dup := t.columns[c]; dup {
			continue
		}
		t.names = append(t.names, c)
		t.columns[c] = nil
	}
	return t
}

// Append adds a row. values follow the order of Columns.
func (t *Table) Append(values ...Value) error {
	if len(values) != len(t.names) {
		return fmt.Errorf("table: row has %d values, want %d", len(values), len(t.names))
	}
	for i, name := range t.names {
		t.columns[name] = append(t.columns[name], values[i])
	}
	t.rows++
	return nil
}

// Len is the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Has reports whether the table carries column.
func (t *Table) Has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// Column returns the cells of column.
func (t *Table) Column(column string) ([]Value, error) {
	vals, ok := t.columns[column]
	if !ok {
		return nil, errors.MissingColumn(column)
	}
	return vals, nil
}

// Floats returns column as numbers. A non numeric cell is an error.
func (t *Table) Floats(column string) ([]float64, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		f, ok := v.Float()
		if !ok {
			return nil, errors.InvalidObservation(i, column)
		}
		out[i] = f
	}
	return out, nil
}

// Require checks that every column is present.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if !t.Has(c) {
			return errors.MissingColumn(c)
		}
	}
	return nil
}

// Where returns a new table holding the rows whose column equals v.
func (t *Table) Where(column string, v Value) (*Table, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	out := NewTable(t.names...)
	for i, cell := range vals {
		if !cell.Equal(v) {
			continue
		}
		for _, name := range t.names {
			out.columns[name] = append(out.columns[name], t.columns[name][i])
		}
		out.rows++
	}
	return out, nil
}

// Mean is the arithmetic mean of a numeric column.
func (t *Table) Mean(column string) (float64, error) {
	vals, err := t.Floats(column)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errors.ErrEmptyTable
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), nil
}

// Center is the mean latitude and longitude over every row.
func (t *Table) Center() (Point, error) {
	if t.rows == 0 {
		return Point{}, errors.ErrEmptyTable
	}
	lat, err := t.Mean(ColumnLat)
	if err != nil {
		return Point{}, err
	}
	lon, err := t.Mean(ColumnLon)
	if err != nil {
		return Point{}, err
	}
	return Point{Lat: lat, Lon: lon}, nil
}

// Bounds is the smallest lat/lon rectangle holding every observation.
func (t *Table) Bounds() (BoundingBox, error) {
	lats, err := t.Floats(ColumnLat)
	if err != nil {
		return BoundingBox{}, err
	}
	lons, err := t.Floats(ColumnLon)
	if err != nil {
		return BoundingBox{}, err
	}
	if len(lats) == 0 {
		return BoundingBox{}, errors.ErrEmptyTable
	}

	rect := s2.EmptyRect()
	for i := range lats {
		rect = rect.AddPoint(s2.LatLngFromDegrees(lats[i], lons[i]))
	}
	return BoundingBox{
		MinLat: rect.Lo().Lat.Degrees(),
		MinLon: rect.Lo().Lng.Degrees(),
		MaxLat: rect.Hi().Lat.Degrees(),
		MaxLon: rect.Hi().Lng.Degrees(),
	}, nil
}

// ValidCoordinate reports whether lat/lon lie on the globe.
func ValidCoordinate(lat, lon float64) bool {
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}
