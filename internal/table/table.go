// Package table renders in-memory collections as filtered, sorted and
// paginated views. A Table is stateless: every interaction takes a State and
// returns the next one, so one definition can serve any number of callers.
package table

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

const DefaultPageSize = 10

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" and "desc" in any case.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	}
	return "", false
}

type SortSpec struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// State is the interaction state of one rendered table. Only the first
// SortSpec is honoured.
type State struct {
	Sort      []SortSpec `json:"sort,omitempty"`
	Filter    string     `json:"filter,omitempty"`
	PageIndex int        `json:"pageIndex"`
	PageSize  int        `json:"pageSize"`
}

// Column describes one column. Value returns the raw value used for
// filtering and sorting; Format the display text. A nil Format falls back to
// fmt.Sprint of Value.
type Column[T any] struct {
	ID       string
	Header   string
	Sortable bool
	Value    func(T) any
	Format   func(T) string
}

type Option[T any] func(*Table[T])

func WithSearchableFields[T any](ids ...string) Option[T] {
	return func(t *Table[T]) {
		t.searchable = append([]string(nil), ids...)
	}
}

func WithPageSize[T any](n int) Option[T] {
	return func(t *Table[T]) {
		if n > 0 {
			t.pageSize = n
		}
	}
}

func WithRowClick[T any](fn func(T)) Option[T] {
	return func(t *Table[T]) {
		t.onRowClick = fn
	}
}

type Table[T any] struct {
	columns    []Column[T]
	index      map[string]int
	searchable []string
	pageSize   int
	onRowClick func(T)
}

func New[T any](columns []Column[T], opts ...Option[T]) *Table[T] {
	t := &Table[T]{
		columns:  columns,
		index:    make(map[string]int, len(columns)),
		pageSize: DefaultPageSize,
	}
	for i, c := range columns {
		t.index[c.ID] = i
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table[T]) Columns() []Column[T] {
	return t.columns
}

func (t *Table[T]) PageSize() int {
	return t.pageSize
}

func (t *Table[T]) Column(id string) (Column[T], bool) {
	i, ok := t.index[id]
	if !ok {
		return Column[T]{}, false
	}
	return t.columns[i], true
}

func (t *Table[T]) InitialState() State {
	return State{PageSize: t.pageSize}
}

// ToggleSort cycles a sortable column asc -> desc -> unsorted. Activating a
// column replaces any other active sort. Unknown or non-sortable columns leave
// the state untouched.
func (t *Table[T]) ToggleSort(s State, columnID string) State {
	col, ok := t.Column(columnID)
	if !ok || !col.Sortable {
		return s
	}

	next := s
	if cur, active := activeSort(s); active && cur.Column == columnID {
		if cur.Direction == Asc {
			next.Sort = []SortSpec{{Column: columnID, Direction: Desc}}
		} else {
			next.Sort = nil
		}
		return next
	}

	next.Sort = []SortSpec{{Column: columnID, Direction: Asc}}
	return next
}

// SetSort replaces the active sort. An empty column clears it.
func (t *Table[T]) SetSort(s State, columnID string, dir Direction) State {
	next := s
	if columnID == "" {
		next.Sort = nil
		return next
	}
	col, ok := t.Column(columnID)
	if !ok || !col.Sortable {
		return s
	}
	if dir != Desc {
		dir = Asc
	}
	next.Sort = []SortSpec{{Column: columnID, Direction: dir}}
	return next
}

// SetFilter stores the global filter and moves back to the first page.
func (t *Table[T]) SetFilter(s State, query string) State {
	next := s
	next.Filter = query
	next.PageIndex = 0
	return next
}

func (t *Table[T]) SetPage(s State, pageIndex int) State {
	next := s
	if pageIndex < 0 {
		pageIndex = 0
	}
	next.PageIndex = pageIndex
	return next
}

type Header struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Sortable bool      `json:"sortable"`
	Sorted   Direction `json:"sorted,omitempty"`
}

type Row[T any] struct {
	Record T        `json:"record"`
	Cells  []string `json:"cells"`
}

type View[T any] struct {
	Headers   []Header `json:"headers"`
	Rows      []Row[T] `json:"rows"`
	Total     int      `json:"total"`
	Filtered  int      `json:"filtered"`
	PageIndex int      `json:"pageIndex"`
	PageSize  int      `json:"pageSize"`
	PageCount int      `json:"pageCount"`
	CanPrev   bool     `json:"canPrev"`
	CanNext   bool     `json:"canNext"`
}

// Empty reports whether the current page has nothing to show.
func (v View[T]) Empty() bool {
	return len(v.Rows) == 0
}

// Apply runs filter then sort over data without paginating. data is not modified.
func (t *Table[T]) Apply(data []T, s State) []T {
	filtered := t.filter(data, s.Filter)
	t.sort(filtered, s)
	return filtered
}

// Render runs filter, sort and pagination. PageIndex is not clamped: a page
// past the end renders no rows.
func (t *Table[T]) Render(data []T, s State) View[T] {
	rows := t.Apply(data, s)

	size := s.PageSize
	if size <= 0 {
		size = t.pageSize
	}
	pageIndex := s.PageIndex
	if pageIndex < 0 {
		pageIndex = 0
	}

	pageCount := (len(rows) + size - 1) / size

	// compare page indexes before multiplying so huge indexes cannot overflow
	start, end := len(rows), len(rows)
	if pageIndex < pageCount {
		start = pageIndex * size
		end = min(start+size, len(rows))
	}

	view := View[T]{
		Headers:   t.headers(s),
		Rows:      make([]Row[T], 0, end-start),
		Total:     len(data),
		Filtered:  len(rows),
		PageIndex: pageIndex,
		PageSize:  size,
		PageCount: pageCount,
		CanPrev:   pageIndex > 0,
		CanNext:   pageIndex < pageCount-1,
	}
	for _, rec := range rows[start:end] {
		view.Rows = append(view.Rows, Row[T]{Record: rec, Cells: t.cells(rec)})
	}
	return view
}

// ClickRow returns the original record behind row i of the view and hands
// it to the row-click callback, if any. ok is false when i is out of range.
func (t *Table[T]) ClickRow(v View[T], i int) (rec T, ok bool) {
	if i < 0 || i >= len(v.Rows) {
		return rec, false
	}
	rec = v.Rows[i].Record
	if t.onRowClick != nil {
		t.onRowClick(rec)
	}
	return rec, true
}

func (t *Table[T]) headers(s State) []Header {
	cur, active := activeSort(s)
	out := make([]Header, len(t.columns))
	for i, c := range t.columns {
		h := Header{ID: c.ID, Label: c.Header, Sortable: c.Sortable}
		if active && cur.Column == c.ID && c.Sortable {
			h.Sorted = cur.Direction
		}
		out[i] = h
	}
	return out
}

func (t *Table[T]) cells(rec T) []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		switch {
		case c.Format != nil:
			out[i] = c.Format(rec)
		case c.Value != nil:
			out[i] = fmt.Sprint(c.Value(rec))
		}
	}
	return out
}

func (t *Table[T]) filter(data []T, query string) []T {
	out := make([]T, 0, len(data))
	if query == "" || len(t.searchable) == 0 {
		return append(out, data...)
	}

	fold := cases.Fold()
	needle := fold.String(query)

	for _, rec := range data {
		for _, id := range t.searchable {
			col, ok := t.Column(id)
			if !ok || col.Value == nil {
				continue
			}
			if strings.Contains(fold.String(stringify(col.Value(rec))), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func (t *Table[T]) sort(rows []T, s State) {
	cur, active := activeSort(s)
	if !active {
		return
	}
	col, ok := t.Column(cur.Column)
	if !ok || !col.Sortable || col.Value == nil {
		return
	}

	fold := cases.Fold()
	sort.SliceStable(rows, func(i, j int) bool {
		c := compare(fold, col.Value(rows[i]), col.Value(rows[j]))
		if cur.Direction == Desc {
			return c > 0
		}
		return c < 0
	})
}

func activeSort(s State) (SortSpec, bool) {
	if len(s.Sort) == 0 || s.Sort[0].Column == "" {
		return SortSpec{}, false
	}
	return s.Sort[0], true
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func compare(fold cases.Caser, a, b any) int {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	return strings.Compare(fold.String(stringify(a)), fold.String(stringify(b)))
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
