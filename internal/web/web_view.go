package web

import (
	"net/url"
	"strconv"

	"github.com/geraldDev01/onboarding-dashboard/internal/employee"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee/form"
	"github.com/geraldDev01/onboarding-dashboard/internal/table"
)

type headerView struct {
	Label    string
	Sortable bool
	Href     string
	Arrow    string
}

type rowView struct {
	Href  string
	Cells []string
}

type fieldView struct {
	form.Field
	Value   string
	Error   string
	Display string
}

func directoryHref(s table.State, defaultPageSize int) string {
	v := stateValues(s, defaultPageSize)
	if len(v) == 0 {
		return "/employees"
	}
	return "/employees?" + v.Encode()
}

// rowHref points at row i of the view described by s. id lets the handler
// notice that the directory changed in between.
func rowHref(s table.State, defaultPageSize, i int, id string) string {
	v := stateValues(s, defaultPageSize)
	v.Set("id", id)
	return "/employees/row/" + strconv.Itoa(i) + "?" + v.Encode()
}

func stateValues(s table.State, defaultPageSize int) url.Values {
	v := url.Values{}
	if s.Filter != "" {
		v.Set("q", s.Filter)
	}
	if len(s.Sort) > 0 {
		v.Set("sort", s.Sort[0].Column)
		v.Set("dir", string(s.Sort[0].Direction))
	}
	if s.PageIndex > 0 {
		v.Set("page", strconv.Itoa(s.PageIndex+1))
	}
	if s.PageSize > 0 && s.PageSize != defaultPageSize {
		v.Set("page_size", strconv.Itoa(s.PageSize))
	}
	return v
}

func headerViews(tbl *table.Table[employee.EmployeeResponse], s table.State, view table.View[employee.EmployeeResponse]) []headerView {
	out := make([]headerView, len(view.Headers))
	for i, h := range view.Headers {
		hv := headerView{Label: h.Label, Sortable: h.Sortable}
		if h.Sortable {
			hv.Href = directoryHref(tbl.ToggleSort(s, h.ID), tbl.PageSize())
			switch h.Sorted {
			case table.Asc:
				hv.Arrow = " ▲"
			case table.Desc:
				hv.Arrow = " ▼"
			}
		}
		out[i] = hv
	}
	return out
}

func rowViews(s table.State, defaultPageSize int, view table.View[employee.EmployeeResponse]) []rowView {
	out := make([]rowView, len(view.Rows))
	for i, r := range view.Rows {
		out[i] = rowView{Href: rowHref(s, defaultPageSize, i, r.Record.ID), Cells: r.Cells}
	}
	return out
}

func fieldViews(fields []form.Field, snap form.Snapshot) []fieldView {
	out := make([]fieldView, len(fields))
	for i, f := range fields {
		fv := fieldView{Field: f, Value: snap.Values[f.Name], Error: snap.Errors[f.Name]}
		if f.Kind == form.KindNumericRange {
			if v, err := strconv.ParseFloat(fv.Value, 64); err == nil {
				fv.Display = employee.FormatSalary(v)
			}
		}
		out[i] = fv
	}
	return out
}
