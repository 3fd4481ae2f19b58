package employee

import (
	"strconv"
	"strings"
	"time"

	"github.com/geraldDev01/onboarding-dashboard/internal/metrics"
	"github.com/geraldDev01/onboarding-dashboard/internal/table"

	"github.com/Rhymond/go-money"
	"github.com/gin-gonic/gin"
)

const HireDateDisplayLayout = "January 2, 2006"

// NewTable defines the employee directory table. Opening a row is counted
// per department unless opts replace the row-click callback.
func NewTable(pageSize int, opts ...table.Option[EmployeeResponse]) *table.Table[EmployeeResponse] {
	columns := []table.Column[EmployeeResponse]{
		{
			ID: "name", Header: "NAME", Sortable: true,
			Value: func(e EmployeeResponse) any { return e.Name },
		},
		{
			ID: "email", Header: "EMAIL",
			Value: func(e EmployeeResponse) any { return e.Email },
		},
		{
			ID: "department", Header: "DEPARTMENT",
			Value: func(e EmployeeResponse) any { return e.Department },
		},
		{
			ID: "hireDate", Header: "HIRE DATE", Sortable: true,
			Value:  func(e EmployeeResponse) any { return hireDateValue(e) },
			Format: FormatHireDate,
		},
		{
			ID: "country", Header: "COUNTRY",
			Value: func(e EmployeeResponse) any { return e.Country },
		},
		{
			ID: "salary", Header: "SALARY", Sortable: true,
			Value:  func(e EmployeeResponse) any { return e.Salary },
			Format: func(e EmployeeResponse) string { return FormatSalary(e.Salary) },
		},
	}

	all := []table.Option[EmployeeResponse]{
		table.WithSearchableFields[EmployeeResponse]("name", "email", "department"),
		table.WithPageSize[EmployeeResponse](pageSize),
		table.WithRowClick(func(e EmployeeResponse) {
			metrics.DirectoryRowOpens.WithLabelValues(e.Department).Inc()
		}),
	}
	return table.New(columns, append(all, opts...)...)
}

// FormatSalary renders an amount as US dollars, e.g. $3,000.00.
func FormatSalary(amount float64) string {
	return money.NewFromFloat(amount, money.USD).Display()
}

// FormatHireDate renders the hire date as e.g. "January 2, 2026".
func FormatHireDate(e EmployeeResponse) string {
	d, ok := ParseDate(e.HireDate)
	if !ok {
		return e.HireDate
	}
	return d.Format(HireDateDisplayLayout)
}

func hireDateValue(e EmployeeResponse) any {
	if d, ok := ParseDate(e.HireDate); ok {
		return d
	}
	return time.Time{}
}

// MaxPage bounds the page query parameter.
const MaxPage = 1_000_000

// TableQuery is the table state as it travels in a query string. Page is 1-based.
type TableQuery struct {
	Q        string
	Sort     string
	Dir      string
	Page     int
	PageSize int
}

func ParseTableQuery(c *gin.Context) TableQuery {
	q := TableQuery{
		Q:    strings.TrimSpace(c.Query("q")),
		Sort: c.Query("sort"),
		Dir:  c.Query("dir"),
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.PageSize, _ = strconv.Atoi(c.Query("page_size"))
	return q
}

// State converts the query into table state. Out of range numbers fall back
// to the first page and the table's page size.
func (q TableQuery) State(tbl *table.Table[EmployeeResponse]) table.State {
	s := tbl.InitialState()
	s = tbl.SetFilter(s, q.Q)
	if dir, ok := table.ParseDirection(q.Dir); ok || q.Sort != "" {
		if !ok {
			dir = table.Asc
		}
		s = tbl.SetSort(s, q.Sort, dir)
	}
	if q.Page > 1 {
		s = tbl.SetPage(s, min(q.Page, MaxPage)-1)
	}
	if q.PageSize > 0 && q.PageSize <= 100 {
		s.PageSize = q.PageSize
	}
	return s
}
