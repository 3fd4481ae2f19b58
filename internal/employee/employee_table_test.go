package employee

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geraldDev01/onboarding-dashboard/internal/table"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func directory() []EmployeeResponse {
	return []EmployeeResponse{
		{ID: "1", Name: "zoe", Email: "zoe@rebuhr.com", Department: "Design", HireDate: "2030-09-01", Country: "Guatemala", Salary: 2500},
		{ID: "2", Name: "Adam", Email: "adam@rebuhr.com", Department: "Engineering", HireDate: "2030-07-15", Country: "Panamá", Salary: 9000},
		{ID: "3", Name: "mia", Email: "mia@rebuhr.com", Department: "Product Management", HireDate: "2031-01-02", Country: "El Salvador", Salary: 800},
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "$3,000.00", FormatSalary(3000))
	assert.Equal(t, "$10,000.00", FormatSalary(10000))
	assert.Equal(t, "January 2, 2031", FormatHireDate(EmployeeResponse{HireDate: "2031-01-02"}))
	assert.Equal(t, "garbage", FormatHireDate(EmployeeResponse{HireDate: "garbage"}))
}

func TestNewTable_Render(t *testing.T) {
	tbl := NewTable(10)
	view := tbl.Render(directory(), tbl.InitialState())

	labels := make([]string, len(view.Headers))
	for i, h := range view.Headers {
		labels[i] = h.Label
	}
	assert.Equal(t, []string{"NAME", "EMAIL", "DEPARTMENT", "HIRE DATE", "COUNTRY", "SALARY"}, labels)
	assert.Equal(t, []string{"zoe", "zoe@rebuhr.com", "Design", "September 1, 2030", "Guatemala", "$2,500.00"}, view.Rows[0].Cells)

	s := tbl.ToggleSort(tbl.InitialState(), "hireDate")
	view = tbl.Render(directory(), s)
	assert.Equal(t, "Adam", view.Rows[0].Record.Name)

	s = tbl.ToggleSort(tbl.InitialState(), "country")
	assert.Empty(t, s.Sort)

	s = tbl.SetFilter(tbl.InitialState(), "PRODUCT")
	view = tbl.Render(directory(), s)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "mia", view.Rows[0].Record.Name)

	s = tbl.SetFilter(tbl.InitialState(), "panam")
	assert.Empty(t, tbl.Render(directory(), s).Rows)
}

func TestTableQuery_State(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tbl := NewTable(10)

	parse := func(rawQuery string) table.State {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees?"+rawQuery, nil)
		return ParseTableQuery(c).State(tbl)
	}

	s := parse("q=eng&sort=salary&dir=desc&page=2&page_size=5")
	assert.Equal(t, "eng", s.Filter)
	assert.Equal(t, []table.SortSpec{{Column: "salary", Direction: table.Desc}}, s.Sort)
	assert.Equal(t, 1, s.PageIndex)
	assert.Equal(t, 5, s.PageSize)

	s = parse("sort=email&page=-3&page_size=1000")
	assert.Empty(t, s.Sort)
	assert.Equal(t, 0, s.PageIndex)
	assert.Equal(t, 10, s.PageSize)

	s = parse("page=9223372036854775807")
	assert.Equal(t, MaxPage-1, s.PageIndex)

	s = parse("sort=name")
	assert.Equal(t, []table.SortSpec{{Column: "name", Direction: table.Asc}}, s.Sort)
}

func TestWriteXLSX(t *testing.T) {
	tbl := NewTable(10)
	rows := tbl.Apply(directory(), tbl.SetSort(tbl.InitialState(), "salary", table.Desc))

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, tbl, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"NAME", "EMAIL", "DEPARTMENT", "HIRE DATE", "COUNTRY", "SALARY"}, got[0])
	assert.Equal(t, "Adam", got[1][0])
	assert.Equal(t, "9000", got[1][5])
	assert.Equal(t, "mia", got[3][0])
}
