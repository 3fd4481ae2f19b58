package employee

import (
	"io"

	"github.com/geraldDev01/onboarding-dashboard/internal/table"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Employees"

// WriteXLSX writes rows as one sheet with the table's headers. Dates and
// salaries are written as raw values so spreadsheets can sort them.
func WriteXLSX(w io.Writer, tbl *table.Table[EmployeeResponse], rows []EmployeeResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	columns := tbl.Columns()
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, col.Header); err != nil {
			return err
		}
	}

	for r, rec := range rows {
		for i, col := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(exportSheet, cell, exportValue(col.ID, rec)); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "F", 22); err != nil {
		return err
	}
	return f.Write(w)
}

func exportValue(columnID string, e EmployeeResponse) any {
	switch columnID {
	case "name":
		return e.Name
	case "email":
		return e.Email
	case "department":
		return e.Department
	case "hireDate":
		return e.HireDate
	case "country":
		return e.Country
	case "salary":
		return e.Salary
	}
	return ""
}
