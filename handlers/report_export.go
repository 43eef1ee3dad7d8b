// handlers/report_export.go
package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

var waybillRegisterHeaders = []string{
	"Waybill No", "Status", "Customer", "From", "To", "Vehicle", "Driver",
	"Cargo", "Weight", "Start Kms", "Km In", "Completed Unloading", "Remarks",
}

// waybillRegisterRows applies the shared filters for both export formats.
func waybillRegisterRows(r *http.Request) ([]models.Order, error) {
	q := config.DB.Model(&models.Order{}).
		Preload("Customer").
		Preload("From").
		Preload("To").
		Preload("Vehicle").
		Preload("Driver")

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := models.NormalizeStatus(raw)
		if !ok {
			return nil, fmt.Errorf("unknown status %s", raw)
		}
		q = q.Where("status = ?", status)
	}
	if raw := r.URL.Query().Get("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid customerId")
		}
		q = q.Where("customer_id = ?", customerID)
	}
	if from := r.URL.Query().Get("fromDate"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if to := r.URL.Query().Get("toDate"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var orders []models.Order
	err := q.Order("created_at asc").Find(&orders).Error
	return orders, err
}

func waybillRegisterRecord(o models.Order) []string {
	name := func(l *models.Location) string {
		if l == nil {
			return ""
		}
		return l.Name
	}
	customer := ""
	if o.Customer != nil {
		customer = o.Customer.Name
	}
	vehicle := ""
	if o.Vehicle != nil {
		vehicle = o.Vehicle.Registration
	}
	driver := ""
	if o.Driver != nil {
		driver = o.Driver.Name
	}
	flex := func(f *models.FlexFloat) string {
		if f == nil {
			return ""
		}
		return fmt.Sprintf("%g", float64(*f))
	}
	unloaded := ""
	if o.CompletedUnloading != nil && !o.CompletedUnloading.IsZero() {
		unloaded = o.CompletedUnloading.Time().Format("2006-01-02 15:04")
	}
	return []string{
		o.OrderNo, string(o.Status), customer, name(o.From), name(o.To),
		vehicle, driver, o.CargoDescription, flex(o.Weight),
		flex(o.StartKms), flex(o.KmIn), unloaded, o.Remarks,
	}
}

// ExportWaybillRegisterExcel streams the waybill register as an XLSX
// download, honoring the same filters as the orders list.
func ExportWaybillRegisterExcel(w http.ResponseWriter, r *http.Request) {
	orders, err := waybillRegisterRows(r)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	f := excelize.NewFile()
	sheetName := "Waybill Register"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "failed to generate excel file")
		return
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheetName, "A1", "Waybill Register")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for colIdx, header := range waybillRegisterHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		f.SetColWidth(sheetName, columnIndexToLetter(colIdx+1), columnIndexToLetter(colIdx+1), 20)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	for rowIdx, o := range orders {
		for colIdx, value := range waybillRegisterRecord(o) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}
	f.DeleteSheet("Sheet1")

	buffer, err := f.WriteToBuffer()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "failed to write excel file")
		return
	}
	filename := fmt.Sprintf("waybill_register_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportWaybillRegisterCSV streams the waybill register as CSV.
func ExportWaybillRegisterCSV(w http.ResponseWriter, r *http.Request) {
	orders, err := waybillRegisterRows(r)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write(waybillRegisterHeaders)
	for _, o := range orders {
		writer.Write(waybillRegisterRecord(o))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "failed to write csv")
		return
	}

	filename := fmt.Sprintf("waybill_register_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func columnIndexToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
