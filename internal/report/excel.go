// internal/report/excel.go
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/store"
)

// Header các sheet báo cáo.
var (
	assetHeader = []string{
		"ID", "Lokasi", "Tipe", "Brand", "Model", "Kondisi", "Keluhan",
		"Tgl Instalasi", "Servis Terakhir", "Jadwal PM", "Kritikalitas",
	}
	workOrderHeader = []string{
		"No Tiket", "Aset", "Judul", "Prioritas", "Tipe", "Status",
		"Dibuat", "Selesai", "Catatan Teknisi",
	}
	financeHeader = []string{"Tanggal", "Item", "Biaya"}
)

// GenerateAssetReport xuất danh sách tài sản với lokasi/tipe đã resolve tên.
func GenerateAssetReport(doc models.Document) ([]byte, error) {
	rows := make([][]any, 0, len(doc.Assets))
	for _, a := range doc.Assets {
		rows = append(rows, []any{
			a.ID,
			resolveLocation(doc, a.LocationID),
			resolveType(doc, a.TypeID),
			a.Brand, a.Model, string(a.Cond), a.Issue,
			a.Install, a.Service, a.NextPMDate, string(a.Criticality),
		})
	}
	return generateSheet("Aset", assetHeader, rows)
}

// GenerateWorkOrderReport xuất danh sách phiếu công việc.
func GenerateWorkOrderReport(doc models.Document) ([]byte, error) {
	rows := make([][]any, 0, len(doc.WorkOrders))
	for _, w := range doc.WorkOrders {
		assetLabel := w.AssetID
		for _, a := range doc.Assets {
			if a.ID == w.AssetID {
				assetLabel = fmt.Sprintf("%s %s", a.Brand, a.Model)
				break
			}
		}
		rows = append(rows, []any{
			w.No, assetLabel, w.Title, string(w.Priority), string(w.Type),
			string(w.Status), w.CreatedAt, w.CompletedAt, w.TechNotes,
		})
	}
	return generateSheet("Work Order", workOrderHeader, rows)
}

// GenerateFinanceReport xuất danh sách chi tiêu, biaya đã format Rupiah.
func GenerateFinanceReport(doc models.Document) ([]byte, error) {
	rows := make([][]any, 0, len(doc.Finances))
	for _, f := range doc.Finances {
		rows = append(rows, []any{f.Date, f.Item, store.FormatRupiah(f.Cost)})
	}
	return generateSheet("Pengeluaran", financeHeader, rows)
}

// generateSheet dựng một workbook đơn sheet: dòng header in đậm rồi data.
func generateSheet(sheetName string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeaderCell, headerStyle)

	for r, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resolveLocation(doc models.Document, id string) string {
	for _, l := range doc.Master.Locations {
		if l.ID == id {
			return l.Name
		}
	}
	return models.FallbackLocationName
}

func resolveType(doc models.Document, id string) string {
	for _, t := range doc.Master.AssetTypes {
		if t.ID == id {
			return t.Name
		}
	}
	return models.FallbackTypeName
}
