// Package utils holds the pure export transforms: diary rows to CSV,
// Excel and PDF shapes, with no database access so they stay trivially
// testable.
package utils

import (
	"bytes"
	"encoding/csv"

	"github.com/xuri/excelize/v2"
	"p9e.in/geodiario/models"
)

// CSVHeaders is the exported column set. Every cell is a direct copy of a
// diary field (or its locale-formatted copy in Excel), never a derived
// value, so a re-import maps 1:1.
var CSVHeaders = []string{
	"Tipo", "Cliente", "Endereço", "Equipe", "Data",
	"Hora Início", "Hora Fim", "Serviços Executados",
	"Assinatura Geotest", "Assinatura Responsável", "Observações",
}

// ExcelHeaders adds the creation timestamp, formatted for pt-BR reading.
var ExcelHeaders = append(append([]string{}, CSVHeaders...), "Criado em")

// DiaryCSVRow maps one diary to its CSV record.
func DiaryCSVRow(d models.Diario) []string {
	return []string{
		d.Tipo,
		d.ClienteNome,
		d.Endereco,
		d.Equipe,
		d.Data.String(),
		d.HoraInicio,
		d.HoraFim,
		d.ServicosExecutados,
		d.AssinaturaGeotest,
		d.AssinaturaResponsavel,
		d.Observacoes,
	}
}

// DiaryExcelRow is the CSV row plus the pt-BR formatted creation
// timestamp (day first).
func DiaryExcelRow(d models.Diario) []string {
	return append(DiaryCSVRow(d), d.CreatedAt.Format("02/01/2006 15:04"))
}

// BuildCSV renders the diary list as the spreadsheet-friendly dialect the
// office uses: semicolon delimiter (decimal commas in the data), UTF-8 BOM
// so Excel detects the encoding, CRLF line endings, quotes escaped by
// doubling.
func BuildCSV(diarios []models.Diario) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(&buf)
	writer.Comma = ';'
	writer.UseCRLF = true

	if err := writer.Write(CSVHeaders); err != nil {
		return nil, err
	}
	for _, d := range diarios {
		if err := writer.Write(DiaryCSVRow(d)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// BuildExcel renders the diary list as an .xlsx workbook with a bold
// header row and fixed column widths.
func BuildExcel(diarios []models.Diario) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Diários"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	for colIdx, header := range ExcelHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	for rowIdx, d := range diarios {
		for colIdx, value := range DiaryExcelRow(d) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}
