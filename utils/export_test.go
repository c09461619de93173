package utils

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"p9e.in/geodiario/models"
)

func sampleDiario() models.Diario {
	return models.Diario{
		Tipo:                  models.TipoPCE,
		ClienteNome:           `Construtora "Alfa"; Ltda`,
		Endereco:              "Av. Paulista, 1000 - São Paulo/SP",
		Equipe:                "João; Maria",
		Data:                  models.DateOnly(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		HoraInicio:            "07:30",
		HoraFim:               "17:00",
		ServicosExecutados:    "Prova de carga\ncom ciclo lento",
		AssinaturaGeotest:     "Carlos Souza",
		AssinaturaResponsavel: "Eng. Pereira",
		Observacoes:           "chuva à tarde",
		CreatedAt:             time.Date(2026, 3, 10, 18, 45, 0, 0, time.UTC),
	}
}

// Round-trip: fields containing the delimiter, quotes and newlines must
// come back byte-identical after writing and re-parsing with the
// documented dialect.
func TestCSVRoundTrip(t *testing.T) {
	d := sampleDiario()
	out, err := BuildCSV([]models.Diario{d})
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("CSV must start with a UTF-8 BOM")
	}
	if !bytes.Contains(out, []byte("\r\n")) {
		t.Error("CSV must use CRLF line endings")
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte{0xEF, 0xBB, 0xBF})))
	reader.Comma = ';'
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	want := DiaryCSVRow(d)
	got := records[1]
	if len(got) != len(want) {
		t.Fatalf("row width %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %q: got %q, expected %q", CSVHeaders[i], got[i], want[i])
		}
	}
}

func TestCSVQuoteDoubling(t *testing.T) {
	out, err := BuildCSV([]models.Diario{sampleDiario()})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `""Alfa""`) {
		t.Error("embedded quotes must be escaped by doubling")
	}
}

// Every exported cell is a direct copy of a diary field; the Excel row
// only adds the pt-BR formatted creation timestamp.
func TestExcelRowIsCSVRowPlusCreatedAt(t *testing.T) {
	d := sampleDiario()
	csvRow := DiaryCSVRow(d)
	xlsRow := DiaryExcelRow(d)

	if len(xlsRow) != len(csvRow)+1 {
		t.Fatalf("excel row width %d, expected %d", len(xlsRow), len(csvRow)+1)
	}
	for i := range csvRow {
		if xlsRow[i] != csvRow[i] {
			t.Errorf("column %d diverges between CSV and Excel", i)
		}
	}
	if xlsRow[len(xlsRow)-1] != "10/03/2026 18:45" {
		t.Errorf("created-at cell = %q, expected day-first pt-BR format", xlsRow[len(xlsRow)-1])
	}
}

func TestBuildExcel(t *testing.T) {
	f, err := BuildExcel([]models.Diario{sampleDiario()})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Diários", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if got != `Construtora "Alfa"; Ltda` {
		t.Errorf("B2 = %q", got)
	}
}

func TestOrDash(t *testing.T) {
	if orDash("") != "-" {
		t.Error(`absent values must render as "-"`)
	}
	if orDash("x") != "x" {
		t.Error("present values must pass through")
	}
}

func TestBuildPDFConditionalSections(t *testing.T) {
	in := DiaryPDFInput{Diario: sampleDiario()}
	base, err := BuildPDF(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(base) == 0 {
		t.Fatal("empty PDF output")
	}

	in.PCEDado = &models.PCEDado{TipoEnsaio: "HELICOIDAL", Equipamento: "Macaco 200t"}
	in.PCEEstacas = []models.PCEEstaca{{Ordem: 1, EstacaNome: "E-01", Profundidade: "12,5"}}
	withPCE, err := BuildPDF(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(withPCE) <= len(base) {
		t.Error("PCE section should grow the document")
	}
}
