package utils

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"p9e.in/geodiario/models"
	"p9e.in/geodiario/pkg/draft"
)

// DiaryPDFInput is everything the printable diary can show. Sections whose
// pointer is nil are skipped entirely; absent values inside a rendered
// section print as "-" so the tables stay visually aligned.
type DiaryPDFInput struct {
	Diario models.Diario

	PCEDado    *models.PCEDado
	PCEEstacas []models.PCEEstaca

	PITDado    *models.PITDado
	PITEstacas []models.PITEstaca

	PLACADado   *models.PLACADado
	PLACAPontos []models.PLACAPonto

	// PDA renders from the autosave draft; it has no persisted rows.
	PDA *draft.PDADraft
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// BuildPDF renders the diary as a paginated A4 document with a repeated
// header band and page numbers.
func BuildPDF(in DiaryPDFInput) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr("GEOTEST — Diário de Obra"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s · %s", orDash(in.Diario.Tipo), in.Diario.Data.String())), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetDrawColor(68, 114, 196)
		pdf.SetLineWidth(0.5)
		pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
		pdf.Ln(4)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 7, tr(label), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(135, 7, tr(orDash(value)), "1", 1, "L", false, 0, "")
	}
	section := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(231, 230, 230)
		pdf.CellFormat(190, 8, tr(title), "1", 1, "L", true, 0, "")
	}
	tableHeader := func(widths []float64, labels []string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(231, 230, 230)
		for i, l := range labels {
			pdf.CellFormat(widths[i], 7, tr(l), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	tableRow := func(widths []float64, cells []string) {
		pdf.SetFont("Helvetica", "", 9)
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, tr(orDash(c)), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	d := in.Diario
	field("Cliente", d.ClienteNome)
	field("Endereço", d.Endereco)
	field("Equipe", d.Equipe)
	field("Data", d.Data.String())
	field("Hora início", d.HoraInicio)
	field("Hora fim", d.HoraFim)
	field("Serviços executados", d.ServicosExecutados)
	field("Assinatura Geotest", d.AssinaturaGeotest)
	field("Assinatura responsável", d.AssinaturaResponsavel)
	field("Observações", d.Observacoes)

	if in.PCEDado != nil {
		section("Prova de Carga Estática (PCE)")
		field("Tipo de ensaio", in.PCEDado.TipoEnsaio)
		field("Equipamento", in.PCEDado.Equipamento)
		field("Carregamento", joinOrDash(in.PCEDado.Carregamento))
		field("Ocorrências", in.PCEDado.Ocorrencias)
		if in.PCEDado.TipoEnsaio == models.PCESubtipoHelicoidal {
			field("Equip. cravação", in.PCEDado.EquipCravacao)
			field("Horímetro início", in.PCEDado.HorimetroInicio)
			field("Horímetro fim", in.PCEDado.HorimetroFim)
			field("Abastecimento (L)", in.PCEDado.AbastecimentoLitros)
			field("Horário abastecimento", in.PCEDado.AbastecimentoHorario)
		}
		if len(in.PCEEstacas) > 0 {
			pdf.Ln(2)
			w := []float64{15, 50, 35, 35, 30, 25}
			tableHeader(w, []string{"Ordem", "Estaca", "Profundidade", "Carga trab.", "Tipo", "Diâmetro"})
			for _, e := range in.PCEEstacas {
				tableRow(w, []string{fmt.Sprintf("%d", e.Ordem), e.EstacaNome, e.Profundidade,
					e.CargaTrabalho, e.Tipo, e.Diametro})
			}
		}
	}

	if in.PITDado != nil {
		section("Ensaio de Integridade (PIT)")
		field("Equipamento", in.PITDado.Equipamento)
		field("Total de estacas", fmt.Sprintf("%d", in.PITDado.TotalEstacas))
		field("Ocorrências", in.PITDado.Ocorrencias)
		if len(in.PITEstacas) > 0 {
			pdf.Ln(2)
			w := []float64{12, 38, 25, 25, 30, 30, 30}
			tableHeader(w, []string{"Ordem", "Estaca", "Tipo", "Diâmetro", "Profund.", "Cota arras.", "Compr. útil"})
			for _, e := range in.PITEstacas {
				tableRow(w, []string{fmt.Sprintf("%d", e.Ordem), e.EstacaNome, e.Tipo, e.Diametro,
					e.Profundidade, e.CotaArrasamento, e.ComprimentoUtil})
			}
		}
	}

	if in.PLACADado != nil {
		section("Prova de Carga sobre Placa (PLACA)")
		field("Equipamento", in.PLACADado.Equipamento)
		field("Macaco", in.PLACADado.Macaco)
		field("Manômetro", in.PLACADado.Manometro)
		field("Ocorrências", in.PLACADado.Ocorrencias)
		if len(in.PLACAPontos) > 0 {
			pdf.Ln(2)
			w := []float64{20, 80, 45, 45}
			tableHeader(w, []string{"Ordem", "Ponto", "Carga leitura 1", "Carga leitura 2"})
			for _, p := range in.PLACAPontos {
				tableRow(w, []string{fmt.Sprintf("%d", p.Ordem), p.PontoNome, p.CargaLeitura1, p.CargaLeitura2})
			}
		}
	}

	if in.PDA != nil {
		section("PDA — Ficha Técnica")
		field("Obra", in.PDA.Ficha.Obra)
		field("Local", in.PDA.Ficha.Local)
		field("Estaqueamento", in.PDA.Ficha.Estaqueamento)
		field("Tipo de estaca", in.PDA.Ficha.TipoEstaca)
		field("Diâmetro", in.PDA.Ficha.Diametro)
		field("Comprimento cravado", in.PDA.Ficha.ComprimentoCravado)
		field("Cota de arrasamento", in.PDA.Ficha.CotaArrasamento)
		field("Martelo", in.PDA.Ficha.Martelo)
		field("Peso do martelo", in.PDA.Ficha.PesoMartelo)
		field("Altura de queda", in.PDA.Ficha.AlturaQueda)

		section("PDA — Diário de Cravação")
		field("Data", in.PDA.Diario.Data)
		field("Hora início", in.PDA.Diario.HoraInicio)
		field("Hora fim", in.PDA.Diario.HoraFim)
		field("Ocorrências", in.PDA.Diario.Ocorrencias)
		if len(in.PDA.Estacas) > 0 {
			pdf.Ln(2)
			w := []float64{70, 40, 40, 40}
			tableHeader(w, []string{"Estaca", "Profundidade", "Nega", "Repique"})
			for _, e := range in.PDA.Estacas {
				tableRow(w, []string{e.Nome, e.Profundidade, e.Nega, e.Repique})
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func joinOrDash(opts []string) string {
	out := ""
	for i, o := range opts {
		if i > 0 {
			out += ", "
		}
		out += o
	}
	return out
}
