package handlers

import (
	"testing"

	"p9e.in/geodiario/models"
)

func TestComposeEndereco(t *testing.T) {
	tests := []struct {
		name     string
		d        models.Diario
		expected string
	}{
		{
			"full structured address",
			models.Diario{Rua: "Av. Paulista", Numero: "1000", Cidade: "São Paulo", Estado: "SP", Endereco: "ignored"},
			"Av. Paulista, 1000 - São Paulo/SP",
		},
		{
			"structured without number",
			models.Diario{Rua: "Estrada do Campo", Cidade: "Campinas", Estado: "SP"},
			"Estrada do Campo - Campinas/SP",
		},
		{
			"incomplete structured falls back to free text",
			models.Diario{Rua: "Av. Paulista", Endereco: "Obra km 12, rodovia SP-330"},
			"Obra km 12, rodovia SP-330",
		},
		{
			"free text only",
			models.Diario{Endereco: "Canteiro central"},
			"Canteiro central",
		},
		{
			"nothing at all",
			models.Diario{},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := composeEndereco(tt.d); got != tt.expected {
				t.Errorf("composeEndereco() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestStripGatedPCEFields(t *testing.T) {
	gated := models.PCEDado{
		TipoEnsaio:           "PRE_MOLDADA",
		Equipamento:          "Macaco 200t",
		EquipCravacao:        "Bate-estaca D-30",
		HorimetroInicio:      "102,4",
		HorimetroFim:         "110,0",
		AbastecimentoLitros:  "80",
		AbastecimentoHorario: "11:30",
	}

	out := stripGatedPCEFields(gated)
	if out.EquipCravacao != "" || out.HorimetroInicio != "" || out.HorimetroFim != "" ||
		out.AbastecimentoLitros != "" || out.AbastecimentoHorario != "" {
		t.Errorf("gated group not cleared for subtype %q: %+v", out.TipoEnsaio, out)
	}
	if out.Equipamento != "Macaco 200t" {
		t.Errorf("non-gated field should survive, got %q", out.Equipamento)
	}

	gated.TipoEnsaio = models.PCESubtipoHelicoidal
	out = stripGatedPCEFields(gated)
	if out.EquipCravacao != "Bate-estaca D-30" || out.AbastecimentoLitros != "80" {
		t.Errorf("HELICOIDAL submission must keep the gated group: %+v", out)
	}
}

func TestValidateCreateDiary(t *testing.T) {
	valid := func() createDiaryReq {
		req := createDiaryReq{}
		req.Tipo = models.TipoPCE
		req.ClienteNome = "Construtora Alfa"
		req.Endereco = "Obra km 12"
		if err := req.Data.UnmarshalJSON([]byte(`"2026-03-10"`)); err != nil {
			t.Fatal(err)
		}
		req.PCE = &struct {
			Dado    models.PCEDado     `json:"dado"`
			Estacas []models.PCEEstaca `json:"estacas"`
		}{}
		return req
	}

	if msg := validateCreateDiary(ptr(valid())); msg != "" {
		t.Fatalf("valid request rejected: %s", msg)
	}

	req := valid()
	req.Tipo = models.TipoPDA
	if msg := validateCreateDiary(&req); msg == "" {
		t.Error("PDA must not be accepted by the create path")
	}

	req = valid()
	req.Tipo = "XYZ"
	if msg := validateCreateDiary(&req); msg == "" {
		t.Error("unknown tipo must be rejected")
	}

	req = valid()
	req.PCE = nil
	if msg := validateCreateDiary(&req); msg == "" {
		t.Error("missing type section must be rejected")
	}

	req = valid()
	req.ClienteNome = ""
	if msg := validateCreateDiary(&req); msg == "" {
		t.Error("missing client must be rejected")
	}
}

func ptr(r createDiaryReq) *createDiaryReq { return &r }
