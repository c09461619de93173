package draft

// PLACAPontoRow is one repeatable test-point row of the plate-load form.
type PLACAPontoRow struct {
	Nome          string `json:"nome"`
	CargaLeitura1 string `json:"cargaLeitura1"`
	CargaLeitura2 string `json:"cargaLeitura2"`
}

// PLACADraft is the plate load test form state.
type PLACADraft struct {
	Equipamento string `json:"equipamento"`
	Macaco      string `json:"macaco"`
	Manometro   string `json:"manometro"`
	Ocorrencias string `json:"ocorrencias"`

	Pontos []PLACAPontoRow `json:"pontos"`
}

func NewPLACADraft() PLACADraft {
	return PLACADraft{Pontos: []PLACAPontoRow{{}}}
}

func (d PLACADraft) Clone() PLACADraft {
	c := d
	c.Pontos = copyRows(d.Pontos)
	return c
}

func (d PLACADraft) Apply(a Action) (PLACADraft, error) {
	c := d.Clone()
	switch a.Op {
	case OpSetField:
		switch a.Field {
		case "equipamento":
			c.Equipamento = a.Value
		case "macaco":
			c.Macaco = a.Value
		case "manometro":
			c.Manometro = a.Value
		case "ocorrencias":
			c.Ocorrencias = a.Value
		default:
			return d, unknownField(a.Field)
		}
	case OpAddRow:
		c.Pontos = prependRow(c.Pontos, PLACAPontoRow{})
	case OpRemoveRow:
		c.Pontos = removeRow(c.Pontos, a.Index, PLACAPontoRow{})
	case OpSetRowField:
		var err error
		c.Pontos = updateRow(c.Pontos, a.Index, func(r *PLACAPontoRow) {
			switch a.Field {
			case "nome":
				r.Nome = a.Value
			case "cargaLeitura1":
				r.CargaLeitura1 = a.Value
			case "cargaLeitura2":
				r.CargaLeitura2 = a.Value
			default:
				err = unknownField(a.Field)
			}
		})
		if err != nil {
			return d, err
		}
	default:
		return d, ErrUnknownOp
	}
	return c, nil
}
