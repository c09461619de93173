package draft

// PITEstacaRow is one repeatable pile row of the PIT form.
type PITEstacaRow struct {
	Nome            string `json:"nome"`
	Tipo            string `json:"tipo"`
	Diametro        string `json:"diametro"`
	Profundidade    string `json:"profundidade"`
	CotaArrasamento string `json:"cotaArrasamento"`
	ComprimentoUtil string `json:"comprimentoUtil"`
}

// PITDraft is the PIT (pile integrity test) form state.
type PITDraft struct {
	Equipamento  string `json:"equipamento"`
	Ocorrencias  string `json:"ocorrencias"`
	TotalEstacas string `json:"totalEstacas"`

	Estacas []PITEstacaRow `json:"estacas"`
}

func NewPITDraft() PITDraft {
	return PITDraft{Estacas: []PITEstacaRow{{}}}
}

func (d PITDraft) Clone() PITDraft {
	c := d
	c.Estacas = copyRows(d.Estacas)
	return c
}

func (d PITDraft) Apply(a Action) (PITDraft, error) {
	c := d.Clone()
	switch a.Op {
	case OpSetField:
		switch a.Field {
		case "equipamento":
			c.Equipamento = a.Value
		case "ocorrencias":
			c.Ocorrencias = a.Value
		case "totalEstacas":
			c.TotalEstacas = a.Value
		default:
			return d, unknownField(a.Field)
		}
	case OpAddRow:
		c.Estacas = prependRow(c.Estacas, PITEstacaRow{})
	case OpRemoveRow:
		c.Estacas = removeRow(c.Estacas, a.Index, PITEstacaRow{})
	case OpSetRowField:
		var err error
		c.Estacas = updateRow(c.Estacas, a.Index, func(r *PITEstacaRow) {
			switch a.Field {
			case "nome":
				r.Nome = a.Value
			case "tipo":
				r.Tipo = a.Value
			case "diametro":
				r.Diametro = a.Value
			case "profundidade":
				r.Profundidade = a.Value
			case "cotaArrasamento":
				r.CotaArrasamento = a.Value
			case "comprimentoUtil":
				r.ComprimentoUtil = a.Value
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
