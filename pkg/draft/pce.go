package draft

// PCEEstacaRow is one repeatable pile row of the PCE form.
type PCEEstacaRow struct {
	Nome          string `json:"nome"`
	Profundidade  string `json:"profundidade"`
	CargaTrabalho string `json:"cargaTrabalho"`
	Tipo          string `json:"tipo"`
	Diametro      string `json:"diametro"`
}

// PCEDraft is the PCE (static load test) form state. The driving-equipment
// and fuel-log group is only submitted when TipoEnsaio is HELICOIDAL, but
// the draft keeps whatever was typed so toggling the subtype back does not
// lose input.
type PCEDraft struct {
	TipoEnsaio   string   `json:"tipoEnsaio"`
	Equipamento  string   `json:"equipamento"`
	Carregamento []string `json:"carregamento"`
	Ocorrencias  string   `json:"ocorrencias"`

	EquipCravacao        string `json:"equipCravacao"`
	HorimetroInicio      string `json:"horimetroInicio"`
	HorimetroFim         string `json:"horimetroFim"`
	AbastecimentoLitros  string `json:"abastecimentoLitros"`
	AbastecimentoHorario string `json:"abastecimentoHorario"`

	Estacas []PCEEstacaRow `json:"estacas"`
}

// NewPCEDraft returns a blank draft seeded with one empty pile row.
func NewPCEDraft() PCEDraft {
	return PCEDraft{Estacas: []PCEEstacaRow{{}}}
}

// Clone returns a deep copy; row and option slices are never shared.
func (d PCEDraft) Clone() PCEDraft {
	c := d
	c.Carregamento = copyRows(d.Carregamento)
	c.Estacas = copyRows(d.Estacas)
	return c
}

// Apply runs one action against a clone of the draft and returns it.
func (d PCEDraft) Apply(a Action) (PCEDraft, error) {
	c := d.Clone()
	switch a.Op {
	case OpSetField:
		switch a.Field {
		case "tipoEnsaio":
			c.TipoEnsaio = a.Value
		case "equipamento":
			c.Equipamento = a.Value
		case "ocorrencias":
			c.Ocorrencias = a.Value
		case "equipCravacao":
			c.EquipCravacao = a.Value
		case "horimetroInicio":
			c.HorimetroInicio = a.Value
		case "horimetroFim":
			c.HorimetroFim = a.Value
		case "abastecimentoLitros":
			c.AbastecimentoLitros = a.Value
		case "abastecimentoHorario":
			c.AbastecimentoHorario = a.Value
		default:
			return d, unknownField(a.Field)
		}
	case OpToggle:
		if a.Field != "carregamento" {
			return d, unknownField(a.Field)
		}
		c.Carregamento = toggle(c.Carregamento, a.Value)
	case OpAddRow:
		c.Estacas = prependRow(c.Estacas, PCEEstacaRow{})
	case OpRemoveRow:
		c.Estacas = removeRow(c.Estacas, a.Index, PCEEstacaRow{})
	case OpSetRowField:
		var err error
		c.Estacas = updateRow(c.Estacas, a.Index, func(r *PCEEstacaRow) {
			switch a.Field {
			case "nome":
				r.Nome = a.Value
			case "profundidade":
				r.Profundidade = a.Value
			case "cargaTrabalho":
				r.CargaTrabalho = a.Value
			case "tipo":
				r.Tipo = a.Value
			case "diametro":
				r.Diametro = a.Value
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
