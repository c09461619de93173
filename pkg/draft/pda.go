package draft

// PDA never goes through the diary create path: the technical sheet and
// the daily log only live in the autosave store until exported.

// PDAFicha is the technical-sheet section: pile geometry and driving
// equipment captured once per job.
type PDAFicha struct {
	Obra               string `json:"obra"`
	Local              string `json:"local"`
	Estaqueamento      string `json:"estaqueamento"`
	TipoEstaca         string `json:"tipoEstaca"`
	Diametro           string `json:"diametro"`
	ComprimentoCravado string `json:"comprimentoCravado"`
	CotaArrasamento    string `json:"cotaArrasamento"`
	Martelo            string `json:"martelo"`
	PesoMartelo        string `json:"pesoMartelo"`
	AlturaQueda        string `json:"alturaQueda"`
	Capacete           string `json:"capacete"`
	Cepo               string `json:"cepo"`
	Coxim              string `json:"coxim"`
}

// PDADiarioSec is the daily-log section of the PDA form.
type PDADiarioSec struct {
	Data        string `json:"data"`
	HoraInicio  string `json:"horaInicio"`
	HoraFim     string `json:"horaFim"`
	Ocorrencias string `json:"ocorrencias"`
}

// PDAEstacaRow is one monitored pile row of the daily log.
type PDAEstacaRow struct {
	Nome         string `json:"nome"`
	Profundidade string `json:"profundidade"`
	Nega         string `json:"nega"`
	Repique      string `json:"repique"`
}

type PDADraft struct {
	Ficha   PDAFicha       `json:"ficha"`
	Diario  PDADiarioSec   `json:"diario"`
	Estacas []PDAEstacaRow `json:"estacas"`
}

func NewPDADraft() PDADraft {
	return PDADraft{Estacas: []PDAEstacaRow{{}}}
}

func (d PDADraft) Clone() PDADraft {
	c := d
	c.Estacas = copyRows(d.Estacas)
	return c
}

func (d PDADraft) Apply(a Action) (PDADraft, error) {
	c := d.Clone()
	switch a.Op {
	case OpSetField:
		switch a.Field {
		case "ficha.obra":
			c.Ficha.Obra = a.Value
		case "ficha.local":
			c.Ficha.Local = a.Value
		case "ficha.estaqueamento":
			c.Ficha.Estaqueamento = a.Value
		case "ficha.tipoEstaca":
			c.Ficha.TipoEstaca = a.Value
		case "ficha.diametro":
			c.Ficha.Diametro = a.Value
		case "ficha.comprimentoCravado":
			c.Ficha.ComprimentoCravado = a.Value
		case "ficha.cotaArrasamento":
			c.Ficha.CotaArrasamento = a.Value
		case "ficha.martelo":
			c.Ficha.Martelo = a.Value
		case "ficha.pesoMartelo":
			c.Ficha.PesoMartelo = a.Value
		case "ficha.alturaQueda":
			c.Ficha.AlturaQueda = a.Value
		case "ficha.capacete":
			c.Ficha.Capacete = a.Value
		case "ficha.cepo":
			c.Ficha.Cepo = a.Value
		case "ficha.coxim":
			c.Ficha.Coxim = a.Value
		case "diario.data":
			c.Diario.Data = a.Value
		case "diario.horaInicio":
			c.Diario.HoraInicio = a.Value
		case "diario.horaFim":
			c.Diario.HoraFim = a.Value
		case "diario.ocorrencias":
			c.Diario.Ocorrencias = a.Value
		default:
			return d, unknownField(a.Field)
		}
	case OpAddRow:
		c.Estacas = prependRow(c.Estacas, PDAEstacaRow{})
	case OpRemoveRow:
		c.Estacas = removeRow(c.Estacas, a.Index, PDAEstacaRow{})
	case OpSetRowField:
		var err error
		c.Estacas = updateRow(c.Estacas, a.Index, func(r *PDAEstacaRow) {
			switch a.Field {
			case "nome":
				r.Nome = a.Value
			case "profundidade":
				r.Profundidade = a.Value
			case "nega":
				r.Nega = a.Value
			case "repique":
				r.Repique = a.Value
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
