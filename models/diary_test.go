package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestInferDiaryType(t *testing.T) {
	id := uuid.New()
	set := func(ok bool) map[uuid.UUID]bool {
		if ok {
			return map[uuid.UUID]bool{id: true}
		}
		return map[uuid.UUID]bool{}
	}

	tests := []struct {
		name     string
		tipo     string
		placa    bool
		pit      bool
		pce      bool
		expected string
	}{
		{"explicit flag wins over children", TipoPDA, true, true, true, TipoPDA},
		{"single placa child", "", true, false, false, TipoPLACA},
		{"single pit child", "", false, true, false, TipoPIT},
		{"single pce child", "", false, false, true, TipoPCE},
		{"placa beats pit", "", true, true, false, TipoPLACA},
		{"placa beats pce", "", true, false, true, TipoPLACA},
		{"pit beats pce", "", false, true, true, TipoPIT},
		{"all three children", "", true, true, true, TipoPLACA},
		{"no flag, no children", "", false, false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferDiaryType(tt.tipo, id, set(tt.placa), set(tt.pit), set(tt.pce))
			if got != tt.expected {
				t.Errorf("InferDiaryType() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestSortDiaries(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	// Business dates deliberately contradict creation order.
	diarios := []Diario{
		{ClienteNome: "A", CreatedAt: day(1), Data: DateOnly(day(20))},
		{ClienteNome: "B", CreatedAt: day(3), Data: DateOnly(day(5))},
		{ClienteNome: "C", CreatedAt: day(2), Data: DateOnly(day(10))},
	}
	SortDiaries(diarios)

	want := []string{"B", "C", "A"}
	for i, nome := range want {
		if diarios[i].ClienteNome != nome {
			t.Fatalf("position %d: got %q, expected %q", i, diarios[i].ClienteNome, nome)
		}
	}
}

func TestSortDiariesTiebreakOnData(t *testing.T) {
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	diarios := []Diario{
		{ClienteNome: "older", CreatedAt: created, Data: DateOnly(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))},
		{ClienteNome: "newer", CreatedAt: created, Data: DateOnly(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC))},
	}
	SortDiaries(diarios)

	if diarios[0].ClienteNome != "newer" {
		t.Errorf("expected business-date tiebreak, got %q first", diarios[0].ClienteNome)
	}
}
