package production

import (
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Need cantidad requerida de un material.
type Need struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// Requirement calcula el consumo de materiales de una partida: cantidad por unidad × cantidad planificada,
// sumada por material. Las líneas duplicadas de un mismo material se suman.
// El orden del resultado es el de la primera aparición de cada material en la ficha.
func Requirement(lines []entity.RecipeLine, planned int) []Need {
	qty := decimal.NewFromInt(int64(planned))
	needs := make([]Need, 0, len(lines))
	for _, l := range lines {
		needs = append(needs, Need{MaterialID: l.MaterialID, Quantity: l.QuantityPerUnit.Mul(qty)})
	}
	return Aggregate(needs)
}

// Aggregate suma las cantidades repetidas de un mismo material conservando el orden de primera aparición.
func Aggregate(needs []Need) []Need {
	out := make([]Need, 0, len(needs))
	index := make(map[string]int, len(needs))
	for _, n := range needs {
		if i, ok := index[n.MaterialID]; ok {
			out[i].Quantity = out[i].Quantity.Add(n.Quantity)
			continue
		}
		index[n.MaterialID] = len(out)
		out = append(out, n)
	}
	return out
}

// Shortages compara requerimiento contra saldo y devuelve todos los faltantes.
// Material ausente en balance = saldo cero.
func Shortages(needs []Need, balance map[string]decimal.Decimal) []domain.Shortage {
	var out []domain.Shortage
	for _, n := range needs {
		have := balance[n.MaterialID]
		if have.LessThan(n.Quantity) {
			out = append(out, domain.Shortage{
				MaterialID: n.MaterialID,
				Required:   n.Quantity,
				Available:  have,
			})
		}
	}
	return out
}
