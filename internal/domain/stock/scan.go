package stock

import (
	"strings"

	"github.com/jhoicas/MedStock-api/internal/domain/entity"
)

// ScanMode sentido del escaneo.
type ScanMode string

const (
	ScanIn  ScanMode = "in"
	ScanOut ScanMode = "out"
)

// ScanOutcome resultado de resolver un escaneo.
type ScanOutcome string

const (
	OutcomeUpdated  ScanOutcome = "updated"
	OutcomeNotFound ScanOutcome = "not_found"
)

// InitialScanStock stock inicial del borrador cuando el escaneo no encuentra el insumo.
const InitialScanStock = 1

// ScanResult resultado de ResolveScan.
// Updated: Supply contiene el nuevo estado a persistir y PreviousStock el stock anterior.
// NotFound: Draft contiene el borrador de creación con la clave prellenada.
type ScanResult struct {
	Outcome       ScanOutcome
	Supply        *entity.Supply
	PreviousStock int
	Draft         *entity.Supply
}

// ParseScanMode interpreta el modo; vacío equivale a ScanIn.
func ParseScanMode(s string) (ScanMode, bool) {
	switch ScanMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScanIn:
		return ScanIn, true
	case ScanOut:
		return ScanOut, true
	}
	return "", false
}

// MatchField devuelve el valor del campo de coincidencia de un insumo.
func MatchField(s *entity.Supply, field string) string {
	if field == entity.FieldUPC {
		return s.UPC
	}
	return s.Name
}

// ResolveScan busca en candidates el insumo cuyo campo field (name o upc) es igual a key.
// Si lo encuentra aplica +1 (ScanIn) o -1 recortado en Floor (ScanOut). Si no, devuelve un
// borrador con key en el campo de coincidencia y stock InitialScanStock; no es un error.
// Con varias coincidencias gana la primera.
func (r Reconciler) ResolveScan(key, field string, mode ScanMode, candidates []*entity.Supply) ScanResult {
	key = strings.TrimSpace(key)
	for _, c := range candidates {
		if c == nil || key == "" || MatchField(c, field) != key {
			continue
		}
		delta := 1
		if mode == ScanOut {
			delta = -1
		}
		next := r.ApplyDelta(*c, delta)
		return ScanResult{Outcome: OutcomeUpdated, Supply: &next, PreviousStock: c.Stock}
	}

	draft := entity.Supply{Stock: InitialScanStock}
	if field == entity.FieldUPC {
		draft.UPC = key
	} else {
		draft.Name = key
	}
	draft = r.NewSupply(draft)
	return ScanResult{Outcome: OutcomeNotFound, Draft: &draft}
}
