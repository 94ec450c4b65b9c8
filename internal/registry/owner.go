package registry

import (
	"context"
	"strings"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/queryir"
	"github.com/roach88/registry/internal/store"
)

// SummaryThreshold is the match count from which find-owner shows a short
// summary list and lets the officer pick one vehicle.
const SummaryThreshold = 4

// OwnerQuery holds the optional find-owner criteria. Empty strings and a
// zero Year are ignored. Text criteria match without regard to case,
// except the plate, which must match exactly.
type OwnerQuery struct {
	Make  string
	Model string
	Year  int
	Color string
	Plate string
}

// Predicate builds the parameterized filter for q, or nil if q is empty.
func (q OwnerQuery) Predicate() queryir.Predicate {
	var preds []queryir.Predicate
	fold := func(field, v string) {
		if v = strings.TrimSpace(v); v != "" {
			preds = append(preds, queryir.EqFold(field, v))
		}
	}
	fold("make", q.Make)
	fold("model", q.Model)
	if q.Year != 0 {
		preds = append(preds, queryir.Eq("year", queryir.Int(q.Year)))
	}
	fold("color", q.Color)
	if plate := strings.TrimSpace(q.Plate); plate != "" {
		preds = append(preds, queryir.Eq("plate", queryir.String(plate)))
	}
	return queryir.Where(preds...)
}

// OwnerMatch is a matching vehicle with its current registration.
type OwnerMatch struct {
	Vehicle      domain.Vehicle      `json:"vehicle"`
	Registration domain.Registration `json:"registration"`
}

// FindOwner lists the vehicles matching q, each with its current
// registration (latest expiry), ordered by VIN. Plate and owner criteria
// apply to the current registration only.
func (s *Service) FindOwner(ctx context.Context, q OwnerQuery) ([]OwnerMatch, error) {
	pred := q.Predicate()
	sqlText, params, err := s.compiler.Compile(queryir.Select{
		From:   SourceOwners,
		Fields: []string{"vin"},
		Filter: pred,
	})
	if err != nil {
		return nil, wrap("find owner", err)
	}

	matches := []OwnerMatch{}
	err = s.inTx(ctx, func(tx *store.Tx) error {
		table, err := tx.ReadTable(ctx, sqlText, params...)
		if err != nil {
			return err
		}

		for _, row := range table.Rows {
			vin := row[0]
			v, err := tx.GetVehicle(ctx, vin)
			if err != nil {
				return err
			}
			reg, err := tx.LatestRegistrationForVIN(ctx, vin)
			if err != nil {
				return err
			}
			matches = append(matches, OwnerMatch{Vehicle: v, Registration: reg})
		}
		return nil
	})
	if err != nil {
		return nil, wrap("find owner", err)
	}

	s.log.Debug("find owner",
		"filter", queryir.Describe(pred),
		"matches", len(matches))
	return matches, nil
}
