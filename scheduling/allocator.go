package scheduling

import (
	"context"
	"sort"
	"time"

	"github.com/petgroomhq/grooming-app/models"
)

// candidate pairs a professional with their booking load for the date.
type candidate struct {
	professional models.Professional
	load         int
}

// rankCandidates returns the professionals able to take the exact requested
// slot, ordered by ascending non-cancelled load for the date (ties broken by
// ID for determinism). The pass here is advisory — the caller re-validates
// the winner under the day lock before committing. An empty result is a
// legitimate business outcome, not an error.
func (s *Scheduler) rankCandidates(ctx context.Context, companyID uint, service models.ServiceType, date time.Time, dateStr string, cand Interval) ([]models.Professional, error) {
	pros, err := s.registry.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, len(pros))
	for i := range pros {
		p := pros[i]
		if !p.HasSpecialty(service) || p.DayOffOn(date.Weekday()) {
			continue
		}
		day, err := s.store.ListForProfessionalOnDate(ctx, companyID, p.ID, dateStr, true)
		if err != nil {
			return nil, err
		}
		if SlotFree(&p, date, cand, DayIntervals(day, 0)) != nil {
			continue
		}
		candidates = append(candidates, candidate{professional: p, load: len(day)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].load != candidates[j].load {
			return candidates[i].load < candidates[j].load
		}
		return candidates[i].professional.ID < candidates[j].professional.ID
	})

	ranked := make([]models.Professional, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.professional
	}
	return ranked, nil
}
