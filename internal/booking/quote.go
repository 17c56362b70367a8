package booking

import "context"

// CalculatePrice previews the price of a selection without reserving
// anything. Equipment ids that do not resolve are priced at zero.
func (s *Service) CalculatePrice(ctx context.Context, req PriceRequest) (Quote, error) {
	if err := s.validateStruct(req); err != nil {
		return Quote{}, err
	}
	iv, err := newInterval(req.StartTime, req.EndTime)
	if err != nil {
		return Quote{}, err
	}

	q := s.db.Queries
	court, err := resolveCourt(ctx, q, req.CourtID)
	if err != nil {
		return Quote{}, err
	}
	coach, err := resolveCoach(ctx, q, req.CoachID)
	if err != nil {
		return Quote{}, err
	}
	demands := aggregateEquipment(req.Equipment)
	if err := resolveEquipment(ctx, q, demands, false); err != nil {
		return Quote{}, err
	}

	return Price(QuoteInput{
		Court:     court,
		Coach:     coach,
		Equipment: equipmentLines(demands),
		Start:     iv.start,
		End:       iv.end,
		Location:  s.location,
	})
}
