package r3

import (
	"radsched/config"
	"radsched/domain"
	"radsched/internal/obslog"
)

// AssignLC locks every rising R3's cells in the last full block before the
// CORE exam to the literal LC code. cfg.COREBlock must be set; the pipeline
// refuses to run this phase otherwise.
func AssignLC(residents []*domain.Resident, cfg config.Config, grid *domain.Grid, bc *domain.BlockCalendar, logger obslog.Logger) error {
	if logger == nil {
		logger = obslog.Nop{}
	}
	if cfg.COREBlock == 0 {
		return ErrCOREBlockUnset
	}
	lcBlock := cfg.COREBlock - 1
	rng, err := bc.Range(lcBlock)
	if err != nil {
		return err
	}
	for _, r := range residents {
		for w := rng.Start; w < rng.End; w++ {
			if err := grid.SetLocked(r.Name, w, domain.CodeLC, "r3-lc"); err != nil {
				return err
			}
		}
	}
	logger.Info("r3", "Learning Center locked", obslog.Fields{"block": lcBlock, "residents": len(residents)})
	return nil
}
