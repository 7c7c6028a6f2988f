package r3

import (
	"sort"

	"radsched/config"
	"radsched/domain"
	"radsched/internal/obslog"
)

// AIRPResult is the outcome of AIRP session assignment.
type AIRPResult struct {
	// Assignment maps resident name to AIRP session index (1-based).
	Assignment map[string]int
}

// airpEngine holds AIRP assignment configuration and search state as an
// explicit struct rather than closures, so capacity bookkeeping and the
// repair pass share state predictably.
type airpEngine struct {
	names        []string
	sessionCount int
	min, max     int
	rank         func(name string, session int) int
	sessionOf    map[string]int
	countOf      []int // 1-indexed by session
}

func (e *airpEngine) prefOrder(name string) []int {
	order := make([]int, e.sessionCount)
	for s := 1; s <= e.sessionCount; s++ {
		order[s-1] = s
	}
	sort.SliceStable(order, func(a, b int) bool { return e.rank(name, order[a]) < e.rank(name, order[b]) })
	return order
}

func (e *airpEngine) greedyAssign() {
	e.sessionOf = make(map[string]int, len(e.names))
	e.countOf = make([]int, e.sessionCount+1)
	for _, name := range e.names {
		best := -1
		for _, s := range e.prefOrder(name) {
			if e.countOf[s] < e.max {
				best = s
				break
			}
		}
		if best == -1 {
			// Every session is at max; place in the least-loaded session.
			for s := 1; s <= e.sessionCount; s++ {
				if best == -1 || e.countOf[s] < e.countOf[best] {
					best = s
				}
			}
		}
		e.sessionOf[name] = best
		e.countOf[best]++
	}
}

// repairMinimums moves residents from over-min sessions into under-min
// sessions, preferring the move that increases total rank cost least, until
// every session meets its minimum or no beneficial move remains.
func (e *airpEngine) repairMinimums() {
	for {
		under := -1
		for s := 1; s <= e.sessionCount; s++ {
			if e.countOf[s] < e.min {
				under = s
				break
			}
		}
		if under == -1 {
			return
		}
		bestName, bestFrom, bestCost := "", 0, 1<<31
		for _, name := range e.names {
			from := e.sessionOf[name]
			if from == under || e.countOf[from] <= e.min {
				continue
			}
			cost := e.rank(name, under)
			if cost < bestCost {
				bestCost, bestName, bestFrom = cost, name, from
			}
		}
		if bestName == "" {
			return // no eligible donor; leave under-min (capacity check should prevent this)
		}
		e.sessionOf[bestName] = under
		e.countOf[bestFrom]--
		e.countOf[under]++
	}
}

// AssignAIRP assigns R3s to AIRP sessions. sessionBlocks[s-1] names the block
// number session s occupies; every session's block cells are locked to the
// literal AIRP code for the residents assigned to it.
func AssignAIRP(residents []*domain.Resident, sessionBlocks []int, cfg config.Config, grid *domain.Grid, bc *domain.BlockCalendar, logger obslog.Logger) (AIRPResult, error) {
	if logger == nil {
		logger = obslog.Nop{}
	}
	names := make([]string, 0, len(residents))
	byName := make(map[string]*domain.Resident, len(residents))
	for _, r := range residents {
		names = append(names, r.Name)
		byName[r.Name] = r
	}
	names = domain.SortedNames(names)

	sessionCount := len(sessionBlocks)
	if len(names) < sessionCount*cfg.AIRPCapacityMin || len(names) > sessionCount*cfg.AIRPCapacityMax {
		return AIRPResult{}, ErrAIRPCapacityInfeasible
	}

	e := &airpEngine{
		names:        names,
		sessionCount: sessionCount,
		min:          cfg.AIRPCapacityMin,
		max:          cfg.AIRPCapacityMax,
		rank: func(name string, session int) int {
			if rank, ok := byName[name].Preference.AIRPSessionRank[session]; ok {
				return rank
			}
			return sessionCount + 1 // unranked: least preferred
		},
	}
	e.greedyAssign()
	e.repairMinimums()

	for name, session := range e.sessionOf {
		block := sessionBlocks[session-1]
		rng, err := bc.Range(block)
		if err != nil {
			return AIRPResult{}, err
		}
		for w := rng.Start; w < rng.End; w++ {
			if err := grid.SetLocked(name, w, domain.CodeAIRP, "r3-airp"); err != nil {
				return AIRPResult{}, err
			}
		}
	}

	logger.Info("r3", "AIRP assignment committed", obslog.Fields{"residents": len(names), "sessions": sessionCount})
	return AIRPResult{Assignment: e.sessionOf}, nil
}
