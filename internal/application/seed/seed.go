// Package seed fills an empty store with a realistic demo data set: 150
// rework events over the last 90 days with planted patterns for the
// insight rules to find, plus corrective actions in every status and a
// handful of knowledge entries.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/application"
	"github.com/bryanwahyu/rcis/internal/domain/actions"
	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/knowledge"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

const (
	ReworkCount = 150
	SpanDays    = 90
)

// Result reports how many records each collection received.
type Result struct {
	Reworks   int `json:"reworks"`
	Actions   int `json:"actions"`
	Knowledge int `json:"knowledge"`
}

type Generator struct {
	Reworks   rework.Repository
	Actions   actions.Repository
	Knowledge knowledge.Repository
	Clock     application.Clock
	Log       *zap.Logger
	// Seed fixes the random stream; zero picks a fresh one per run.
	Seed uint64
}

func (g *Generator) rng() *rand.Rand {
	seed := g.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Run inserts the demo set. Individual insert failures are logged and
// skipped so one bad row does not abort the seed.
func (g *Generator) Run(ctx context.Context) (Result, error) {
	now := g.Clock.Now()
	var res Result

	for _, e := range Reworks(now, g.rng()) {
		if _, err := g.Reworks.Insert(ctx, &e); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			g.Log.Warn("seed rework", zap.Error(err))
			continue
		}
		res.Reworks++
	}
	for _, a := range Actions(now) {
		if _, err := g.Actions.Insert(ctx, &a); err != nil {
			g.Log.Warn("seed action", zap.Error(err))
			continue
		}
		res.Actions++
	}
	for _, k := range Knowledge(now) {
		if _, err := g.Knowledge.Insert(ctx, &k); err != nil {
			g.Log.Warn("seed knowledge", zap.Error(err))
			continue
		}
		res.Knowledge++
	}

	if res.Reworks == 0 && res.Actions == 0 && res.Knowledge == 0 {
		return res, fmt.Errorf("seed: no records inserted")
	}
	g.Log.Info("demo data seeded",
		zap.Int("reworks", res.Reworks),
		zap.Int("actions", res.Actions),
		zap.Int("knowledge", res.Knowledge),
	)
	return res, nil
}

func pick(r *rand.Rand, list []string) string {
	return list[r.IntN(len(list))]
}

// Reworks generates the event set. Planted patterns: second shift leans to
// Routing Defect, BATCH-2026-003 to Crimp Issue, IGBT to Soldering Defect,
// and the last week surges on those three so recurrence fires.
func Reworks(now time.Time, r *rand.Rand) []rework.Event {
	out := make([]rework.Event, 0, ReworkCount)
	for range ReworkCount {
		ago := r.IntN(SpanDays)
		date := now.AddDate(0, 0, -ago).Format(rework.DateLayout)

		shift := catalog.Shifts[0]
		if r.Float64() > 0.45 {
			shift = catalog.Shifts[1]
		}
		defect := pick(r, catalog.DefectTypes)
		if shift == catalog.Shifts[1] && r.Float64() > 0.35 {
			defect = "Routing Defect"
		}

		batch := pick(r, catalog.MaterialBatches)
		if batch == "BATCH-2026-003" && r.Float64() > 0.4 {
			defect = "Crimp Issue"
		}

		station := pick(r, catalog.Stations)
		if station == "IGBT" && r.Float64() > 0.5 {
			defect = "Soldering Defect"
		}

		if ago <= 7 && r.Float64() > 0.6 {
			defect = pick(r, []string{"Routing Defect", "Crimp Issue", "Soldering Defect"})
		}

		severity := pick(r, catalog.Severities)
		if (defect == "Routing Defect" || defect == "Crimp Issue") && r.Float64() > 0.5 {
			severity = catalog.SeverityHigh
		}

		causes, ok := rootCauses[defect]
		if !ok {
			causes = []string{"Under investigation"}
		}

		out = append(out, rework.Event{
			Date:               date,
			Station:            station,
			DefectType:         defect,
			Quantity:           r.IntN(6) + 1,
			Shift:              shift,
			OperatorGroup:      pick(r, catalog.OperatorGroups),
			MaterialBatch:      batch,
			Severity:           severity,
			SuspectedRootCause: pick(r, causes),
			Remarks:            pick(r, remarks),
		})
	}
	return out
}

// Actions returns the corrective actions with target dates relative to now.
func Actions(now time.Time) []actions.Action {
	out := make([]actions.Action, 0, len(actionSeeds))
	for _, s := range actionSeeds {
		out = append(out, actions.Action{
			DefectType:          s.defect,
			Description:         s.description,
			ResponsiblePerson:   s.owner,
			TargetDate:          now.AddDate(0, 0, s.targetOffset).Format(rework.DateLayout),
			Status:              s.status,
			EffectivenessReview: s.review,
		})
	}
	return out
}

func Knowledge(now time.Time) []knowledge.Entry {
	out := make([]knowledge.Entry, 0, len(knowledgeSeeds))
	for _, s := range knowledgeSeeds {
		out = append(out, knowledge.Entry{
			Problem:          s.problem,
			RootCause:        s.rootCause,
			CorrectiveAction: s.action,
			BeforeResults:    s.before,
			AfterResults:     s.after,
			Station:          s.station,
			DefectType:       s.defect,
			DateClosed:       now.AddDate(0, 0, -s.closedAgo).Format(rework.DateLayout),
		})
	}
	return out
}
