package seed

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/analytics"
	"github.com/bryanwahyu/rcis/internal/application"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo/sqlrepotest"
)

var now = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

func TestReworksShape(t *testing.T) {
	events := Reworks(now, rand.New(rand.NewPCG(7, 7)))
	require.Len(t, events, ReworkCount)

	inSpan := analytics.Filter(events, analytics.LastDays(SpanDays), now)
	assert.Len(t, inSpan, ReworkCount)
	for _, e := range events {
		require.NoError(t, e.Validate(), "%+v", e)
		assert.NotEmpty(t, e.SuspectedRootCause)
	}
}

func TestReworksDeterministic(t *testing.T) {
	a := Reworks(now, rand.New(rand.NewPCG(42, 1)))
	b := Reworks(now, rand.New(rand.NewPCG(42, 1)))
	assert.Equal(t, a, b)
}

func TestReworksPlantedPatterns(t *testing.T) {
	events := Reworks(now, rand.New(rand.NewPCG(3, 9)))
	top := analytics.TopN(events, "defectType", 3)
	keys := map[string]bool{}
	for _, r := range top {
		keys[r.Key] = true
	}
	// second shift, batch 003 and IGBT biases dominate the ranking
	assert.True(t, keys["Routing Defect"])
	assert.True(t, keys["Crimp Issue"] || keys["Soldering Defect"])
}

func TestActionsAndKnowledgeValidate(t *testing.T) {
	for _, a := range Actions(now) {
		assert.NoError(t, a.Validate())
	}
	for _, k := range Knowledge(now) {
		assert.NoError(t, k.Validate())
	}
}

func TestRun(t *testing.T) {
	store := sqlrepotest.New(t, now)
	g := &Generator{
		Reworks:   store.Reworks(),
		Actions:   store.Actions(),
		Knowledge: store.Knowledge(),
		Clock:     application.FixedClock{T: now},
		Log:       zap.NewNop(),
		Seed:      11,
	}
	res, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Reworks: ReworkCount, Actions: len(actionSeeds), Knowledge: len(knowledgeSeeds)}, res)

	n, err := store.Count(context.Background(), records.Reworks)
	require.NoError(t, err)
	assert.Equal(t, ReworkCount, n)
}
