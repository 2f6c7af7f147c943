package global

import (
	"github.com/transitline/transitline/pkg/dataaggregator"
	"github.com/transitline/transitline/pkg/dataaggregator/source/databaselookup"
	"github.com/transitline/transitline/pkg/dataaggregator/source/routeplanner"
	"github.com/transitline/transitline/pkg/metrics"
	"github.com/transitline/transitline/pkg/planner"
)

func Setup(plannerConfig planner.Config) {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}

	databaseLookupSource := databaselookup.Source{}
	databaseLookupSource.Setup()
	dataaggregator.GlobalAggregator.RegisterSource(databaseLookupSource)

	dataaggregator.GlobalAggregator.RegisterSource(routeplanner.Source{
		Planner: planner.NewPlanner(databaseLookupSource, plannerConfig),
		Metrics: metrics.Default,
	})
}
