package events

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
)

// SubscriptionMatcher caches compiled subscription expressions across batches
type SubscriptionMatcher struct {
	programs map[string]*vm.Program
	mutex    sync.Mutex
}

func NewSubscriptionMatcher() *SubscriptionMatcher {
	return &SubscriptionMatcher{
		programs: map[string]*vm.Program{},
	}
}

func (m *SubscriptionMatcher) program(expression string) (*vm.Program, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if program, exists := m.programs[expression]; exists {
		return program, nil
	}

	program, err := CompileExpression(expression)
	if err != nil {
		return nil, err
	}

	m.programs[expression] = program

	return program, nil
}

// Match returns the subscriptions whose expression holds for the environment.
// Subscriptions that fail to compile or run are skipped.
func (m *SubscriptionMatcher) Match(environment *AlertEnvironment, subscriptions []*ctdf.UserAlertSubscription) []*ctdf.UserAlertSubscription {
	var matched []*ctdf.UserAlertSubscription

	for _, subscription := range subscriptions {
		program, err := m.program(subscription.Expression)
		if err != nil {
			log.Error().Err(err).Str("subscription", subscription.PrimaryIdentifier).Msg("Failed to compile subscription")
			continue
		}

		output, err := expr.Run(program, *environment)
		if err != nil {
			log.Error().Err(err).Str("subscription", subscription.PrimaryIdentifier).Msg("Failed to evaluate subscription")
			continue
		}

		if result, ok := output.(bool); ok && result {
			matched = append(matched, subscription)
		}
	}

	return matched
}
