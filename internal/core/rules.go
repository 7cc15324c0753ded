package core

import (
	"carecore/pkg/domain"
	"time"
)

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
func NewDefaultRulesEngine() *domain.RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewClaimAmountRule())
	engine.Register(NewEventTimeWindowRule())
	engine.Register(NewUniqueEmailRule())
	engine.Register(NewCertificationExpiryRule(func() time.Time { return time.Now().UTC() }))
	return engine
}
