package main

import (
	"os"

	"go.uber.org/zap"

	"gh-repo-cache/internal/interfaces"
)

// envDecisionProvider resolves confirmation prompts without a terminal. The
// daemon cannot ask the operator interactively, so destructive local steps
// are declined unless REPO_CACHE_ASSUME_YES is set.
type envDecisionProvider struct {
	assumeYes bool
	logger    *zap.Logger
}

var _ interfaces.DecisionProvider = (*envDecisionProvider)(nil)

func newEnvDecisionProvider(logger *zap.Logger) *envDecisionProvider {
	return &envDecisionProvider{
		assumeYes: os.Getenv("REPO_CACHE_ASSUME_YES") == "1",
		logger:    logger,
	}
}

func (p *envDecisionProvider) Confirm(question string) bool {
	p.logger.Info("Resolving confirmation non-interactively",
		zap.String("question", question),
		zap.Bool("approved", p.assumeYes))
	return p.assumeYes
}
