package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"spike_detector/internal/app/port"
	"spike_detector/internal/client"
	"spike_detector/internal/config"
	"spike_detector/internal/domain/entity"
	dexscreener_entity "spike_detector/internal/entity"
	"spike_detector/internal/pkg/metrics"

	"go.uber.org/zap"
)

const (
	providerRugCheck = "rugcheck"
	providerGoPlus   = "goplus"
	providerNone     = "none"

	rugCheckSafeScore    = 700
	rugCheckWarningScore = 400
)

var devActivityKeywords = []string{"creator", "developer", "deployer", "dev sold", "dev wallet"}

// securityServiceImpl implements port.SecurityAssessor.
type securityServiceImpl struct {
	rugCheck      client.RugCheckClient
	goPlus        client.GoPlusClient
	evmChains     map[string]uint64
	solanaChainID string
	timeout       time.Duration
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewSecurityService creates the security enricher. EVM chains eligible for GoPlus
// lookups come from the network definition provider. Assess keeps no state
// between calls.
func NewSecurityService(
	logger *zap.Logger,
	cfg config.SecurityConfig,
	rugCheck client.RugCheckClient,
	goPlus client.GoPlusClient,
	networks port.NetworkDefinitionProvider,
	m *metrics.Metrics,
) port.SecurityAssessor {
	return &securityServiceImpl{
		rugCheck:      rugCheck,
		goPlus:        goPlus,
		evmChains:     networks.SecurityChainIDs(),
		solanaChainID: strings.ToLower(cfg.SolanaChainID),
		timeout:       cfg.SecurityTimeout(),
		metrics:       m,
		logger:        logger.Named("SecurityService"),
	}
}

// Assess implements port.SecurityAssessor.
func (s *securityServiceImpl) Assess(ctx context.Context, pair entity.Pair) entity.SecurityAssessment {
	chain := strings.ToLower(pair.ChainID)
	address := pair.BaseToken.Address

	if chain == s.solanaChainID {
		return s.check(ctx, providerRugCheck, address, func(ctx context.Context) (entity.SecurityAssessment, error) {
			report, err := s.rugCheck.TokenReport(ctx, address)
			if err != nil {
				return entity.SecurityAssessment{}, err
			}
			return RugCheckAssessment(report), nil
		})
	}

	if chainID, ok := s.evmChains[chain]; ok {
		return s.check(ctx, providerGoPlus, address, func(ctx context.Context) (entity.SecurityAssessment, error) {
			sec, err := s.goPlus.TokenSecurity(ctx, chainID, address)
			if errors.Is(err, client.ErrTokenNotFound) || errors.Is(err, client.ErrInvalidAddress) {
				s.logger.Debug("No GoPlus report for token", zap.String("address", address), zap.Error(err))
				return entity.DefaultAssessment(), nil
			}
			if err != nil {
				return entity.SecurityAssessment{}, err
			}
			return GoPlusAssessment(sec), nil
		})
	}

	s.metrics.Assessments.WithLabelValues(providerNone, string(entity.SafetyWarning)).Inc()
	return entity.DefaultAssessment()
}

// check runs fn under the per-call timeout. Any error yields the default assessment.
func (s *securityServiceImpl) check(
	ctx context.Context,
	provider string,
	address string,
	fn func(ctx context.Context) (entity.SecurityAssessment, error),
) entity.SecurityAssessment {
	start := time.Now()
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	assessment, err := fn(callCtx)
	s.metrics.AssessmentLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Debug("Security check failed, using default assessment",
			zap.String("provider", provider),
			zap.String("address", address),
			zap.Error(err))
		s.metrics.AssessmentFailures.WithLabelValues(provider).Inc()
		def := entity.DefaultAssessment()
		s.metrics.Assessments.WithLabelValues(provider, string(def.Label)).Inc()
		return def
	}

	s.metrics.Assessments.WithLabelValues(provider, string(assessment.Label)).Inc()
	return assessment
}

func (s *securityServiceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// RugCheckAssessment maps a RugCheck summary to a verdict.
//
//	score >= 700 and no danger/warning flag -> Safe
//	score >= 400                            -> Warning, risky if flagged
//	otherwise                               -> High Risk, risky
func RugCheckAssessment(report dexscreener_entity.RugCheckReport) entity.SecurityAssessment {
	flagged := false
	devSold := false
	for _, risk := range report.Risks {
		if isFlagLevel(risk.Level) {
			flagged = true
		}
		if mentionsDevActivity(risk) {
			devSold = true
		}
	}

	switch {
	case report.Score >= rugCheckSafeScore && !flagged:
		return entity.NewAssessment(entity.SafetySafe, false, devSold)
	case report.Score >= rugCheckWarningScore:
		return entity.NewAssessment(entity.SafetyWarning, flagged, devSold)
	default:
		return entity.NewAssessment(entity.SafetyHighRisk, true, devSold)
	}
}

func isFlagLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "danger", "warn", "warning":
		return true
	}
	return false
}

func mentionsDevActivity(risk dexscreener_entity.RugCheckRisk) bool {
	text := strings.ToLower(risk.Name + " " + risk.Description)
	for _, kw := range devActivityKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// GoPlusAssessment maps GoPlus token flags to a verdict. Honeypot wins over mintable.
func GoPlusAssessment(sec dexscreener_entity.GoPlusTokenSecurity) entity.SecurityAssessment {
	switch {
	case sec.Honeypot():
		return entity.NewAssessment(entity.SafetyHighRisk, true, false)
	case sec.Mintable():
		return entity.NewAssessment(entity.SafetyWarning, false, false)
	default:
		return entity.NewAssessment(entity.SafetySafe, false, false)
	}
}
