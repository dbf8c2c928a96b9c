// Package analyzer scans Solidity source for risky patterns and scores it.
package analyzer

import (
	"errors"
	"regexp"
	"strings"

	"spike_detector/internal/domain/entity"
)

// ErrEmptySource is returned when there is nothing to scan.
var ErrEmptySource = errors.New("contract source is empty")

const (
	startScore      = 100
	safeMinScore    = 80
	warningMinScore = 50
)

type rule struct {
	id          string
	title       string
	description string
	severity    entity.Severity
	deduction   int
	pattern     *regexp.Regexp
}

var rules = []rule{
	{
		id:          "selfdestruct",
		title:       "Self-destruct",
		description: "The contract can destroy itself and send its balance elsewhere.",
		severity:    entity.SeverityCritical,
		deduction:   40,
		pattern:     regexp.MustCompile(`\b(selfdestruct|suicide)\s*\(`),
	},
	{
		id:          "delegatecall",
		title:       "Delegatecall",
		description: "Arbitrary code can run in the contract's storage context.",
		severity:    entity.SeverityHigh,
		deduction:   20,
		pattern:     regexp.MustCompile(`\.delegatecall\s*\(`),
	},
	{
		id:          "tx-origin-auth",
		title:       "tx.origin authorization",
		description: "Authorization based on tx.origin can be phished.",
		severity:    entity.SeverityHigh,
		deduction:   15,
		pattern:     regexp.MustCompile(`tx\.origin\s*(==|!=)|(==|!=)\s*tx\.origin`),
	},
	{
		id:          "owner-mint",
		title:       "Owner can mint",
		description: "A privileged account can create new supply at will.",
		severity:    entity.SeverityHigh,
		deduction:   20,
		pattern:     regexp.MustCompile(`function\s+mint\w*\s*\([^)]*\)[^{]*\bonly(Owner|Minter|Role)\b`),
	},
	{
		id:          "blacklist",
		title:       "Blacklist",
		description: "Addresses can be blocked from transferring.",
		severity:    entity.SeverityHigh,
		deduction:   15,
		pattern:     regexp.MustCompile(`(?i)(black_?list|isBlocked|\b_?bots?\s*\[)`),
	},
	{
		id:          "adjustable-fees",
		title:       "Adjustable fees",
		description: "Buy or sell taxes can be changed after launch.",
		severity:    entity.SeverityMedium,
		deduction:   10,
		pattern:     regexp.MustCompile(`(?i)function\s+(set|update|change)\w*(fee|tax)\w*\s*\(`),
	},
	{
		id:          "trading-pause",
		title:       "Trading can be paused",
		description: "The owner can stop transfers or trading.",
		severity:    entity.SeverityMedium,
		deduction:   10,
		pattern:     regexp.MustCompile(`(?i)(function\s+pause\s*\(|tradingEnabled|tradingOpen|whenNotPaused)`),
	},
	{
		id:          "tx-limits",
		title:       "Max transaction or wallet limits",
		description: "Transfers above a configurable amount revert.",
		severity:    entity.SeverityLow,
		deduction:   5,
		pattern:     regexp.MustCompile(`(?i)\b_?max(Tx|Transaction|Wallet)(Amount|Size)?\b`),
	},
	{
		id:          "upgradeable-proxy",
		title:       "Upgradeable proxy",
		description: "The logic behind the token can be replaced.",
		severity:    entity.SeverityMedium,
		deduction:   10,
		pattern:     regexp.MustCompile(`(?i)(upgradeTo(AndCall)?\s*\(|_implementation\b|Upgradeable\b)`),
	},
	{
		id:          "hidden-owner-transfer",
		title:       "Hidden ownership change",
		description: "Ownership is assigned to a hardcoded address.",
		severity:    entity.SeverityHigh,
		deduction:   15,
		pattern:     regexp.MustCompile(`(?i)\b_?owner\s*=\s*(address\(\s*)?0x[0-9a-f]{40}`),
	},
}

// Analyze runs every rule over source once. Each matching rule deducts its
// points from 100; the score never drops below 0.
func Analyze(source string) (entity.ContractReport, error) {
	if strings.TrimSpace(source) == "" {
		return entity.ContractReport{}, ErrEmptySource
	}

	score := startScore
	findings := make([]entity.ContractFinding, 0)
	for _, r := range rules {
		loc := r.pattern.FindStringIndex(source)
		if loc == nil {
			continue
		}
		score -= r.deduction
		findings = append(findings, entity.ContractFinding{
			ID:          r.id,
			Title:       r.title,
			Description: r.description,
			Severity:    r.severity,
			Deduction:   r.deduction,
			Line:        strings.Count(source[:loc[0]], "\n") + 1,
		})
	}
	if score < 0 {
		score = 0
	}

	label := Label(score)
	return entity.ContractReport{
		Score:    score,
		Label:    label,
		Emoji:    label.Emoji(),
		Findings: findings,
	}, nil
}

// Label maps a score to a safety label: >= 80 Safe, >= 50 Warning, else High Risk.
func Label(score int) entity.SafetyLabel {
	switch {
	case score >= safeMinScore:
		return entity.SafetySafe
	case score >= warningMinScore:
		return entity.SafetyWarning
	default:
		return entity.SafetyHighRisk
	}
}
