package analyzer

import (
	"testing"

	"spike_detector/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanToken = `pragma solidity ^0.8.20;

contract Token {
    mapping(address => uint256) public balanceOf;

    function transfer(address to, uint256 amount) external returns (bool) {
        balanceOf[msg.sender] -= amount;
        balanceOf[to] += amount;
        return true;
    }
}`

const rugToken = `pragma solidity ^0.8.20;

contract Rug {
    mapping(address => bool) public blacklist;

    function mint(address to, uint256 amount) external onlyOwner {
        _mint(to, amount);
    }

    function exec(address target, bytes calldata data) external {
        require(tx.origin == owner);
        target.delegatecall(data);
    }

    function kill() external {
        selfdestruct(payable(msg.sender));
    }
}`

const taxToken = `pragma solidity ^0.8.20;

contract Tax {
    uint256 public maxTxAmount;
    bool public tradingEnabled;

    function setSellFee(uint256 fee) external onlyOwner {
        sellFee = fee;
    }
}`

func TestAnalyze_CleanSource(t *testing.T) {
	report, err := Analyze(cleanToken)
	require.NoError(t, err)
	assert.Equal(t, 100, report.Score)
	assert.Equal(t, entity.SafetySafe, report.Label)
	assert.Equal(t, "✅", report.Emoji)
	assert.Empty(t, report.Findings)
}

func TestAnalyze_ScoreFloorsAtZero(t *testing.T) {
	report, err := Analyze(rugToken)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Score)
	assert.Equal(t, entity.SafetyHighRisk, report.Label)

	ids := make(map[string]entity.ContractFinding)
	for _, f := range report.Findings {
		ids[f.ID] = f
	}
	for _, id := range []string{"selfdestruct", "delegatecall", "tx-origin-auth", "owner-mint", "blacklist"} {
		assert.Contains(t, ids, id)
	}
	assert.Equal(t, 16, ids["selfdestruct"].Line)
	assert.Equal(t, entity.SeverityCritical, ids["selfdestruct"].Severity)
}

func TestAnalyze_Deductions(t *testing.T) {
	report, err := Analyze(taxToken)
	require.NoError(t, err)
	// tx limits 5 + trading pause 10 + adjustable fees 10
	assert.Equal(t, 75, report.Score)
	assert.Equal(t, entity.SafetyWarning, report.Label)
	assert.Len(t, report.Findings, 3)
}

func TestAnalyze_HardcodedOwner(t *testing.T) {
	src := "contract X {\n  constructor() { _owner = 0x000000000000000000000000000000000000dEaD; }\n}"
	report, err := Analyze(src)
	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "hidden-owner-transfer", report.Findings[0].ID)
	assert.Equal(t, 2, report.Findings[0].Line)
	assert.Equal(t, 85, report.Score)
}

func TestAnalyze_EmptySource(t *testing.T) {
	_, err := Analyze("   \n\t")
	require.ErrorIs(t, err, ErrEmptySource)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, entity.SafetySafe, Label(80))
	assert.Equal(t, entity.SafetyWarning, Label(79))
	assert.Equal(t, entity.SafetyWarning, Label(50))
	assert.Equal(t, entity.SafetyHighRisk, Label(49))
}
