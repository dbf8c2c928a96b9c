package scoring

import (
	"time"

	"spike_detector/internal/domain/entity"
)

const (
	maxScore = 100

	spikeVelocity      = 5.0
	spikePriceChangeM5 = 2.0
	heatingMinVelocity = 3.0
)

// VolumeVelocity is 5-minute volume as a percentage of pool liquidity.
func VolumeVelocity(p entity.Pair) float64 {
	if p.LiquidityUSD <= 0 {
		return 0
	}
	return p.VolumeM5 / p.LiquidityUSD * 100
}

// PairAgeHours is the time since the pair was created, never negative.
// A missing creation time yields 0; SpikeScore does not treat that as new.
func PairAgeHours(p entity.Pair, now time.Time) float64 {
	if p.PairCreatedAt <= 0 {
		return 0
	}
	age := now.Sub(time.UnixMilli(p.PairCreatedAt)).Hours()
	if age < 0 {
		return 0
	}
	return age
}

// SpikeScore computes the additive 0-100 momentum score.
func SpikeScore(p entity.Pair, now time.Time) int {
	score := 0

	// volume acceleration: current 5m vs the hourly rate prorated to 5m
	expected5m := p.VolumeH1 / 12
	if p.VolumeM5 > expected5m*2 {
		score += 10
	}
	if p.VolumeM5 > expected5m*4 {
		score += 10
	}
	if p.VolumeM5 > expected5m*8 {
		score += 10
	}

	velocity := VolumeVelocity(p)
	if velocity > 5 {
		score += 10
	}
	if velocity > 15 {
		score += 10
	}

	if p.PriceChangeM5 > 2 {
		score += 5
	}
	if p.PriceChangeM5 > 10 {
		score += 5
	}
	if p.PriceChangeH1 > 10 {
		score += 5
	}
	if p.PriceChangeH1 > 20 {
		score += 5
	}

	buys, sells := p.TxnsM5.Buys, p.TxnsM5.Sells
	if buys > 5 {
		score += 5
	}
	if buys > 20 {
		score += 5
	}
	if float64(buys) > float64(sells)*1.5 {
		score += 10
	}

	if p.PairCreatedAt > 0 {
		switch age := PairAgeHours(p, now); {
		case age < 24:
			score += 10
		case age < 48:
			score += 5
		}
	}

	return clamp(score)
}

// Classify assigns the two mutually exclusive momentum tiers.
func Classify(velocity, priceChangeM5 float64) (isSpiking, isHeatingUp bool) {
	isSpiking = velocity > spikeVelocity && priceChangeM5 > spikePriceChangeM5
	isHeatingUp = !isSpiking && velocity >= heatingMinVelocity && velocity <= spikeVelocity
	return isSpiking, isHeatingUp
}

// Score builds the pre-enrichment record for a pair. Safety fields are left at
// the neutral default until an assessment is applied.
func Score(p entity.Pair, marketCapUSD float64, now time.Time) entity.ScoredPair {
	velocity := VolumeVelocity(p)
	spiking, heating := Classify(velocity, p.PriceChangeM5)
	def := entity.DefaultAssessment()
	return entity.ScoredPair{
		Pair:           p,
		MarketCapUSD:   marketCapUSD,
		SpikeScore:     SpikeScore(p, now),
		PairAgeHours:   PairAgeHours(p, now),
		VolumeVelocity: velocity,
		IsSpiking:      spiking,
		IsHeatingUp:    heating,
		IsAI:           IsAI(p),
		IsPump:         IsPump(p),
		SafetyLabel:    def.Label,
		SafetyEmoji:    def.Emoji,
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
