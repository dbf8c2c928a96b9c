package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"spike_detector/internal/domain/entity"
	dexscreener_entity "spike_detector/internal/entity"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fakeSource struct {
	pairs []entity.Pair
	err   error
	calls atomic.Int32
}

func (f *fakeSource) FetchPairs(context.Context) ([]entity.Pair, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.pairs, nil
}

// fakeAssessor returns verdicts keyed by pair address; unknown pairs get the default.
type fakeAssessor struct {
	byAddress map[string]entity.SecurityAssessment
	calls     atomic.Int32
}

func (f *fakeAssessor) Assess(_ context.Context, pair entity.Pair) entity.SecurityAssessment {
	f.calls.Add(1)
	if a, ok := f.byAddress[pair.PairAddress]; ok {
		return a
	}
	return entity.DefaultAssessment()
}

type fakeRugCheck struct {
	mu      sync.Mutex
	reports map[string]dexscreener_entity.RugCheckReport
	hang    map[string]bool
	err     error
	calls   int
}

func (f *fakeRugCheck) TokenReport(ctx context.Context, mint string) (dexscreener_entity.RugCheckReport, error) {
	f.mu.Lock()
	f.calls++
	hang := f.hang[mint]
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return dexscreener_entity.RugCheckReport{}, ctx.Err()
	}
	if f.err != nil {
		return dexscreener_entity.RugCheckReport{}, f.err
	}
	return f.reports[mint], nil
}

func (f *fakeRugCheck) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type goPlusCall struct {
	chainID uint64
	address string
}

type fakeGoPlus struct {
	mu     sync.Mutex
	result dexscreener_entity.GoPlusTokenSecurity
	err    error
	calls  []goPlusCall
}

func (f *fakeGoPlus) TokenSecurity(_ context.Context, chainID uint64, address string) (dexscreener_entity.GoPlusTokenSecurity, error) {
	f.mu.Lock()
	f.calls = append(f.calls, goPlusCall{chainID: chainID, address: address})
	f.mu.Unlock()
	if f.err != nil {
		return dexscreener_entity.GoPlusTokenSecurity{}, f.err
	}
	return f.result, nil
}

func (f *fakeGoPlus) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
