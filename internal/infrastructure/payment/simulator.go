package payment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	dompayment "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/payment"
)

// Simulator approves transfers at random with a fixed success rate. No funds
// move; it stands in for an external settlement rail.
type Simulator struct {
	mu          sync.Mutex
	random      *rand.Rand
	successRate float64
}

func NewSimulator(successRate float64) *Simulator {
	return NewSimulatorWithSource(successRate, rand.NewSource(time.Now().UnixNano()))
}

func NewSimulatorWithSource(successRate float64, src rand.Source) *Simulator {
	return &Simulator{
		random:      rand.New(src),
		successRate: successRate,
	}
}

func (s *Simulator) Transfer(ctx context.Context, amount int64, recipient identity.ID) bool {
	_, _, _ = ctx, amount, recipient

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.random.Float64() < s.successRate
}

func (s *Simulator) For(identity.ID) dompayment.Transferor { return s }
