package strategies

import (
	"fmt"

	"github.com/rustyeddy/backtester/market"
)

// Voting combines member strategies by majority vote. Buy and Sell votes
// are counted independently per bar; a side is emitted only when its vote
// count reaches Quorum and strictly beats the opposing side. Ties and
// sub-quorum counts resolve to Hold.
//
// A member that fails on a missing indicator contributes Hold votes for
// every bar instead of propagating the failure, so a partially-annotated
// series still produces signals from the members that can run.
type Voting struct {
	Label   string
	Members []Strategy
	Quorum  int
}

func (v *Voting) Name() string {
	if v.Label != "" {
		return v.Label
	}
	return fmt.Sprintf("voting(%d of %d)", v.Quorum, len(v.Members))
}

func (v *Voting) GenerateSignals(s *market.Series) ([]Signal, error) {
	n := s.Len()
	signals := make([]Signal, n)
	if len(v.Members) == 0 {
		return signals, nil
	}
	if v.Quorum <= 0 {
		return nil, fmt.Errorf("voting: quorum must be positive, got %d", v.Quorum)
	}

	buyVotes := make([]int, n)
	sellVotes := make([]int, n)

	for _, member := range v.Members {
		memberSignals, err := member.GenerateSignals(s)
		if err != nil {
			// Missing indicators silence the member, they do not fail
			// the combination.
			continue
		}
		for i, sig := range memberSignals {
			switch sig {
			case Buy:
				buyVotes[i]++
			case Sell:
				sellVotes[i]++
			}
		}
	}

	for i := 0; i < n; i++ {
		switch {
		case buyVotes[i] >= v.Quorum && buyVotes[i] > sellVotes[i]:
			signals[i] = Buy
		case sellVotes[i] >= v.Quorum && sellVotes[i] > buyVotes[i]:
			signals[i] = Sell
		}
	}
	return signals, nil
}
