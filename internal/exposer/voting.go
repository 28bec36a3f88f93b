package exposer

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Voter turns the raw support row of a query's cell into the contribution
// added to the query's accumulator. dst has the length of raw.
type Voter interface {
	Combine(dst, raw []float64, m *Measures, saturation float64)
}

type loneVoter struct{}

func (loneVoter) Combine(dst, raw []float64, _ *Measures, _ float64) {
	copy(dst, raw)
}

type theta1Voter struct{}

func (theta1Voter) Combine(dst, raw []float64, m *Measures, _ float64) {
	floats.ScaleTo(dst, m.Theta, raw)
}

type theta2Voter struct{}

func (theta2Voter) Combine(dst, raw []float64, m *Measures, _ float64) {
	floats.MulTo(dst, m.ThetaVector, raw)
}

type theta3Voter struct{}

func (theta3Voter) Combine(dst, raw []float64, m *Measures, _ float64) {
	floats.MulTo(dst, m.ThetaVector, raw)
	floats.Scale(m.Theta, dst)
}

type thetaSVoter struct{}

func (thetaSVoter) Combine(dst, raw []float64, m *Measures, saturation float64) {
	floats.MulTo(dst, m.ThetaVector, raw)
	floats.Scale(saturation*m.Theta, dst)
}

// Voter resolves the mode to its combination rule.
func (m VotingMode) Voter() (Voter, error) {
	switch m {
	case Lone, 0:
		return loneVoter{}, nil
	case Theta1:
		return theta1Voter{}, nil
	case Theta2:
		return theta2Voter{}, nil
	case Theta3:
		return theta3Voter{}, nil
	case ThetaS:
		return thetaSVoter{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownVotingMode, "%d", int(m))
	}
}
