package generator

import "github.com/riskibarqy/go-commitsuggest/internal/commit"

// Policy fixes the retry schedule and the length-repair limits.
type Policy struct {
	Attempts          int
	BaseTemperature   float64
	TemperatureStep   float64
	SingleLineTokens  int
	SubjectBodyTokens int
	RepetitionPenalty float64

	SubjectLimit      int
	RepairTemperature float64
	RepairTokens      int
	// TruncateKeep characters are kept before Ellipsis when repair fails.
	TruncateKeep int
	Ellipsis     string
}

// DefaultPolicy is 3 attempts at 0.2, 0.4, 0.6 and a 72 character subject.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:          3,
		BaseTemperature:   0.2,
		TemperatureStep:   0.2,
		SingleLineTokens:  300,
		SubjectBodyTokens: 400,
		RepetitionPenalty: 1.1,
		SubjectLimit:      72,
		RepairTemperature: 0.1,
		RepairTokens:      80,
		TruncateKeep:      69,
		Ellipsis:          "...",
	}
}

// attemptSampling returns the sampling config for the zero-based attempt k.
func (p Policy) attemptSampling(k int, mode commit.Mode) Sampling {
	tokens := p.SingleLineTokens
	if mode == commit.SubjectBody {
		tokens = p.SubjectBodyTokens
	}
	return Sampling{
		Temperature:       p.BaseTemperature + float64(k)*p.TemperatureStep,
		MaxOutputTokens:   tokens,
		RepetitionPenalty: p.RepetitionPenalty,
	}
}

func (p Policy) repairSampling() Sampling {
	return Sampling{
		Temperature:       p.RepairTemperature,
		MaxOutputTokens:   p.RepairTokens,
		RepetitionPenalty: p.RepetitionPenalty,
	}
}
