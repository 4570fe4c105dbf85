package recorder

import "CryptoPulse/internal/model"

// Recorder persists completed evaluations for later analysis.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	Close() error
}
