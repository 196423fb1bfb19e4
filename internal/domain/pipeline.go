package domain

import "fmt"

// PipelineStage is a state of the deploy-and-publish pipeline
type PipelineStage string

const (
	StageStart          PipelineStage = "start"
	StageSignerResolved PipelineStage = "signer-resolved"
	StageFactoryLoaded  PipelineStage = "factory-loaded"
	StageTxSubmitted    PipelineStage = "tx-submitted"
	StageConfirmed      PipelineStage = "confirmed"
	StageSerialized     PipelineStage = "serialized"
	StagePublished      PipelineStage = "published"
	StageFailed         PipelineStage = "failed"
)

// pipelineOrder is the only legal sequence of non-failure stages
var pipelineOrder = []PipelineStage{
	StageStart,
	StageSignerResolved,
	StageFactoryLoaded,
	StageTxSubmitted,
	StageConfirmed,
	StageSerialized,
	StagePublished,
}

// Pipeline tracks progress through the deployment stages. Stages advance
// strictly one at a time; Failed is reachable from any non-terminal stage.
type Pipeline struct {
	stage       PipelineStage
	failedAt    PipelineStage
	failure     error
	transitions []PipelineStage
}

// NewPipeline returns a pipeline in the Start stage
func NewPipeline() *Pipeline {
	return &Pipeline{
		stage:       StageStart,
		transitions: []PipelineStage{StageStart},
	}
}

// Stage returns the current stage
func (p *Pipeline) Stage() PipelineStage {
	return p.stage
}

// FailedAt returns the stage that was active when the pipeline failed
func (p *Pipeline) FailedAt() PipelineStage {
	return p.failedAt
}

// Err returns the failure reason, if any
func (p *Pipeline) Err() error {
	return p.failure
}

// History returns every stage the pipeline has entered, in order
func (p *Pipeline) History() []PipelineStage {
	out := make([]PipelineStage, len(p.transitions))
	copy(out, p.transitions)
	return out
}

// IsTerminal reports whether the pipeline has published or failed
func (p *Pipeline) IsTerminal() bool {
	return p.stage == StagePublished || p.stage == StageFailed
}

// Advance moves the pipeline to next, which must directly follow the current stage
func (p *Pipeline) Advance(next PipelineStage) error {
	if p.IsTerminal() {
		return fmt.Errorf("pipeline is terminal at %s, cannot enter %s", p.stage, next)
	}
	if want := p.nextStage(); next != want {
		return fmt.Errorf("invalid pipeline transition %s -> %s (expected %s)", p.stage, next, want)
	}
	p.stage = next
	p.transitions = append(p.transitions, next)
	return nil
}

// Fail moves the pipeline into Failed and returns reason for convenient propagation
func (p *Pipeline) Fail(reason error) error {
	if p.IsTerminal() {
		return reason
	}
	p.failedAt = p.stage
	p.failure = reason
	p.stage = StageFailed
	p.transitions = append(p.transitions, StageFailed)
	return reason
}

func (p *Pipeline) nextStage() PipelineStage {
	for i, s := range pipelineOrder {
		if s == p.stage && i+1 < len(pipelineOrder) {
			return pipelineOrder[i+1]
		}
	}
	return StageFailed
}
