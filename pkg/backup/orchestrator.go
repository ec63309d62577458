package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Orchestrator runs a fixed, ordered set of backup steps, aggregates their
// results into an overall status, and returns the complete report. Each Run
// builds a fresh Report; no state is shared between runs and no step runs
// concurrently with another.
//
// The metadata-upload step is configured last, so the persisted report
// contains every preceding step result but not its own upload record and not
// the overall status. Resolving that would require persisting twice; the
// single durable artifact per run is kept on purpose.
type Orchestrator struct {
	environment string
	clusterName string
	steps       []Step
	logger      *zap.Logger
	now         func() time.Time
}

// NewOrchestrator creates an orchestrator that will run the given steps in
// order.
func NewOrchestrator(environment, clusterName string, logger *zap.Logger, steps ...Step) *Orchestrator {
	return &Orchestrator{
		environment: environment,
		clusterName: clusterName,
		steps:       append([]Step(nil), steps...),
		logger:      logger,
		now:         time.Now,
	}
}

// Steps returns a copy of the configured step list.
func (o *Orchestrator) Steps() []Step {
	return append([]Step(nil), o.steps...)
}

// Run executes every configured step in order and returns the completed
// report. It never panics and never returns nil: a defect escaping a step's
// own error handling is recovered here, recorded as Report.Error with
// overall status FAILED, and the partial report is still returned.
func (o *Orchestrator) Run(ctx context.Context) *Report {
	rep := &Report{
		RunID:       uuid.NewString(),
		Timestamp:   o.now().UTC(),
		Environment: o.environment,
		ClusterName: o.clusterName,
		Steps:       make([]StepResult, 0, len(o.steps)),
	}

	o.logger.Info("starting backup orchestration",
		zap.String("run_id", rep.RunID),
		zap.String("environment", o.environment),
		zap.String("cluster", o.clusterName))

	if err := o.runSteps(ctx, rep); err != nil {
		o.logger.Error("backup orchestration failed", zap.Error(err))
		rep.Error = err.Error()
		rep.OverallStatus = StatusFailed
		return rep
	}

	rep.OverallStatus = EvaluateHealth(rep.Steps)
	o.logger.Info("backup orchestration completed",
		zap.String("run_id", rep.RunID),
		zap.String("overall_status", string(rep.OverallStatus)))

	return rep
}

// runSteps drives the step loop. Its only error returns are the two fatal
// paths: a cancelled run context, or a panic escaping a step's contract.
func (o *Orchestrator) runSteps(ctx context.Context, rep *Report) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step %q violated its contract: %v", currentStep(rep, o.steps), r)
		}
	}()

	for _, step := range o.steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("orchestration cancelled before step %s: %w", step.Name(), ctxErr)
		}

		res := step.Run(ctx, rep)
		rep.Steps = append(rep.Steps, res)
		o.logger.Info("step completed",
			zap.String("operation", res.Operation),
			zap.String("status", string(res.Status)))
	}

	return nil
}

// currentStep names the step that was running when the loop unwound: the
// first one without a recorded result.
func currentStep(rep *Report, steps []Step) string {
	if len(rep.Steps) < len(steps) {
		return steps[len(rep.Steps)].Name()
	}
	return "unknown"
}
