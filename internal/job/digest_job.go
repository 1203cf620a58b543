package job

import (
	"context"
	"time"

	"market-pulse/internal/domain"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

const DefaultDigestSchedule = "0 9 * * *"

type DigestRunner interface {
	Run(ctx context.Context) domain.Digest
}

// DigestJob fires the digest on a cron schedule in a fixed time zone.
type DigestJob struct {
	tracer     trace.Tracer
	runner     DigestRunner
	spec       string
	schedule   cron.Schedule
	loc        *time.Location
	runOnStart bool
}

func NewDigestJob(tracer trace.Tracer, runner DigestRunner, spec string, loc *time.Location, runOnStart bool) *DigestJob {
	if loc == nil {
		loc = time.UTC
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		log.WithFields(log.Fields{
			"spec":  spec,
			"error": err.Error(),
		}).Warn("invalid digest schedule, using default")
		spec = DefaultDigestSchedule
		schedule, _ = cron.ParseStandard(spec)
	}
	return &DigestJob{
		tracer:     tracer,
		runner:     runner,
		spec:       spec,
		schedule:   schedule,
		loc:        loc,
		runOnStart: runOnStart,
	}
}

func (j *DigestJob) Spec() string { return j.spec }

// NextRun returns the first fire time strictly after t.
func (j *DigestJob) NextRun(t time.Time) time.Time {
	return j.schedule.Next(t.In(j.loc))
}

// Start blocks until ctx is cancelled and waits for a running digest to finish.
func (j *DigestJob) Start(ctx context.Context) {
	if j.runner == nil {
		log.Info("Digest job disabled: no runner")
		<-ctx.Done()
		return
	}

	c := cron.New(
		cron.WithLocation(j.loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.StandardLogger()))),
	)
	c.Schedule(j.schedule, cron.FuncJob(func() { j.runOnce(ctx) }))

	if j.runOnStart {
		j.runOnce(ctx)
	}

	c.Start()
	log.WithFields(log.Fields{
		"spec":     j.spec,
		"timezone": j.loc.String(),
		"next":     j.NextRun(time.Now()).Format(time.RFC3339),
	}).Info("Digest job scheduled")

	<-ctx.Done()
	<-c.Stop().Done()
}

func (j *DigestJob) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, span := j.tracer.Start(ctx, "digest-job.run-once")
	defer span.End()

	d := j.runner.Run(ctx)
	log.WithFields(log.Fields{
		"signals": len(d.Signals),
	}).Info("Digest cycle complete")
}
