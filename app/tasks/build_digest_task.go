package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/skybrief/app/digest"
	"github.com/lysyi3m/skybrief/app/feed"
)

type BuildDigestTask struct {
	Task
	Catalog   feed.Catalog
	builder   *digest.Builder
	generator *feed.Generator
	writer    *digest.Writer
	clock     func() time.Time

	snapshot []byte
	envelope feed.Envelope
}

func NewBuildDigestTask(catalog feed.Catalog, builder *digest.Builder, generator *feed.Generator, writer *digest.Writer) *BuildDigestTask {
	return &BuildDigestTask{
		Task:      NewTask(TaskTypeBuildDigest),
		Catalog:   catalog,
		builder:   builder,
		generator: generator,
		writer:    writer,
		clock:     time.Now,
	}
}

func (t *BuildDigestTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	envelope := t.builder.Run(ctx, t.Catalog, t.clock())

	data, err := t.generator.Run(envelope)
	if err != nil {
		return fmt.Errorf("failed to generate digest: %w", err)
	}

	if err := t.writer.Run(data); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}

	t.envelope = envelope
	t.snapshot = data

	slog.Info("Task completed",
		"type", string(t.Type),
		"id", t.ID,
		"duration", t.GetDuration(),
		"feeds", len(t.Catalog.Feeds),
		"items", len(envelope.Items),
		"night_of", envelope.NightOf,
		"output", t.writer.Path())

	return nil
}

// Snapshot returns the bytes written by the last successful Execute.
func (t *BuildDigestTask) Snapshot() []byte {
	return t.snapshot
}

func (t *BuildDigestTask) Envelope() feed.Envelope {
	return t.envelope
}
