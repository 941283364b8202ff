package api

import (
	"github.com/lysyi3m/skybrief/app/feed"
	"github.com/lysyi3m/skybrief/app/tasks"
)

type SnapshotSource interface {
	Snapshot() []byte
	Envelope() feed.Envelope
}

var _ SnapshotSource = (*tasks.BuildDigestTask)(nil)

type Handler struct {
	snapshots SnapshotSource
}
