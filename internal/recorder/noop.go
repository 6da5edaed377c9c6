package recorder

import "B3Radar/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRefresh(_ *RefreshSnapshot) error { return nil }
func (n *NoopRecorder) RecordAlerts(_ []model.Alert) error { return nil }
func (n *NoopRecorder) RecentAlerts(_ int) ([]model.Alert, error) { return nil, nil }
func (n *NoopRecorder) SaveWatchlist(_ []string) error { return nil }
func (n *NoopRecorder) LoadWatchlist() ([]string, error) { return nil, nil }
func (n *NoopRecorder) Close() error { return nil }
