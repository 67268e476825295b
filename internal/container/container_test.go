package container

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	containers []container.Summary
	err        error
	closed     bool
}

func (l *fakeLister) ContainerList(context.Context, container.ListOptions) ([]container.Summary, error) {
	return l.containers, l.err
}

func (l *fakeLister) Close() error {
	l.closed = true
	return nil
}

func TestRunning(t *testing.T) {
	clt := newClient(&fakeLister{
		containers: []container.Summary{
			{ID: "1", Names: []string{"/postgres"}, State: "running"},
			{ID: "2", Names: []string{"/devlandia_juicebox_1"}, State: "running"},
		},
	}, t.Logf)

	running, err := clt.Running(context.Background(), "juicebox")
	require.NoError(t, err)
	assert.True(t, running)

	running, err = clt.Running(context.Background(), "redis")
	require.NoError(t, err)
	assert.False(t, running)
}

func TestRunningWithoutContainers(t *testing.T) {
	clt := newClient(&fakeLister{}, nil)

	running, err := clt.Running(context.Background(), "juicebox")
	require.NoError(t, err)
	assert.False(t, running)
}

func TestRunningClassifiesErrors(t *testing.T) {
	clt := newClient(&fakeLister{err: fmt.Errorf("ping: %w", errdefs.ErrUnavailable)}, nil)
	_, err := clt.Running(context.Background(), "juicebox")
	require.ErrorIs(t, err, ErrDaemonUnavailable)

	clt = newClient(&fakeLister{err: errdefs.ErrNotFound}, nil)
	running, err := clt.Running(context.Background(), "juicebox")
	require.NoError(t, err)
	assert.False(t, running)

	clt = newClient(&fakeLister{err: errors.New("boom")}, nil)
	_, err = clt.Running(context.Background(), "juicebox")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDaemonUnavailable)
}

func TestClose(t *testing.T) {
	l := fakeLister{}
	require.NoError(t, newClient(&l, nil).Close())
	assert.True(t, l.closed)
}
