// Package container checks the state of docker containers.
package container

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// ErrDaemonUnavailable is returned when the docker daemon can not be reached.
var ErrDaemonUnavailable = errors.New("docker daemon is not reachable")

type lister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	Close() error
}

// Client queries the docker daemon.
type Client struct {
	clt        lister
	debugLogFn func(string, ...any)
}

var defLogFn = func(string, ...any) {}

// NewClient initializes a new docker client.
// The following environment variables are respected:
// DOCKER_HOST to set the url to the docker server.
// DOCKER_API_VERSION to set the version of the API to use, if it is empty
// the version is negotiated with the server.
// DOCKER_CERT_PATH
// DOCKER_TLS_VERIFY
func NewClient(debugLogFn func(string, ...any)) (*Client, error) {
	dockerClt, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}

	return newClient(dockerClt, debugLogFn), nil
}

func newClient(clt lister, debugLogFn func(string, ...any)) *Client {
	logFn := defLogFn
	if debugLogFn != nil {
		logFn = debugLogFn
	}

	return &Client{clt: clt, debugLogFn: logFn}
}

// Running returns true if a running container exists that has a name
// containing name.
func (c *Client) Running(ctx context.Context, name string) (bool, error) {
	containers, err := c.clt.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		switch {
		case errdefs.IsNotFound(err):
			c.debugLogFn("docker: listing containers returned not found: %s\n", err)
			return false, nil

		case client.IsErrConnectionFailed(err), errdefs.IsUnavailable(err):
			return false, fmt.Errorf("%w: %s", ErrDaemonUnavailable, err)

		default:
			return false, fmt.Errorf("listing docker containers failed: %w", err)
		}
	}

	for _, ct := range containers {
		for _, ctName := range ct.Names {
			if strings.Contains(strings.TrimPrefix(ctName, "/"), name) {
				c.debugLogFn("docker: container %s (%s) is %s\n", ctName, ct.ID, ct.State)
				return true, nil
			}
		}
	}

	c.debugLogFn("docker: none of the %d running containers has a name containing %q\n", len(containers), name)

	return false, nil
}

// Close closes the connection to the docker daemon.
func (c *Client) Close() error {
	return c.clt.Close()
}
