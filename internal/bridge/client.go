// Package bridge shells out to the MTGOBridge executable, the external
// process that wraps the vendor SDK. Every call is best-effort: when the
// bridge is missing or MTGO is not running, lookups report unavailable
// rather than failing the caller.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/modostats/go-mtgo-metrics/internal/logging"
)

const defaultTimeout = 10 * time.Second

// Client invokes the bridge executable and decodes its JSON replies.
type Client struct {
	path    string
	timeout time.Duration
	log     logging.Interface
}

// New returns a client for the bridge at path. A client with an empty path
// treats every lookup as unavailable.
func New(path string, log logging.Interface) *Client {
	if log == nil {
		log = logging.Nop()
	}
	return &Client{path: path, timeout: defaultTimeout, log: log}
}

// Available reports whether a bridge path is configured.
func (c *Client) Available() bool {
	return c != nil && c.path != ""
}

// Username asks the bridge for the logged-in MTGO username. Returns "" with
// a nil error when the bridge cannot answer; hard errors are reserved for
// malformed replies.
func (c *Client) Username(ctx context.Context) (string, error) {
	var reply struct {
		Username string `json:"username"`
	}
	if err := c.call(ctx, "username", &reply); err != nil {
		return "", err
	}
	return reply.Username, nil
}

// LogDir asks the bridge where the client writes its GameLog files and
// returns the containing directory of the first one.
func (c *Client) LogDir(ctx context.Context) (string, error) {
	var reply struct {
		Files []string `json:"files"`
	}
	if err := c.call(ctx, "logfiles", &reply); err != nil {
		return "", err
	}
	if len(reply.Files) == 0 {
		return "", fmt.Errorf("bridge reported no log files")
	}
	return filepath.Dir(reply.Files[0]), nil
}

func (c *Client) call(ctx context.Context, command string, reply interface{}) error {
	if !c.Available() {
		return fmt.Errorf("bridge not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, c.path, command).Output()
	if err != nil {
		c.log.Debugf("bridge %s: %v", command, err)
		return fmt.Errorf("run bridge %s: %w", command, err)
	}
	if err := json.Unmarshal(out, reply); err != nil {
		return fmt.Errorf("decode bridge %s reply: %w", command, err)
	}
	return nil
}
