package source

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
)

// DockerReader reads the trailing lines of a container's log stream via the
// docker CLI.
type DockerReader struct {
	container string
}

// NewDockerReader creates a reader for the named container.
func NewDockerReader(container string) *DockerReader {
	return &DockerReader{container: container}
}

// ReadLines runs `docker logs --tail N` and returns the combined stdout and
// stderr streams, which is where containerized apps write their logs.
func (r *DockerReader) ReadLines(ctx context.Context, limit int) ([]string, error) {
	args := []string{"logs"}
	if limit > 0 {
		args = append(args, "--tail", strconv.Itoa(limit))
	}
	args = append(args, r.container)

	out, err := exec.CommandContext(ctx, "docker", args...).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("reading container logs for %s: %w: %s",
			r.container, err, strings.TrimSpace(string(out)))
	}

	return splitLines(string(out)), nil
}

// Close is a no-op; every read is a fresh docker invocation.
func (r *DockerReader) Close() error { return nil }

func splitLines(out string) []string {
	lines := strings.Split(out, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

var jsonParsers fastjson.ParserPool

// unwrapJSONLine extracts the payload from a docker json-file log line
// ({"log":"...","stream":"...","time":"..."}). Lines that are not wrapped,
// or that fail to parse, pass through untouched.
func unwrapJSONLine(line string) string {
	if !strings.HasPrefix(line, `{"`) || !strings.Contains(line, `"log"`) {
		return line
	}

	p := jsonParsers.Get()
	defer jsonParsers.Put(p)

	v, err := p.Parse(line)
	if err != nil {
		return line
	}
	payload := v.GetStringBytes("log")
	if payload == nil {
		return line
	}
	return strings.TrimRight(string(payload), "\n")
}
