package anvil

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

const (
	DefaultAnvilName = "anvil"
	DefaultAnvilPort = "8545"
)

// Manager runs anvil as a detached process tracked by PID and log files
// kept under .mintmuse/anvil
type Manager struct {
	binary       string
	runDir       string
	startTimeout time.Duration
	log          *slog.Logger
}

// NewManager creates a new anvil manager for the project
func NewManager(cfg *config.RuntimeConfig, log *slog.Logger) *Manager {
	runDir := filepath.Join(os.TempDir(), "mintmuse")
	if cfg != nil && cfg.DataDir != "" {
		runDir = filepath.Join(cfg.DataDir, "anvil")
	}
	return &Manager{
		binary:       "anvil",
		runDir:       runDir,
		startTimeout: 10 * time.Second,
		log:          log.With("component", "AnvilManager"),
	}
}

// setFilePaths fills defaults and derives PID/log paths from the instance name
func (m *Manager) setFilePaths(instance *domain.AnvilInstance) {
	if strings.TrimSpace(instance.Name) == "" {
		instance.Name = DefaultAnvilName
	}
	if strings.TrimSpace(instance.Port) == "" {
		instance.Port = DefaultAnvilPort
	}
	if instance.PidFile == "" {
		instance.PidFile = filepath.Join(m.runDir, instance.Name+".pid")
	}
	if instance.LogFile == "" {
		instance.LogFile = filepath.Join(m.runDir, instance.Name+".log")
	}
}

func buildAnvilArgs(instance *domain.AnvilInstance) []string {
	args := []string{"--port", instance.Port, "--host", "0.0.0.0"}
	if instance.ChainID != "" {
		args = append(args, "--chain-id", instance.ChainID)
	}
	if instance.ForkURL != "" {
		args = append(args, "--fork-url", instance.ForkURL)
	}
	return args
}

// Start launches anvil and waits until its RPC answers
func (m *Manager) Start(ctx context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)

	if m.isRunning(instance) {
		return fmt.Errorf("anvil '%s' is already running (PID file exists at %s)", instance.Name, instance.PidFile)
	}

	if err := os.MkdirAll(filepath.Dir(instance.LogFile), 0755); err != nil {
		return fmt.Errorf("failed to create run dir: %w", err)
	}
	logFile, err := os.Create(instance.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(m.binary, buildAnvilArgs(instance)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start anvil: %w", err)
	}
	m.log.Debug("anvil started", "pid", cmd.Process.Pid, "args", cmd.Args)

	if err := writePidFile(instance.PidFile, cmd.Process.Pid); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	// Detach: the node outlives this process
	_ = cmd.Process.Release()

	return m.waitHealthy(ctx, instance)
}

func (m *Manager) waitHealthy(ctx context.Context, instance *domain.AnvilInstance) error {
	deadline := time.Now().Add(m.startTimeout)
	for {
		if _, err := m.checkRPCHealth(ctx, instance); err == nil {
			return nil
		} else if time.Now().After(deadline) {
			return fmt.Errorf("anvil did not become ready within %s (see %s): %w", m.startTimeout, instance.LogFile, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// Stop terminates the process and removes the PID file
func (m *Manager) Stop(ctx context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)

	pid, err := readPidFile(instance.PidFile)
	if err != nil {
		return fmt.Errorf("failed to read PID file: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err := process.Kill(); err != nil && !strings.Contains(err.Error(), "process already finished") {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	// Wait for the process to exit; it is not our child so poll with signal 0
	deadline := time.Now().Add(5 * time.Second)
	for processAlive(pid) && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}
	if processAlive(pid) {
		_ = process.Kill()
	}

	if err := os.Remove(instance.PidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// GetStatus reports the process and RPC state
func (m *Manager) GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error) {
	m.setFilePaths(instance)

	status := &domain.AnvilStatus{
		Running: m.isRunning(instance),
		LogFile: instance.LogFile,
	}
	if !status.Running {
		return status, nil
	}

	status.PID, _ = readPidFile(instance.PidFile)
	status.RPCURL = instance.RPCURL()

	chainID, err := m.checkRPCHealth(ctx, instance)
	if err != nil {
		status.Error = err.Error()
	} else {
		status.RPCHealthy = true
		status.ChainID = chainID
	}
	return status, nil
}

// StreamLogs copies the log file to writer, following it until ctx is done
func (m *Manager) StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error {
	m.setFilePaths(instance)

	file, err := os.Open(instance.LogFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: %s", instance.LogFile)
		}
		return err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if _, werr := io.WriteString(writer, line); werr != nil {
				return werr
			}
		}
		if err == nil {
			continue
		}
		if err != io.EOF {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(250 * time.Millisecond):
		}
	}
}

// checkRPCHealth returns the chain ID served by the instance
func (m *Manager) checkRPCHealth(ctx context.Context, instance *domain.AnvilInstance) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	client, err := rpc.DialContext(ctx, instance.RPCURL())
	if err != nil {
		return 0, err
	}
	defer client.Close()

	var chainID hexutil.Uint64
	if err := client.CallContext(ctx, &chainID, "eth_chainId"); err != nil {
		return 0, err
	}
	return uint64(chainID), nil
}

func (m *Manager) isRunning(instance *domain.AnvilInstance) bool {
	pid, err := readPidFile(instance.PidFile)
	if err != nil {
		return false
	}
	return processAlive(pid)
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %s", string(data))
	}
	return pid, nil
}

func writePidFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644)
}

// Ensure the adapter implements the interface
var _ usecase.AnvilManager = (*Manager)(nil)
