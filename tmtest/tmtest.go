/*
Package tmtest provides helpers for tests that need a tendermint home
directory or a running tendermint node next to the ledger daemon.
*/
package tmtest

import (
	"context"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest/assert"
)

// startupDelay is how long a freshly started node gets before the test
// talks to it.
const startupDelay = 2 * time.Second

// TestReporter is the part of testing.TB used by these helpers.
type TestReporter interface {
	assert.Tester
	Skipf(string, ...interface{})
	Logf(string, ...interface{})
}

// RunTendermint starts "tendermint node" on the given home directory. The
// node is killed when ctx is done or when the returned function is called,
// whichever comes first. The returned function blocks until the process
// has exited.
//
// The test is skipped when the binary is not in PATH, unless FORCE_TM_TEST=1
// is set. TM_DEBUG=1 forwards the node output to stderr.
func RunTendermint(ctx context.Context, t TestReporter, home string) (stop func()) {
	t.Helper()

	bin, err := exec.LookPath("tendermint")
	if err != nil {
		if os.Getenv("FORCE_TM_TEST") == "1" {
			t.Fatalf("tendermint binary not found: %s", err)
		}
		t.Skipf("tendermint binary not found, set FORCE_TM_TEST=1 to fail instead")
	}

	cmd := exec.CommandContext(ctx, bin, "node", "--home", home)
	if os.Getenv("TM_DEBUG") != "" {
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Start(); err != nil {
		t.Fatalf("cannot start tendermint: %s", err)
	}
	t.Logf("tendermint running, pid=%d", cmd.Process.Pid)

	exited := make(chan struct{})
	go func() {
		// CommandContext kills the process once ctx is done.
		_ = cmd.Wait()
		close(exited)
	}()

	select {
	case <-time.After(startupDelay):
	case <-exited:
		t.Fatalf("tendermint exited during startup")
	}

	return func() {
		_ = cmd.Process.Kill()
		<-exited
	}
}

// SetupConfig creates a temporary home directory holding a copy of the
// config directory found in sourceDir, and of its data directory if there
// is one. Fixtures come from "tendermint init". The returned function
// removes the home directory.
func SetupConfig(t assert.Tester, sourceDir string) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "offerd-home")
	assert.Nil(t, err)
	cleanup := func() { os.RemoveAll(home) }

	for _, sub := range []string{"config", "data"} {
		src := filepath.Join(sourceDir, sub)
		if _, err := os.Stat(src); os.IsNotExist(err) && sub == "data" {
			continue
		}
		if err := copyDir(src, filepath.Join(home, sub)); err != nil {
			cleanup()
			t.Fatalf("cannot copy %s: %+v", sub, err)
		}
	}
	return home, cleanup
}

// copyDir copies the regular files of src into a new directory dst.
func copyDir(src, dst string) error {
	if err := os.Mkdir(dst, 0755); err != nil {
		return errors.Wrap(err, "mkdir")
	}
	entries, err := ioutil.ReadDir(src)
	if err != nil {
		return errors.Wrap(err, "read dir")
	}
	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		if err := copyFile(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name()), e.Mode()); err != nil {
			return errors.Wrap(err, e.Name())
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
