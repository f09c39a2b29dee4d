package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// TestMainProcess_HelperProcess is re-executed as a subprocess by the tests
// below so that log.Fatal in main can be observed as a process exit.
func TestMainProcess_HelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		t.Skip("helper process only")
	}
	main()
	os.Exit(0)
}

func runMainSubprocess(t *testing.T, env ...string) error {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=TestMainProcess_HelperProcess")
	cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
	cmd.Env = append(cmd.Env, env...)
	return cmd.Run()
}

func TestMain_ExitsOnRedisFailure(t *testing.T) {
	err := runMainSubprocess(t,
		"REDIS_URL=redis://127.0.0.1:0",
	)
	if err == nil {
		t.Fatal("expected subprocess to exit with failure when redis is unreachable")
	}
}

func TestMain_ExitsOnInvalidServerPort(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	// Redis works, the database ping warning is tolerated, but the server
	// cannot bind to a bogus port so the process must exit non-zero.
	err = runMainSubprocess(t,
		"REDIS_URL=redis://"+mr.Addr(),
		"DB_HOST=127.0.0.1",
		"DB_PORT=1",
		"DB_NAME=brickvest",
		"SERVER_PORT=not-a-port",
	)
	if err == nil {
		t.Fatal("expected subprocess to exit with failure on invalid server port")
	}
}
