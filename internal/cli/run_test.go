package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
)

// Unary append over {0, 1}: skip the 1s, write a 1 on the first blank.
const unaryAppend = "2\n1\n1,1,R\n0,1,R\n111\n"

func writeMachine(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCapture(t *testing.T, ctx context.Context, opts RunOptions) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(ctx, opts, logging.NewNop(), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_PrintsTape(t *testing.T) {
	path := writeMachine(t, "append.tm", unaryAppend)

	out, _, err := runCapture(t, context.Background(), RunOptions{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "1111\n", out)
}

func TestRun_InputOverride(t *testing.T) {
	path := writeMachine(t, "append.tm", unaryAppend)
	input := "1"

	out, _, err := runCapture(t, context.Background(), RunOptions{Path: path, Input: &input})
	require.NoError(t, err)
	assert.Equal(t, "11\n", out)

	bad := "1x?"
	_, _, err = runCapture(t, context.Background(), RunOptions{Path: path, Input: &bad})
	assert.ErrorContains(t, err, "invalid --input")
}

func TestRun_JSON(t *testing.T) {
	path := writeMachine(t, "append.tm", unaryAppend)

	out, _, err := runCapture(t, context.Background(), RunOptions{Path: path, JSON: true, Info: true})
	require.NoError(t, err)

	var res RunOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.StatusHalted, res.Status)
	assert.Equal(t, 4, res.Steps)
	assert.Equal(t, "1111", res.TapeString)
}

func TestRun_UndefinedTransitionStillPrintsTape(t *testing.T) {
	// Alphabet {0, 1, 2}; state 0 has no rule for 2.
	path := writeMachine(t, "partial.yaml", `
states: [0, 1]
alphabet: [0, 1, 2]
transitions:
  - {from: 0, on: 1, write: 0, move: R, to: 0}
input: "112"
`)

	out, stderr, err := runCapture(t, context.Background(), RunOptions{Path: path, Summary: true})
	require.Error(t, err)
	assert.ErrorContains(t, err, "no transition defined for state 0 on symbol 2")
	assert.Equal(t, "002\n", out)
	assert.Contains(t, stderr, "failed in state 0 after 2 steps")
}

func TestRun_StepLimit(t *testing.T) {
	path := writeMachine(t, "loop.tm", "2\n0\n0,0,R\n")

	out, _, err := runCapture(t, context.Background(), RunOptions{Path: path, MaxSteps: 3})
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
	assert.Equal(t, "000\n", out)
}

func TestRun_InterruptedIsNotAnError(t *testing.T) {
	path := writeMachine(t, "loop.tm", "2\n0\n0,0,R\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, stderr, err := runCapture(t, ctx, RunOptions{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
	assert.Contains(t, stderr, "Interrupted in state 0 after 0 steps")
}

func TestRun_Trace(t *testing.T) {
	path := writeMachine(t, "append.tm", unaryAppend)

	out, _, err := runCapture(t, context.Background(), RunOptions{Path: path, Trace: true})
	require.NoError(t, err)
	assert.Contains(t, out, "1111\ngraph LR\n")
	assert.Contains(t, out, "class q1 current;")
}

func TestRun_PublishesHaltToRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, "turing:halts")
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	path := writeMachine(t, "append.tm", unaryAppend)
	_, _, err = runCapture(t, ctx, RunOptions{Path: path, Redis: RedisConfig{Addr: mr.Addr()}})
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		assert.Contains(t, msg.Payload, `"status":"halted"`)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for halt event")
	}
}

func TestRun_PublishesStepsToRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, "tm:steps")
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	path := writeMachine(t, "append.tm", unaryAppend)
	rc := RedisConfig{Addr: mr.Addr(), Prefix: "tm:", Steps: true}
	_, _, err = runCapture(t, ctx, RunOptions{Path: path, Redis: rc})
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		assert.Contains(t, msg.Payload, `"type":"step"`)
		assert.Contains(t, msg.Payload, `"step":1`)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for step event")
	}
}

func TestInspectCommands(t *testing.T) {
	path := writeMachine(t, "append.tm", unaryAppend)

	var buf bytes.Buffer
	require.NoError(t, Info(path, false, &buf))
	assert.Contains(t, buf.String(), "Transitions")

	buf.Reset()
	require.NoError(t, Info(path, true, &buf))
	assert.Contains(t, buf.String(), "(1 transitions)")

	buf.Reset()
	require.NoError(t, Graph(path, &buf))
	assert.Contains(t, buf.String(), `q0 -- "1/1,R" --> q0`)

	buf.Reset()
	require.NoError(t, Validate(path, &buf))
	assert.Empty(t, buf.String())
}

func TestValidate_Warnings(t *testing.T) {
	path := writeMachine(t, "island.yaml", `
states: [0, 1, 2]
alphabet: [0]
transitions:
  - {from: 0, on: 0, write: 0, move: L, to: 0}
`)

	var buf bytes.Buffer
	require.NoError(t, Validate(path, &buf))
	assert.Contains(t, buf.String(), "state 1 is unreachable")
	assert.Contains(t, buf.String(), "the final state is unreachable")

	bad := writeMachine(t, "bad.yaml", `
states: [0, 1]
alphabet: [0]
transitions:
  - {from: 0, on: 3, write: 0, move: L, to: 1}
`)
	assert.ErrorContains(t, Validate(bad, &buf), "read symbol 3 not in alphabet")
}
