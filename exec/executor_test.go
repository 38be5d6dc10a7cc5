// Copyright 2025 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package exec

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/execdoc/execdoc/harvest"
)

// fakeRunner always returns a fixed RunResult, together with err (if set)
// on every call.
type fakeRunner struct {
	id           string
	result       harvest.RunResult
	err          error
	closed       bool
	runCount     int
	cancelResult bool
	cancelCount  int
}

func (r *fakeRunner) ID() string { return r.id }
func (r *fakeRunner) Run(context.Context, harvest.Example) (harvest.RunResult, error) {
	r.runCount++
	return r.result, r.err
}
func (r *fakeRunner) Cancel(context.Context, harvest.Example) bool {
	r.cancelCount++
	return r.cancelResult
}
func (r *fakeRunner) Close() error { r.closed = true; return nil }

func TestExecutorRunsAndSummarizes(t *testing.T) {
	registry := harvest.NewRegistry()
	r := &fakeRunner{id: "shell", result: harvest.RunResult{Matched: true, Actual: "ok"}}
	registry.RegisterLanguage("shell", nil, func() (harvest.Runner, error) { return r, nil })

	e := NewExecutor(registry)
	examples := []harvest.Example{
		{Name: "a", Language: "shell"},
		{Name: "b", Language: "shell"},
	}
	outcomes, err := e.Run(context.Background(), examples)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, 2, r.runCount, "one runner reused across both examples")

	summary := Summarize(outcomes)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 0, summary.Failed)

	require.NoError(t, e.Close())
	assert.True(t, r.closed)
}

func TestExecutorStopsOnRunnerSpawnError(t *testing.T) {
	registry := harvest.NewRegistry()
	e := NewExecutor(registry)
	_, err := e.Run(context.Background(), []harvest.Example{{Name: "a", Language: "missing"}})
	assert.Error(t, err)
}

func TestExecutorRecordsFailedMatchWithoutStopping(t *testing.T) {
	registry := harvest.NewRegistry()
	r := &fakeRunner{id: "shell", result: harvest.RunResult{Matched: false, Actual: "nope"}}
	registry.RegisterLanguage("shell", nil, func() (harvest.Runner, error) { return r, nil })

	e := NewExecutor(registry)
	outcomes, err := e.Run(context.Background(), []harvest.Example{
		{Name: "a", Language: "shell"},
		{Name: "b", Language: "shell"},
	})
	require.NoError(t, err)
	summary := Summarize(outcomes)
	assert.Equal(t, 0, summary.Passed)
	assert.Equal(t, 2, summary.Failed)
}

func TestExecutorRunsEveryExampleBeforeClosingRunner(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockRunner(ctrl)

	first := mock.EXPECT().Run(gomock.Any(), gomock.Any()).Return(harvest.RunResult{Matched: true}, nil)
	second := mock.EXPECT().Run(gomock.Any(), gomock.Any()).Return(harvest.RunResult{Matched: true}, nil).After(first)
	mock.EXPECT().Close().Return(nil).After(second)

	registry := harvest.NewRegistry()
	registry.RegisterLanguage("shell", nil, func() (harvest.Runner, error) { return mock, nil })

	e := NewExecutor(registry)
	outcomes, err := e.Run(context.Background(), []harvest.Example{
		{Name: "a", Language: "shell"},
		{Name: "b", Language: "shell"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	require.NoError(t, e.Close())
}

func TestExecutorCancelsOnTimeoutAndSkipsLanguageAfterFailedCancel(t *testing.T) {
	registry := harvest.NewRegistry()
	r := &fakeRunner{id: "shell", result: harvest.RunResult{Timeout: true}, cancelResult: false}
	registry.RegisterLanguage("shell", nil, func() (harvest.Runner, error) { return r, nil })

	e := NewExecutor(registry)
	outcomes, err := e.Run(context.Background(), []harvest.Example{
		{Name: "a", Language: "shell"},
		{Name: "b", Language: "shell"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, 1, r.cancelCount, "cancel is attempted once after the timeout")
	assert.Equal(t, 1, r.runCount, "the second example is skipped once the runner is broken")
	assert.Error(t, outcomes[1].Err)
	assert.False(t, outcomes[1].Passed())
}

func TestExecutorCancelsOnTimeoutAndContinuesAfterSuccessfulCancel(t *testing.T) {
	registry := harvest.NewRegistry()
	r := &fakeRunner{id: "shell", result: harvest.RunResult{Timeout: true}, cancelResult: true}
	registry.RegisterLanguage("shell", nil, func() (harvest.Runner, error) { return r, nil })

	e := NewExecutor(registry)
	outcomes, err := e.Run(context.Background(), []harvest.Example{
		{Name: "a", Language: "shell"},
		{Name: "b", Language: "shell"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, 2, r.cancelCount)
	assert.Equal(t, 2, r.runCount, "a successful cancel leaves the runner usable for the next example")
	assert.NoError(t, outcomes[1].Err)
}

func TestExecutorStopsOnRunError(t *testing.T) {
	registry := harvest.NewRegistry()
	r := &fakeRunner{id: "shell", err: errors.New("boom")}
	registry.RegisterLanguage("shell", nil, func() (harvest.Runner, error) { return r, nil })

	e := NewExecutor(registry)
	outcomes, err := e.Run(context.Background(), []harvest.Example{
		{Name: "a", Language: "shell"},
		{Name: "b", Language: "shell"},
	})
	assert.Error(t, err)
	assert.Len(t, outcomes, 1)
}
