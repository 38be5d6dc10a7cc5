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

	"go.uber.org/mock/gomock"

	"github.com/execdoc/execdoc/harvest"
)

// MockRunner is a hand-written gomock mock for harvest.Runner, used where a
// test needs to assert on call order (e.g. every Run happening before
// Close) rather than just checking a fixed input/output pair.
type MockRunner struct {
	ctrl     *gomock.Controller
	recorder *MockRunnerMockRecorder
}

type MockRunnerMockRecorder struct {
	mock *MockRunner
}

func NewMockRunner(ctrl *gomock.Controller) *MockRunner {
	m := &MockRunner{ctrl: ctrl}
	m.recorder = &MockRunnerMockRecorder{m}
	return m
}

func (m *MockRunner) EXPECT() *MockRunnerMockRecorder { return m.recorder }

func (m *MockRunner) ID() string {
	ret := m.ctrl.Call(m, "ID")
	id, _ := ret[0].(string)
	return id
}

func (r *MockRunnerMockRecorder) ID() *gomock.Call {
	return r.mock.ctrl.RecordCall(r.mock, "ID")
}

func (m *MockRunner) Run(ctx context.Context, ex harvest.Example) (harvest.RunResult, error) {
	ret := m.ctrl.Call(m, "Run", ctx, ex)
	result, _ := ret[0].(harvest.RunResult)
	err, _ := ret[1].(error)
	return result, err
}

func (r *MockRunnerMockRecorder) Run(ctx, ex interface{}) *gomock.Call {
	return r.mock.ctrl.RecordCall(r.mock, "Run", ctx, ex)
}

func (m *MockRunner) Cancel(ctx context.Context, ex harvest.Example) bool {
	ret := m.ctrl.Call(m, "Cancel", ctx, ex)
	ok, _ := ret[0].(bool)
	return ok
}

func (r *MockRunnerMockRecorder) Cancel(ctx, ex interface{}) *gomock.Call {
	return r.mock.ctrl.RecordCall(r.mock, "Cancel", ctx, ex)
}

func (m *MockRunner) Close() error {
	ret := m.ctrl.Call(m, "Close")
	err, _ := ret[0].(error)
	return err
}

func (r *MockRunnerMockRecorder) Close() *gomock.Call {
	return r.mock.ctrl.RecordCall(r.mock, "Close")
}
