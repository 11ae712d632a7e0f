// Package mocks provides testify mocks of the adapter contract.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/host"
)

// MockAdapter is a mock of adapter.Adapter.
type MockAdapter struct {
	mock.Mock
}

var _ adapter.Adapter = (*MockAdapter)(nil)

// NewMockAdapter creates a MockAdapter that asserts its expectations when
// the test ends.
func NewMockAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAdapter {
	m := &MockAdapter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockAdapterExpecter sets expectations with argument matchers.
type MockAdapterExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expecter for m.
func (m *MockAdapter) EXPECT() *MockAdapterExpecter {
	return &MockAdapterExpecter{mock: &m.Mock}
}

func (m *MockAdapter) Host() host.Host {
	ret := m.Called()
	return ret.Get(0).(host.Host)
}

func (e *MockAdapterExpecter) Host() *mock.Call {
	return e.mock.On("Host")
}

func (m *MockAdapter) Capabilities() host.Capabilities {
	ret := m.Called()
	return ret.Get(0).(host.Capabilities)
}

func (e *MockAdapterExpecter) Capabilities() *mock.Call {
	return e.mock.On("Capabilities")
}

func (m *MockAdapter) FileSystem() adapter.FileSystem {
	ret := m.Called()
	fs, _ := ret.Get(0).(adapter.FileSystem)
	return fs
}

func (e *MockAdapterExpecter) FileSystem() *mock.Call {
	return e.mock.On("FileSystem")
}

func (m *MockAdapter) Environment() adapter.Environment {
	ret := m.Called()
	env, _ := ret.Get(0).(adapter.Environment)
	return env
}

func (e *MockAdapterExpecter) Environment() *mock.Call {
	return e.mock.On("Environment")
}

func (m *MockAdapter) UI() adapter.UI {
	ret := m.Called()
	ui, _ := ret.Get(0).(adapter.UI)
	return ui
}

func (e *MockAdapterExpecter) UI() *mock.Call {
	return e.mock.On("UI")
}

func (m *MockAdapter) ExecuteCommand(ctx context.Context, command string, opts *adapter.CommandOptions) adapter.CommandResult {
	ret := m.Called(ctx, command, opts)
	if fn, ok := ret.Get(0).(func(context.Context, string, *adapter.CommandOptions) adapter.CommandResult); ok {
		return fn(ctx, command, opts)
	}
	return ret.Get(0).(adapter.CommandResult)
}

func (e *MockAdapterExpecter) ExecuteCommand(ctx, command, opts any) *mock.Call {
	return e.mock.On("ExecuteCommand", ctx, command, opts)
}

// Ok is a successful result with stdout set.
func Ok(stdout string) adapter.CommandResult {
	return adapter.CommandResult{Success: true, Stdout: stdout}
}

// Exit is a failed result with the given exit code and stderr.
func Exit(code int, stderr string) adapter.CommandResult {
	return adapter.CommandResult{
		ExitCode: code,
		Stderr:   stderr,
		Error:    &adapter.CommandError{Code: adapter.CodeExitStatus, Message: stderr},
	}
}
