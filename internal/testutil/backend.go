package testutil

import (
	"context"
	"sync"

	"github.com/sessionhub/sessionhub/core"
)

// FakeBackend is a scriptable core.Backend for tests. Unset behavior funcs
// make the corresponding call fail with the provided Err (or a generic one),
// so forgetting to script a call shows up as a hard failure rather than a
// silent success. Call counts are tracked per method.
type FakeBackend struct {
	LoginFunc      func(ctx context.Context, creds core.Credentials) (*core.Session, error)
	ResumeFunc     func(ctx context.Context, hint core.Hint) (*core.Session, error)
	LogoutFunc     func(ctx context.Context, hint core.Hint) error
	ListLoginsFunc func(ctx context.Context) ([]core.Session, error)

	mu    sync.Mutex
	calls map[string]int
}

var _ core.Backend = (*FakeBackend)(nil)

// Login dispatches to LoginFunc.
func (b *FakeBackend) Login(ctx context.Context, creds core.Credentials) (*core.Session, error) {
	b.record("login")
	if b.LoginFunc == nil {
		return nil, errUnscripted("Login")
	}
	return b.LoginFunc(ctx, creds)
}

// Resume dispatches to ResumeFunc.
func (b *FakeBackend) Resume(ctx context.Context, hint core.Hint) (*core.Session, error) {
	b.record("resume")
	if b.ResumeFunc == nil {
		return nil, errUnscripted("Resume")
	}
	return b.ResumeFunc(ctx, hint)
}

// Logout dispatches to LogoutFunc.
func (b *FakeBackend) Logout(ctx context.Context, hint core.Hint) error {
	b.record("logout")
	if b.LogoutFunc == nil {
		return errUnscripted("Logout")
	}
	return b.LogoutFunc(ctx, hint)
}

// ListLogins dispatches to ListLoginsFunc.
func (b *FakeBackend) ListLogins(ctx context.Context) ([]core.Session, error) {
	b.record("listLogins")
	if b.ListLoginsFunc == nil {
		return nil, errUnscripted("ListLogins")
	}
	return b.ListLoginsFunc(ctx)
}

// Calls returns how often the named method ("login", "resume", "logout",
// "listLogins") was invoked.
func (b *FakeBackend) Calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method]
}

func (b *FakeBackend) record(method string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.calls == nil {
		b.calls = map[string]int{}
	}
	b.calls[method]++
}

type unscriptedError string

func (e unscriptedError) Error() string { return "testutil: " + string(e) + " not scripted" }

func errUnscripted(method string) error { return unscriptedError(method) }
