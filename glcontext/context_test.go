package glcontext_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PazerOP/imgui-desktop/glcontext"
	invariant "github.com/PazerOP/imgui-desktop/internal/assert"
	"github.com/PazerOP/imgui-desktop/internal/fakes"
	"github.com/PazerOP/imgui-desktop/platform"
)

func newContext(t *testing.T) (*fakes.Platform, platform.NativeWindow, *glcontext.Context) {
	t.Helper()
	p := fakes.NewPlatform()
	w, err := p.CreateWindow(platform.WindowOptions{Width: 100, Height: 100})
	require.NoError(t, err)
	ctx, err := glcontext.NewRegistry(p, nil).GetOrCreate(w)
	require.NoError(t, err)
	return p, w, ctx
}

func TestScopeNestingMakesCurrentOnce(t *testing.T) {
	p, w, ctx := newContext(t)
	_, mc0, rel0 := p.Counts()
	owner := glcontext.NewOwner()

	outer := glcontext.Enter(owner, w, ctx)
	inner := glcontext.Enter(owner, w, ctx)
	innermost := glcontext.Enter(owner, w, ctx)
	assert.Equal(t, 3, ctx.Depth())

	_, mc, rel := p.Counts()
	assert.Equal(t, 1, mc-mc0)
	assert.Equal(t, 0, rel-rel0)

	innermost.Exit()
	inner.Exit()
	assert.Equal(t, 1, ctx.Depth())
	_, _, rel = p.Counts()
	assert.Equal(t, 0, rel-rel0)

	outer.Exit()
	assert.Equal(t, 0, ctx.Depth())
	_, mc, rel = p.Counts()
	assert.Equal(t, 1, mc-mc0)
	assert.Equal(t, 1, rel-rel0)
	assert.Nil(t, p.Current)
}

func TestScopeDepthBalancesForAnySequence(t *testing.T) {
	p, w, ctx := newContext(t)
	owner := glcontext.NewOwner()
	_, mc0, rel0 := p.Counts()

	// Nesting patterns: each entry is the depth reached before unwinding.
	patterns := []int{1, 4, 2, 7, 1, 3}
	for _, n := range patterns {
		scopes := make([]*glcontext.Scope, 0, n)
		for i := 0; i < n; i++ {
			scopes = append(scopes, glcontext.Enter(owner, w, ctx))
			assert.Equal(t, i+1, ctx.Depth())
		}
		for i := len(scopes) - 1; i >= 0; i-- {
			scopes[i].Exit()
			assert.GreaterOrEqual(t, ctx.Depth(), 0)
		}
		assert.Equal(t, 0, ctx.Depth())
	}

	_, mc, rel := p.Counts()
	assert.Equal(t, len(patterns), mc-mc0)
	assert.Equal(t, len(patterns), rel-rel0)
}

func TestScopeDoubleExitIsNoop(t *testing.T) {
	_, w, ctx := newContext(t)
	owner := glcontext.NewOwner()
	outer := glcontext.Enter(owner, w, ctx)
	inner := glcontext.Enter(owner, w, ctx)
	inner.Exit()
	inner.Exit()
	assert.Equal(t, 1, ctx.Depth())
	outer.Exit()
	assert.Equal(t, 0, ctx.Depth())
}

func TestScopeBlocksOtherOwner(t *testing.T) {
	_, w, ctx := newContext(t)
	a, b := glcontext.NewOwner(), glcontext.NewOwner()

	s := glcontext.Enter(a, w, ctx)
	entered := make(chan *glcontext.Scope)
	go func() { entered <- glcontext.Enter(b, w, ctx) }()

	select {
	case <-entered:
		t.Fatal("second owner entered while the first held the context")
	case <-time.After(20 * time.Millisecond):
	}

	s.Exit()
	select {
	case sb := <-entered:
		assert.Equal(t, 1, ctx.Depth())
		sb.Exit()
	case <-time.After(time.Second):
		t.Fatal("second owner never entered")
	}
}

func TestScopeMakeCurrentFailureContinues(t *testing.T) {
	if invariant.Enabled {
		t.Skip("make current failures panic in debug builds")
	}
	p, w, ctx := newContext(t)
	p.MakeCurrentErr = errors.New("bad surface")

	var ran bool
	glcontext.Do(glcontext.NewOwner(), w, ctx, func() { ran = true })
	assert.True(t, ran)
	assert.Equal(t, 0, ctx.Depth())
}

func TestContextDelete(t *testing.T) {
	p, _, ctx := newContext(t)
	h := ctx.Handle()
	ctx.Delete()
	ctx.Delete()
	require.Len(t, p.Deleted, 1)
	assert.Equal(t, h, p.Deleted[0])
}

func TestVersionOrdering(t *testing.T) {
	assert.True(t, glcontext.Version{3, 3}.Less(glcontext.Version{4, 1}))
	assert.True(t, glcontext.Version{4, 1}.Less(glcontext.Version{4, 5}))
	assert.Equal(t, 0, glcontext.Version{2, 1}.Compare(glcontext.Version{2, 1}))
	assert.True(t, glcontext.Version{4, 1}.AtLeast(3, 2))
	assert.False(t, glcontext.Version{2, 1}.AtLeast(3, 0))
	assert.Equal(t, "4.1", glcontext.Version{4, 1}.String())
	assert.Equal(t, "unknown", glcontext.Version{}.String())
	assert.False(t, glcontext.Version{}.IsValid())
}

func TestParseVersion(t *testing.T) {
	v, err := glcontext.ParseVersion("3.3")
	require.NoError(t, err)
	assert.Equal(t, glcontext.Version{3, 3}, v)

	v, err = glcontext.ParseVersion("2")
	require.NoError(t, err)
	assert.Equal(t, glcontext.Version{2, 0}, v)

	_, err = glcontext.ParseVersion("x.1")
	assert.Error(t, err)
	_, err = glcontext.ParseVersion("0.0")
	assert.Error(t, err)

	var tv glcontext.Version
	require.NoError(t, tv.UnmarshalText([]byte("4.5")))
	assert.Equal(t, glcontext.Version{4, 5}, tv)
}

func TestDefaultAttemptsDescending(t *testing.T) {
	attempts := glcontext.DefaultAttempts()
	require.NotEmpty(t, attempts)
	for i := 1; i < len(attempts); i++ {
		assert.True(t, attempts[i].Version.Less(attempts[i-1].Version), "attempt %d not descending", i)
	}
	assert.Equal(t, platform.ProfileCompatibility, attempts[len(attempts)-1].Profile)
}

func TestConcurrentOwnersSerialize(t *testing.T) {
	_, w, ctx := newContext(t)
	var wg sync.WaitGroup
	var mu sync.Mutex
	inside := 0
	maxInside := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			owner := glcontext.NewOwner()
			glcontext.Do(owner, w, ctx, func() {
				glcontext.Do(owner, w, ctx, func() {
					mu.Lock()
					inside++
					if inside > maxInside {
						maxInside = inside
					}
					mu.Unlock()
					time.Sleep(time.Millisecond)
					mu.Lock()
					inside--
					mu.Unlock()
				})
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxInside)
	assert.Equal(t, 0, ctx.Depth())
}
