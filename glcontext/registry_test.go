package glcontext_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PazerOP/imgui-desktop/glcontext"
	"github.com/PazerOP/imgui-desktop/internal/fakes"
	"github.com/PazerOP/imgui-desktop/platform"
)

func TestRegistryFallsBackThroughAttempts(t *testing.T) {
	p := fakes.NewPlatform()
	p.AcceptContext = func(a platform.GLAttributes) bool {
		return a.Major < 4
	}
	w, _ := p.CreateWindow(platform.WindowOptions{})

	ctx, err := glcontext.NewRegistry(p, nil).GetOrCreate(w)
	require.NoError(t, err)
	assert.Equal(t, glcontext.Version{3, 3}, ctx.Version())
	assert.Equal(t, platform.ProfileCore, ctx.Attempt().Profile)

	require.Len(t, p.Attrs, 3)
	assert.Equal(t, 4, p.Attrs[0].Major)
	assert.Equal(t, 5, p.Attrs[0].Minor)
	assert.Equal(t, 4, p.Attrs[1].Major)
	assert.True(t, p.Attrs[1].ForwardCompatible)
	assert.Equal(t, 3, p.Attrs[2].Major)
	assert.GreaterOrEqual(t, p.ClearErrors, 3)
	assert.Nil(t, p.Current, "new context must not stay current")
}

func TestRegistryRecordsDriverVersion(t *testing.T) {
	p := fakes.NewPlatform()
	p.ReportedVersion = [2]int{4, 6}
	w, _ := p.CreateWindow(platform.WindowOptions{})

	ctx, err := glcontext.NewRegistry(p, []glcontext.Attempt{{Version: glcontext.Version{3, 2}, Profile: platform.ProfileCore}}).GetOrCreate(w)
	require.NoError(t, err)
	assert.Equal(t, glcontext.Version{4, 6}, ctx.Version())
}

func TestRegistryExhaustion(t *testing.T) {
	p := fakes.NewPlatform()
	p.AcceptContext = func(platform.GLAttributes) bool { return false }
	w, _ := p.CreateWindow(platform.WindowOptions{})

	reg := glcontext.NewRegistry(p, nil)
	ctx, err := reg.GetOrCreate(w)
	assert.Nil(t, ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, glcontext.ErrNoContext))
	assert.Equal(t, len(reg.Attempts()), p.ContextCreates)
}

func TestRegistryReturnsSameInstance(t *testing.T) {
	p := fakes.NewPlatform()
	w1, _ := p.CreateWindow(platform.WindowOptions{})
	w2, _ := p.CreateWindow(platform.WindowOptions{})
	reg := glcontext.NewRegistry(p, nil)

	a, err := reg.GetOrCreate(w1)
	require.NoError(t, err)
	b, err := reg.GetOrCreate(w2)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, p.ContextCreates)
	runtime.KeepAlive(a)
}

func TestRegistryConcurrentGetOrCreate(t *testing.T) {
	p := fakes.NewPlatform()
	p.CreateDelay = 10 * time.Millisecond
	w, _ := p.CreateWindow(platform.WindowOptions{})
	reg := glcontext.NewRegistry(p, nil)

	const callers = 16
	results := make([]*glcontext.Context, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			ctx, err := reg.GetOrCreate(w)
			assert.NoError(t, err)
			results[i] = ctx
		}(i)
	}
	close(start)
	wg.Wait()

	for _, ctx := range results {
		assert.Same(t, results[0], ctx)
	}
	creates, _, _ := p.Counts()
	assert.Equal(t, 1, creates)
	assert.Len(t, p.Attrs, 1, "attempt sequence must run once")
}

func TestRegistryRecreatesAfterDelete(t *testing.T) {
	p := fakes.NewPlatform()
	w, _ := p.CreateWindow(platform.WindowOptions{})
	reg := glcontext.NewRegistry(p, nil)

	a, err := reg.GetOrCreate(w)
	require.NoError(t, err)
	a.Delete()

	b, err := reg.GetOrCreate(w)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, p.ContextCreates)
}

func TestGetOrCreateRacesWithDelete(t *testing.T) {
	p := fakes.NewPlatform()
	w, _ := p.CreateWindow(platform.WindowOptions{})
	reg := glcontext.NewRegistry(p, nil)
	first, err := reg.GetOrCreate(w)
	require.NoError(t, err)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 100; j++ {
				ctx, err := reg.GetOrCreate(w)
				assert.NoError(t, err)
				assert.NotNil(t, ctx)
			}
		}()
	}
	close(start)
	first.Delete()
	wg.Wait()

	last, err := reg.GetOrCreate(w)
	require.NoError(t, err)
	assert.NotSame(t, first, last)
	runtime.KeepAlive(first)
}

func TestSharedRegistryIsSingleton(t *testing.T) {
	p := fakes.NewPlatform()
	assert.Same(t, glcontext.Shared(p, nil), glcontext.Shared(fakes.NewPlatform(), nil))
}
