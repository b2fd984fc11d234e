package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickdo/tickdo/internal/ticktick"
)

func TestClientRequiresToken(t *testing.T) {
	t.Setenv("TICKTICK_ACCESS_TOKEN", "")

	sc, err := NewServerContext(context.Background(), Config{})
	require.NoError(t, err)

	_, err = sc.Client()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TICKTICK_ACCESS_TOKEN")
	assert.False(t, sc.HasClient())
}

func TestClientIsLazyAndCached(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{AccessToken: "tok"})
	require.NoError(t, err)
	assert.False(t, sc.HasClient(), "client must not be created before first use")

	first, err := sc.Client()
	require.NoError(t, err)
	assert.True(t, sc.HasClient())

	second, err := sc.Client()
	require.NoError(t, err)
	assert.Same(t, first.(*ticktick.Client), second.(*ticktick.Client))
}

func TestClientFromEnvToken(t *testing.T) {
	t.Setenv("TICKTICK_ACCESS_TOKEN", "env-tok")

	sc, err := NewServerContext(context.Background(), Config{})
	require.NoError(t, err)

	_, err = sc.Client()
	require.NoError(t, err)
}

func TestSetClientOverrides(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{})
	require.NoError(t, err)

	fake := ticktick.NewClient("fake")
	sc.SetClient(fake)

	got, err := sc.Client()
	require.NoError(t, err)
	assert.Same(t, fake, got.(*ticktick.Client))
}

func TestResolverConfiguration(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{DisplayTimezone: "Asia/Shanghai"})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Shanghai", sc.Resolver().Display())

	t.Setenv("TICKTICK_DISPLAY_TIMEZONE", "Europe/Berlin")
	sc, err = NewServerContext(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", sc.Resolver().Display(), "empty config must fall back to the env var")
}

func TestShutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{AccessToken: "tok"})
	require.NoError(t, err)

	_, err = sc.Client()
	require.NoError(t, err)

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	_, err = sc.Client()
	require.Error(t, err, "a shut-down context must not hand out clients")

	// Idempotent.
	require.NoError(t, sc.Shutdown())
}

func TestMetricsDefaultsToNoop(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{})
	require.NoError(t, err)

	require.NotNil(t, sc.Metrics())
	// The no-op recorder must be safe to use.
	sc.Metrics().RecordToolInvocation(context.Background(), "t", "success", 0)

	sc.SetMetrics(nil)
	require.NotNil(t, sc.Metrics(), "SetMetrics(nil) must not clear the recorder")
}
