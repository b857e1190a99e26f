package suggest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pilot/internal/llm"
)

type fakeLLM struct {
	response   string
	err        error
	delay      time.Duration
	calls      atomic.Int32
	lastPrompt string
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.calls.Add(1)
	f.lastPrompt = prompt
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.response, f.err
}

func (f *fakeLLM) GenerateChat(_ context.Context, _ []llm.Message, _ llm.ModelTier) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeLLM) Close() error { return nil }

func TestSuggestFieldsAndRoles(t *testing.T) {
	fake := &fakeLLM{response: `{"fields":["Technology","Design"],"roles":["Developer"]}`}
	c := NewClient(fake)

	got, err := c.Suggest(context.Background(), Input{Interests: []string{"computers"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Technology", "Design"}, got.Fields)
	assert.Equal(t, []string{"Developer"}, got.Roles)
}

func TestSuggestScopedToSelectedField(t *testing.T) {
	fake := &fakeLLM{response: `{"fields":["ignored"],"roles":["UX Designer","UI Designer"]}`}
	c := NewClient(fake)

	got, err := c.Suggest(context.Background(), Input{
		Interests:     []string{"art"},
		SelectedField: "Design",
	})
	require.NoError(t, err)
	assert.Nil(t, got.Fields, "field-scoped requests return roles only")
	assert.Len(t, got.Roles, 2)
	assert.Contains(t, fake.lastPrompt, "Design")
}

func TestSuggestCollapsesConcurrentIdenticalRequests(t *testing.T) {
	fake := &fakeLLM{
		response: `{"fields":["Technology"],"roles":["Developer"]}`,
		delay:    50 * time.Millisecond,
	}
	c := NewClient(fake)
	input := Input{Interests: []string{"computers"}}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Suggest(context.Background(), input)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fake.calls.Load(), "identical in-flight requests share one call")
}

func TestSuggestWrapsErrors(t *testing.T) {
	c := NewClient(&fakeLLM{err: errors.New("quota")})
	_, err := c.Suggest(context.Background(), Input{Interests: []string{"x"}})
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)

	c = NewClient(&fakeLLM{response: "not json"})
	_, err = c.Suggest(context.Background(), Input{Interests: []string{"x"}})
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestShouldFetch(t *testing.T) {
	empty := Input{}
	ok, _ := ShouldFetch(empty, "")
	assert.False(t, ok, "no signal, no fetch")

	input := Input{Interests: []string{"music"}}
	ok, key := ShouldFetch(input, "")
	assert.True(t, ok)
	assert.True(t, strings.Contains(key, "music"))

	ok, _ = ShouldFetch(input, key)
	assert.False(t, ok, "unchanged input does not refetch")

	input.Strengths = []string{"patience"}
	ok, _ = ShouldFetch(input, key)
	assert.True(t, ok)
}

func TestDebouncerOnlyLastTriggerFires(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	for i := 0; i < 4; i++ {
		d.Trigger(context.Background(), func() { fired.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return fired.Load() == 1 },
		200*time.Millisecond, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerRespectsCancelledContext(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	var fired atomic.Int32
	d.Trigger(ctx, func() { fired.Add(1) })
	cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
