package intelligence

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/alexanderramin/gradplan/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slowServer(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(10 * time.Second):
		case <-r.Context().Done():
		}
	}
}

// TestTimelineService_Timeout_GenerationFailure checks that a hung model
// server turns into a GenerationFailure within the task timeout rather than
// blocking the run.
func TestTimelineService_Timeout_GenerationFailure(t *testing.T) {
	srv := newHTTPTestServer(t, slowServer(t))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 0
	cfg = cfg.WithTaskTimeout(llm.TaskTimeline, 500)

	svc := NewTimelineService(llm.NewOllamaClient(cfg, llm.NoopObserver{}))

	start := time.Now()
	_, err := svc.GenerateTimeline(context.Background(), generationRequest())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrGenerationFailure)
	assert.ErrorIs(t, err, llm.ErrTimeout)
	assert.Less(t, elapsed, 3*time.Second)
}

// TestChecklistService_Timeout_DeterministicFallback checks that warnings
// are still produced when the model times out.
func TestChecklistService_Timeout_DeterministicFallback(t *testing.T) {
	srv := newHTTPTestServer(t, slowServer(t))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 0
	cfg = cfg.WithTaskTimeout(llm.TaskValidate, 500)

	svc := NewChecklistService(llm.NewOllamaClient(cfg, llm.NoopObserver{}))
	in := checklistInput()

	start := time.Now()
	got := svc.Validate(context.Background(), in)

	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Equal(t, planner.DetectGaps(in.Tasks, in.Requirements, in.Profile, in.Window, in.BufferDays), got)
}

// TestLLMClient_ContextCancellation checks that caller cancellation wins
// over a long task timeout.
func TestLLMClient_ContextCancellation(t *testing.T) {
	srv := newHTTPTestServer(t, slowServer(t))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.TimeoutMs = 10000
	cfg.MaxRetries = 0

	client := llm.NewOllamaClient(cfg, llm.NoopObserver{})
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	pairs := NewQnAService(client).Generate(ctx, testProfile(), testPrograms())

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, FallbackQnA(), pairs)
}
