package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscan_backend/internal/feature/analysis/domain/entity"
)

// stubAnalyzer counts calls and returns a fixed classification or error.
type stubAnalyzer struct {
	result *entity.TextAnalysis
	err    error
	calls  int
}

func (s *stubAnalyzer) AnalyzeText(ctx context.Context, text string) (*entity.TextAnalysis, error) {
	s.calls++
	return s.result, s.err
}

func TestNewCachingTextAnalyzer_Defaults(t *testing.T) {
	t.Parallel()

	t.Run("zero values fall back", func(t *testing.T) {
		t.Parallel()
		c := NewCachingTextAnalyzer(nil, 0, &stubAnalyzer{}, "")
		assert.Equal(t, 24*time.Hour, c.ttl)
		assert.Equal(t, "analysis", c.namespace)
	})

	t.Run("negative ttl falls back", func(t *testing.T) {
		t.Parallel()
		c := NewCachingTextAnalyzer(nil, -time.Minute, &stubAnalyzer{}, "")
		assert.Equal(t, 24*time.Hour, c.ttl)
	})

	t.Run("explicit values win", func(t *testing.T) {
		t.Parallel()
		c := NewCachingTextAnalyzer(nil, time.Hour, &stubAnalyzer{}, "analysis:gemini")
		assert.Equal(t, time.Hour, c.ttl)
		assert.Equal(t, "analysis:gemini", c.namespace)
	})
}

// Redisクライアントがnilの場合はキャッシュを素通しする。
func TestCachingTextAnalyzer_NilRedisPassthrough(t *testing.T) {
	t.Parallel()

	want := &entity.TextAnalysis{Sentiment: 0.8, Emotion: "joy", Confidence: 0.9}
	inner := &stubAnalyzer{result: want}
	c := NewCachingTextAnalyzer(nil, time.Hour, inner, "analysis")

	got, err := c.AnalyzeText(context.Background(), "feeling great")

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, inner.calls)
}

func TestCachingTextAnalyzer_AnalyzeText(t *testing.T) {
	t.Parallel()

	happy := &entity.TextAnalysis{Sentiment: 0.9, Emotion: "joy", Confidence: 0.95}
	happyJSON, err := json.Marshal(happy)
	require.NoError(t, err)

	t.Run("hit skips the analyzer", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		inner := &stubAnalyzer{}
		c := NewCachingTextAnalyzer(rdb, time.Hour, inner, "analysis")

		mock.ExpectGet(c.cacheKey("rough day")).SetVal(string(happyJSON))

		got, err := c.AnalyzeText(context.Background(), "rough day")

		require.NoError(t, err)
		assert.Equal(t, happy, got)
		assert.Zero(t, inner.calls, "cache hit must not reach the analyzer")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss asks the analyzer and stores the result", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		inner := &stubAnalyzer{result: happy}
		c := NewCachingTextAnalyzer(rdb, time.Hour, inner, "analysis")

		key := c.cacheKey("what a lovely morning")
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, happyJSON, time.Hour).SetVal("OK")

		got, err := c.AnalyzeText(context.Background(), "what a lovely morning")

		require.NoError(t, err)
		assert.Equal(t, happy, got)
		assert.Equal(t, 1, inner.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("analyzer error propagates, nothing stored", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		wantErr := errors.New("classifier unavailable")
		inner := &stubAnalyzer{err: wantErr}
		c := NewCachingTextAnalyzer(rdb, time.Hour, inner, "analysis")

		mock.ExpectGet(c.cacheKey("some text")).RedisNil()

		_, err := c.AnalyzeText(context.Background(), "some text")

		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupted entry is dropped and refreshed", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		inner := &stubAnalyzer{result: happy}
		c := NewCachingTextAnalyzer(rdb, time.Hour, inner, "analysis")

		key := c.cacheKey("just another day")
		mock.ExpectGet(key).SetVal("{not json")
		mock.ExpectDel(key).SetVal(1)
		mock.ExpectSet(key, happyJSON, time.Hour).SetVal("OK")

		got, err := c.AnalyzeText(context.Background(), "just another day")

		require.NoError(t, err)
		assert.Equal(t, happy, got)
		assert.Equal(t, 1, inner.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCachingTextAnalyzer_CacheKey(t *testing.T) {
	t.Parallel()

	c := NewCachingTextAnalyzer(nil, time.Hour, &stubAnalyzer{}, "analysis")

	assert.True(t, strings.HasPrefix(c.cacheKey("feeling great"), "analysis:"))
	assert.NotEqual(t, c.cacheKey("feeling great"), c.cacheKey("feeling awful"))
	assert.Equal(t, c.cacheKey("feeling great"), c.cacheKey("feeling great"))
}
