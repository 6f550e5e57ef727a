package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pricofy/voice-translator/internal/domain"
	"github.com/pricofy/voice-translator/internal/kv"
)

func TestRead_EmptyWhenAbsent(t *testing.T) {
	s := NewStore(kv.NewMemory())

	log, err := s.Read(context.Background())
	require.NoError(t, err)
	require.NotNil(t, log)
	require.Len(t, log, 0)
}

func TestAppend_Monotonic(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())

	turns := []domain.Turn{
		{User: "你好"},
		{User: "hello", Computer: "你好"},
		{User: "good morning", Computer: "早上好"},
		{User: "谢谢"},
	}

	prev := domain.Log{}
	for i, turn := range turns {
		log, err := s.Append(ctx, turn)
		require.NoError(t, err)
		require.Len(t, log, i+1)
		require.Equal(t, prev, log[:i])
		require.Equal(t, turn, log[i])

		read, err := s.Read(ctx)
		require.NoError(t, err)
		require.Equal(t, log, read)
		prev = append(domain.Log{}, log...)
	}
}

func TestAppend_WireFormat(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := NewStore(mem)

	_, err := s.Append(ctx, domain.Turn{User: "你好"})
	require.NoError(t, err)
	_, err = s.Append(ctx, domain.Turn{User: "hello", Computer: "你好"})
	require.NoError(t, err)

	raw, err := mem.Get(ctx, "conversation")
	require.NoError(t, err)
	require.JSONEq(t, `[{"user":"你好"},{"user":"hello","computer":"你好"}]`, string(raw))
}

func TestRead_FrontEndWrittenLog(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, "conversation", []byte(`[{"user":"hi","computer":"嗨"},{"user":"好"}]`)))

	log, err := NewStore(mem).Read(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Log{{User: "hi", Computer: "嗨"}, {User: "好"}}, log)
}

func TestRead_NullIsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, "conversation", []byte("null")))

	log, err := NewStore(mem).Read(ctx)
	require.NoError(t, err)
	require.Empty(t, log)
}

func TestRead_CorruptLog(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, "conversation", []byte(`{not json`)))
	s := NewStore(mem)

	_, err := s.Read(ctx)
	require.Error(t, err)

	_, err = s.Append(ctx, domain.Turn{User: "hello"})
	require.Error(t, err)

	raw, err := mem.Get(ctx, "conversation")
	require.NoError(t, err)
	require.Equal(t, `{not json`, string(raw))
}

func TestAppend_RejectsEmptyUser(t *testing.T) {
	s := NewStore(kv.NewMemory())
	_, err := s.Append(context.Background(), domain.Turn{Computer: "你好"})
	require.ErrorIs(t, err, ErrEmptyUtterance)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := NewStore(mem)

	_, err := s.Append(ctx, domain.Turn{User: "你好"})
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	_, err = mem.Get(ctx, "conversation")
	require.ErrorIs(t, err, kv.ErrNotFound)

	log, err := s.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, log)

	// clearing an absent log is fine
	require.NoError(t, s.Clear(ctx))
}

type failingKV struct{ kv.Store }

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func TestAppend_WriteFailure(t *testing.T) {
	s := NewStore(failingKV{kv.NewMemory()})
	_, err := s.Append(context.Background(), domain.Turn{User: "hello"})
	require.ErrorContains(t, err, "disk full")
}

func TestStore_Badger(t *testing.T) {
	ctx := context.Background()
	b, err := kv.NewBadger(kv.BadgerOptions{InMemory: true})
	require.NoError(t, err)
	defer b.Close()
	s := NewStore(b)

	_, err = s.Append(ctx, domain.Turn{User: "hello", Computer: "你好"})
	require.NoError(t, err)
	log, err := s.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Log{{User: "hello", Computer: "你好"}}, log)
}
