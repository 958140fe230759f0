package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
)

// clock drives eviction deterministically
type clock struct {
	mu sync.Mutex
	at time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

func newTestStore(ttl time.Duration) (*Store, *clock) {
	c := &clock{at: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = c.now
	return s, c
}

// touch runs one empty Get/Save turn so the id exists and its turn lock is
// free again
func touch(s *Store, id string) *domain.DialogueSession {
	sess := s.Get(id)
	s.Save(sess)
	return sess
}

func TestGet_CreatesCollectingSession(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	sess := s.Get("s1")

	require.NotNil(t, sess)
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, domain.StepCollecting, sess.Step)
	assert.Equal(t, 1, s.Len())
	s.Save(sess)

	again := s.Get("s1")
	assert.Same(t, sess, again, "same id returns the same session")
	s.Save(again)
}

func TestTurnLockSerializesTurns(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	sess := s.Get("s1")
	sess.Append(domain.SpeakerUser, "primeira")

	acquired := make(chan *domain.DialogueSession)
	go func() {
		acquired <- s.Get("s1")
	}()

	select {
	case <-acquired:
		t.Fatal("second turn got the session while the first still held it")
	case <-time.After(50 * time.Millisecond):
	}

	s.Save(sess)

	got := <-acquired
	assert.Same(t, sess, got)
	require.Len(t, got.History, 1, "the first turn's write is visible to the second")
	s.Save(got)
}

func TestPeek(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	assert.Nil(t, s.Peek("ghost"))
	assert.Equal(t, 0, s.Len(), "peek never creates a session")

	sess := s.Get("s1")
	sess.Append(domain.SpeakerUser, "oi")
	s.Save(sess)

	snap := s.Peek("s1")
	require.NotNil(t, snap)
	assert.NotSame(t, sess, snap, "peek returns a copy, not the live session")
	require.Len(t, snap.History, 1)
	assert.Equal(t, "oi", snap.History[0].Text)

	// mutating the copy must not reach the stored session
	snap.History[0].Text = "alterada"
	live := s.Get("s1")
	assert.Equal(t, "oi", live.History[0].Text)
	s.Save(live)
}

func TestTTLEviction(t *testing.T) {
	s, c := newTestStore(time.Hour)

	sess := s.Get("s1")
	sess.Step = domain.StepConfirming
	s.Save(sess)

	t.Run("within ttl the session survives", func(t *testing.T) {
		c.advance(59 * time.Minute)
		got := s.Get("s1")
		assert.Equal(t, domain.StepConfirming, got.Step)
		s.Save(got)
	})

	t.Run("past ttl a fresh session replaces it", func(t *testing.T) {
		c.advance(2 * time.Hour)
		fresh := s.Get("s1")
		assert.Equal(t, domain.StepCollecting, fresh.Step)
		assert.NotSame(t, sess, fresh)
		s.Save(fresh)
	})

	t.Run("access to one id sweeps the others", func(t *testing.T) {
		touch(s, "s2")
		c.advance(2 * time.Hour)
		touch(s, "s3")
		assert.Equal(t, 1, s.Len(), "only s3 remains")
	})
}

func TestTTLEviction_SkipsSearchingSessions(t *testing.T) {
	s, c := newTestStore(time.Hour)

	touch(s, "busy")
	require.True(t, s.TryLockForSearch("busy"))

	c.advance(3 * time.Hour)
	touch(s, "other")
	assert.Equal(t, 2, s.Len(), "a session with a search in flight is never swept")

	s.Unlock("busy")
	c.advance(3 * time.Hour)
	touch(s, "other2")
	assert.Equal(t, 1, s.Len(), "after unlock the idle sessions are swept")
}

func TestTryLockForSearch(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	touch(s, "s1")

	assert.True(t, s.TryLockForSearch("s1"))
	assert.False(t, s.TryLockForSearch("s1"), "second lock attempt must fail")

	s.Unlock("s1")
	assert.True(t, s.TryLockForSearch("s1"), "slot is free again after unlock")
}

func TestTryLockForSearch_UnknownSession(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	assert.False(t, s.TryLockForSearch("never-seen"))
	s.Unlock("never-seen") // must not panic
}

func TestTryLockForSearch_Concurrent(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	touch(s, "s1")

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.TryLockForSearch("s1") {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins, "exactly one goroutine may hold the search slot")
}

func TestSave_RefreshesDeadline(t *testing.T) {
	s, c := newTestStore(time.Hour)

	sess := s.Get("s1")
	c.advance(50 * time.Minute)
	s.Save(sess)

	c.advance(50 * time.Minute)
	got := s.Get("s1")
	assert.Same(t, sess, got, "save pushed the eviction deadline forward")
	s.Save(got)
}
