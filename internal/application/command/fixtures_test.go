package command

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/story"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/internal/domain/word"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

// In-memory fakes for the repository and token interfaces. They mirror the
// semantics the postgres/redis implementations promise: sentinel errors from
// the shared package, unique constraints, and atomic counter updates.

type memUserRepo struct {
	mu    sync.Mutex
	users map[user.ID]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[user.ID]*user.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return shared.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return shared.ErrEmailTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id user.ID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r *memUserRepo) UpdateStreak(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return shared.ErrUserNotFound
	}
	stored.StreakCount = u.StreakCount
	stored.LastActivityDate = u.LastActivityDate
	stored.UpdatedAt = u.UpdatedAt
	return nil
}

func (r *memUserRepo) UpdateDailyGoal(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return shared.ErrUserNotFound
	}
	stored.DailyGoal = u.DailyGoal
	return nil
}

type activityKey struct {
	userID user.ID
	date   string
}

func keyFor(userID user.ID, date time.Time) activityKey {
	return activityKey{userID: userID, date: date.Format("2006-01-02")}
}

type memActivityRepo struct {
	mu      sync.Mutex
	records map[activityKey]*activity.DailyActivity

	// conflictOnce simulates losing a get-or-create race: the next Create
	// inserts the row on behalf of "the other request" and reports conflict.
	conflictOnce bool
	creates      int
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{records: make(map[activityKey]*activity.DailyActivity)}
}

func (r *memActivityRepo) Get(_ context.Context, userID user.ID, date time.Time) (*activity.DailyActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[keyFor(userID, date)]
	if !ok {
		return nil, shared.ErrActivityNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *memActivityRepo) Create(_ context.Context, rec *activity.DailyActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	key := keyFor(rec.UserID, rec.Date)
	if r.conflictOnce {
		r.conflictOnce = false
		cp := *rec
		r.records[key] = &cp
		return shared.ErrConcurrentCreateConflict
	}
	if _, ok := r.records[key]; ok {
		return shared.ErrConcurrentCreateConflict
	}
	cp := *rec
	r.records[key] = &cp
	return nil
}

func (r *memActivityRepo) AddCounters(_ context.Context, userID user.ID, date time.Time, d activity.Delta) (*activity.DailyActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[keyFor(userID, date)]
	if !ok {
		return nil, shared.ErrActivityNotFound
	}
	rec.Apply(d, time.Now())
	cp := *rec
	return &cp, nil
}

func (r *memActivityRepo) MarkGoalCompleted(_ context.Context, userID user.ID, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[keyFor(userID, date)]
	if !ok {
		return shared.ErrActivityNotFound
	}
	rec.DailyGoalCompleted = true
	return nil
}

func (r *memActivityRepo) History(_ context.Context, userID user.ID, from, to time.Time) ([]*activity.DailyActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*activity.DailyActivity
	for _, rec := range r.records {
		if rec.UserID == userID && !rec.Date.Before(from) && !rec.Date.After(to) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memWordRepo struct {
	mu    sync.Mutex
	words map[word.ID]*word.Word
}

func newMemWordRepo() *memWordRepo {
	return &memWordRepo{words: make(map[word.ID]*word.Word)}
}

func (r *memWordRepo) Create(_ context.Context, w *word.Word) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.words {
		if existing.UserID == w.UserID && existing.Word == w.Word && existing.Language == w.Language {
			return shared.ErrWordAlreadyExists
		}
	}
	cp := *w
	r.words[w.ID] = &cp
	return nil
}

func (r *memWordRepo) GetByID(_ context.Context, userID user.ID, id word.ID) (*word.Word, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.words[id]
	if !ok || w.UserID != userID {
		return nil, shared.ErrWordNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *memWordRepo) Update(_ context.Context, w *word.Word) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.words[w.ID]; !ok {
		return shared.ErrWordNotFound
	}
	cp := *w
	r.words[w.ID] = &cp
	return nil
}

func (r *memWordRepo) Delete(_ context.Context, userID user.ID, id word.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.words[id]
	if !ok || w.UserID != userID {
		return shared.ErrWordNotFound
	}
	delete(r.words, id)
	return nil
}

func (r *memWordRepo) List(_ context.Context, userID user.ID, _ word.ListFilter) ([]*word.Word, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*word.Word
	for _, w := range r.words {
		if w.UserID == userID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

type libraryKey struct {
	userID  user.ID
	storyID story.ID
}

type memStoryRepo struct {
	mu      sync.Mutex
	stories map[story.ID]*story.Story
	library map[libraryKey]*story.UserStory
}

func newMemStoryRepo() *memStoryRepo {
	return &memStoryRepo{
		stories: make(map[story.ID]*story.Story),
		library: make(map[libraryKey]*story.UserStory),
	}
}

func (r *memStoryRepo) Create(_ context.Context, s *story.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.stories {
		if existing.Slug == s.Slug {
			return shared.ErrSlugTaken
		}
	}
	cp := *s
	r.stories[s.ID] = &cp
	return nil
}

func (r *memStoryRepo) GetByID(_ context.Context, id story.ID) (*story.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok {
		return nil, shared.ErrStoryNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memStoryRepo) GetBySlug(_ context.Context, slug string) (*story.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stories {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, shared.ErrStoryNotFound
}

func (r *memStoryRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stories {
		if s.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *memStoryRepo) List(_ context.Context, _ story.ListFilter) ([]*story.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*story.Story
	for _, s := range r.stories {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memStoryRepo) SaveToLibrary(_ context.Context, us *story.UserStory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := libraryKey{userID: us.UserID, storyID: us.StoryID}
	if _, ok := r.library[key]; ok {
		return nil
	}
	cp := *us
	r.library[key] = &cp
	return nil
}

func (r *memStoryRepo) GetLibraryEntry(_ context.Context, userID user.ID, storyID story.ID) (*story.UserStory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	us, ok := r.library[libraryKey{userID: userID, storyID: storyID}]
	if !ok {
		return nil, shared.ErrStoryNotInLibrary
	}
	cp := *us
	return &cp, nil
}

func (r *memStoryRepo) UpdateLastRead(_ context.Context, us *story.UserStory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := libraryKey{userID: us.UserID, storyID: us.StoryID}
	if _, ok := r.library[key]; !ok {
		return shared.ErrStoryNotInLibrary
	}
	cp := *us
	r.library[key] = &cp
	return nil
}

func (r *memStoryRepo) ListLibrary(_ context.Context, userID user.ID) ([]*story.UserStory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*story.UserStory
	for key, us := range r.library {
		if key.userID == userID {
			cp := *us
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memTokenStore struct {
	mu     sync.Mutex
	next   int
	tokens map[string]user.ID
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]user.ID)}
}

func (s *memTokenStore) Issue(_ context.Context, userID user.ID, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	token := fmt.Sprintf("token-%d", s.next)
	s.tokens[token] = userID
	return token, nil
}

func (s *memTokenStore) Resolve(_ context.Context, token string) (user.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return "", shared.ErrTokenNotFound
	}
	return id, nil
}

func (s *memTokenStore) Refresh(_ context.Context, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token]; !ok {
		return shared.ErrTokenNotFound
	}
	return nil
}

func (s *memTokenStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token]; !ok {
		return shared.ErrTokenNotFound
	}
	delete(s.tokens, token)
	return nil
}

type seqIDGen struct {
	mu   sync.Mutex
	next int
}

func (g *seqIDGen) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

// fixture bundles the fakes most command tests need.
type fixture struct {
	users      *memUserRepo
	activities *memActivityRepo
	words      *memWordRepo
	stories    *memStoryRepo
	tokens     *memTokenStore
	ids        *seqIDGen
	clk        *clock.Fake
	ledger     *Ledger
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		users:      newMemUserRepo(),
		activities: newMemActivityRepo(),
		words:      newMemWordRepo(),
		stories:    newMemStoryRepo(),
		tokens:     newMemTokenStore(),
		ids:        &seqIDGen{},
		clk:        clock.NewFake(now),
	}
	f.ledger = NewLedger(f.activities, f.clk, nil)
	return f
}

// seedUser inserts a user with the given daily goal and no prior activity.
func (f *fixture) seedUser(id user.ID, goal int) *user.User {
	u := &user.User{
		ID:           id,
		Username:     "user-" + id.String(),
		Email:        id.String() + "@example.com",
		PasswordHash: "x",
		DailyGoal:    goal,
		CreatedAt:    f.clk.Now(),
	}
	f.users.users[id] = u
	return u
}
