package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mindbridge/internal/assessment"
	"mindbridge/internal/cache"
	"mindbridge/internal/model"
	"mindbridge/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*model.User
	chats map[string]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, chats: map[string]int{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return "", repository.ErrDuplicate
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (r *fakeUserRepo) UpdateMood(_ context.Context, id, mood string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.MentalHealth.CurrentMood = mood
	}
	return nil
}

func (r *fakeUserRepo) RecordChatSession(_ context.Context, id string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[id]++
	return nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role model.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.AnonymousSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*model.AnonymousSession{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *model.AnonymousSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.Token] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, token string) (*model.AnonymousSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) SetScreeningResult(_ context.Context, id string, result *assessment.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			if s.Profile.ScreeningResults == nil {
				s.Profile.ScreeningResults = map[string]*assessment.Result{}
			}
			s.Profile.ScreeningResults[result.InstrumentCode] = result
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeSessionRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			s.IsActive = false
		}
	}
	return nil
}

func (r *fakeSessionRepo) CountActive(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sessions {
		if s.IsActive && s.ExpiresAt.After(now) {
			n++
		}
	}
	return n, nil
}

type fakeSessionCache struct {
	mu       sync.Mutex
	sessions map[string]*model.AnonymousSession
	gets     int
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: map[string]*model.AnonymousSession{}}
}

func (c *fakeSessionCache) Set(_ context.Context, s *model.AnonymousSession, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *s
	c.sessions[s.Token] = &cp
	return nil
}

func (c *fakeSessionCache) Get(_ context.Context, token string) (*model.AnonymousSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if s, ok := c.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (c *fakeSessionCache) Delete(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
	return nil
}

type fakeAnalytics struct {
	mu       sync.Mutex
	counters map[string]map[string]int64
}

func newFakeAnalytics() *fakeAnalytics {
	return &fakeAnalytics{counters: map[string]map[string]int64{}}
}

func (a *fakeAnalytics) Increment(_ context.Context, group, field string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.counters[group] == nil {
		a.counters[group] = map[string]int64{}
	}
	a.counters[group][field]++
	return nil
}

func (a *fakeAnalytics) Counters(_ context.Context, group string) (map[string]int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := map[string]int64{}
	for k, v := range a.counters[group] {
		out[k] = v
	}
	return out, nil
}

func (a *fakeAnalytics) get(group, field string) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counters[group][field]
}

type fakeAssessmentRepo struct {
	mu      sync.Mutex
	records []*model.AssessmentRecord
}

func (r *fakeAssessmentRepo) Create(_ context.Context, rec *model.AssessmentRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = fmt.Sprintf("rec-%d", len(r.records)+1)
	r.records = append(r.records, rec)
	return rec.ID, nil
}

func (r *fakeAssessmentRepo) ListByOwner(_ context.Context, owner model.Owner, limit int64) ([]*model.AssessmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.AssessmentRecord
	for i := len(r.records) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.records[i].Owner == owner {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

type fakeChatLogRepo struct {
	mu   sync.Mutex
	logs []*model.ChatLog
}

func (r *fakeChatLogRepo) Create(_ context.Context, log *model.ChatLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

type fakeForumRepo struct {
	mu      sync.Mutex
	seq     int
	posts   map[string]*model.Post
	replies []*model.Reply
}

func newFakeForumRepo() *fakeForumRepo {
	return &fakeForumRepo{posts: map[string]*model.Post{}}
}

func (r *fakeForumRepo) CreatePost(_ context.Context, post *model.Post) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	post.ID = fmt.Sprintf("post-%d", r.seq)
	cp := *post
	r.posts[post.ID] = &cp
	return post.ID, nil
}

func (r *fakeForumRepo) GetPost(_ context.Context, id string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeForumRepo) GetPosts(_ context.Context, ids []string) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Post
	for _, id := range ids {
		if p, ok := r.posts[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeForumRepo) ListPosts(_ context.Context, category model.ForumCategory, limit int64) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Post
	for _, p := range r.posts {
		if category == "" || p.Category == category {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeForumRepo) CreateReply(_ context.Context, reply *model.Reply) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	reply.ID = fmt.Sprintf("reply-%d", r.seq)
	r.replies = append(r.replies, reply)
	if p, ok := r.posts[reply.PostID]; ok {
		p.Replies++
	}
	return reply.ID, nil
}

func (r *fakeForumRepo) ListReplies(_ context.Context, postID string) ([]*model.Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Reply
	for _, rep := range r.replies {
		if rep.PostID == postID {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (r *fakeForumRepo) IncrementLikes(_ context.Context, postID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	p.Likes++
	return p.Likes, nil
}

type fakeTrending struct {
	mu     sync.Mutex
	scores map[string]float64
}

func newFakeTrending() *fakeTrending {
	return &fakeTrending{scores: map[string]float64{}}
}

func (c *fakeTrending) Bump(_ context.Context, postID string, by float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores[postID] += by
	return nil
}

func (c *fakeTrending) Top(_ context.Context, limit int) ([]cache.TrendingEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []cache.TrendingEntry
	for id, s := range c.scores {
		out = append(out, cache.TrendingEntry{PostID: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].PostID < out[j].PostID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

type fakeTherapistRepo struct {
	mu         sync.Mutex
	seq        int
	therapists map[string]*model.Therapist
}

func newFakeTherapistRepo() *fakeTherapistRepo {
	return &fakeTherapistRepo{therapists: map[string]*model.Therapist{}}
}

func (r *fakeTherapistRepo) Create(_ context.Context, t *model.Therapist) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.therapists {
		if existing.Email == t.Email {
			return "", repository.ErrDuplicate
		}
	}
	r.seq++
	t.ID = fmt.Sprintf("therapist-%d", r.seq)
	cp := *t
	r.therapists[t.ID] = &cp
	return t.ID, nil
}

func (r *fakeTherapistRepo) GetByID(_ context.Context, id string) (*model.Therapist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.therapists[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTherapistRepo) List(_ context.Context, status model.TherapistStatus) ([]*model.Therapist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Therapist
	for _, t := range r.therapists {
		if status == "" || t.Status == status {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTherapistRepo) UpdateStatus(_ context.Context, id string, status model.TherapistStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.therapists[id]
	if !ok {
		return false, nil
	}
	t.Status = status
	return true, nil
}

func (r *fakeTherapistRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.therapists[id]; !ok {
		return false, nil
	}
	delete(r.therapists, id)
	return true, nil
}

func (r *fakeTherapistRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.therapists {
		if t.Status == model.TherapistActive {
			n++
		}
	}
	return n, nil
}

type broadcastCall struct {
	channel string
	msgType string
	payload interface{}
}

type recordingBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *recordingBroadcaster) Broadcast(channel, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{channel, msgType, payload})
}

func (b *recordingBroadcaster) of(channel, msgType string) []broadcastCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []broadcastCall
	for _, c := range b.calls {
		if c.channel == channel && c.msgType == msgType {
			out = append(out, c)
		}
	}
	return out
}
