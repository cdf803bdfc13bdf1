package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"aoa/internal/models"
	"aoa/internal/storage"

	"go.uber.org/zap"
)

var testLog = zap.NewNop().Sugar()

// memStore is an in-memory stand-in for every repository the services use.
type memStore struct {
	mu        sync.Mutex
	accounts  map[string]*models.Account
	profiles  []models.Profile
	admins    map[string]bool
	posts     []models.Post
	votes     map[[2]string]models.Vote
	comments  []models.Comment
	reactions map[[2]string]models.CommentReaction
	reports   []models.Report
	ads       []models.Ad
	failWith  error
}

func newMemStore() *memStore {
	return &memStore{
		accounts:  map[string]*models.Account{},
		admins:    map[string]bool{},
		votes:     map[[2]string]models.Vote{},
		reactions: map[[2]string]models.CommentReaction{},
	}
}

type memAccounts struct{ *memStore }

func (m memAccounts) CreateWithProfile(_ context.Context, a *models.Account) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	cp := *a
	m.accounts[a.ID] = &cp
	p := models.Profile{AnonNumber: uint(len(m.profiles) + 1), UserID: a.ID}
	m.profiles = append(m.profiles, p)
	return &p, nil
}

func (m memAccounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m memAccounts) FindByID(_ context.Context, id string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m memAccounts) MarkConfirmed(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok && a.ConfirmedAt == nil {
		a.ConfirmedAt = &at
	}
	return nil
}

type memProfiles struct{ *memStore }

func (m memProfiles) FindByUserID(_ context.Context, userID string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m memProfiles) FindByUserIDs(_ context.Context, ids []string) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Profile
	for _, p := range m.profiles {
		if want[p.UserID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) addProfile(userID string, n uint) {
	m.profiles = append(m.profiles, models.Profile{AnonNumber: n, UserID: userID})
}

type memPosts struct{ *memStore }

func (m memPosts) Create(_ context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.posts = append(m.posts, *p)
	return nil
}

func (m memPosts) Get(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m memPosts) Recent(_ context.Context, limit int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.Post(nil), m.posts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m memPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memVotes struct{ *memStore }

func (m memVotes) Upsert(_ context.Context, v *models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.votes[[2]string{v.PostID, v.VoterID}] = *v
	return nil
}

func (m memVotes) Find(_ context.Context, postID, voterID string) (*models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.votes[[2]string{postID, voterID}]; ok {
		return &v, nil
	}
	return nil, ErrNotFound
}

func (m memVotes) ListByPost(ctx context.Context, postID string) ([]models.Vote, error) {
	return m.ListByPosts(ctx, []string{postID})
}

func (m memVotes) ListByPosts(_ context.Context, ids []string) ([]models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Vote
	for _, v := range m.votes {
		if want[v.PostID] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memStore) castVotes(postID string, left, right int) {
	for i := 0; i < left; i++ {
		id := postID + "-l" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		m.votes[[2]string{postID, id}] = models.Vote{PostID: postID, VoterID: id, Choice: models.ChoiceLeft}
	}
	for i := 0; i < right; i++ {
		id := postID + "-r" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		m.votes[[2]string{postID, id}] = models.Vote{PostID: postID, VoterID: id, Choice: models.ChoiceRight}
	}
}

type memComments struct{ *memStore }

func (m memComments) Create(_ context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = append(m.comments, *c)
	return nil
}

func (m memComments) Get(_ context.Context, id string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m memComments) ListByPost(_ context.Context, postID string) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memReactions struct{ *memStore }

func (m memReactions) Find(_ context.Context, commentID, userID string) (*models.CommentReaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reactions[[2]string{commentID, userID}]; ok {
		return &r, nil
	}
	return nil, ErrNotFound
}

func (m memReactions) Upsert(_ context.Context, r *models.CommentReaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reactions[[2]string{r.CommentID, r.UserID}] = *r
	return nil
}

func (m memReactions) Delete(_ context.Context, commentID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reactions, [2]string{commentID, userID})
	return nil
}

func (m memReactions) ListByComments(_ context.Context, ids []string) ([]models.CommentReaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.CommentReaction
	for _, r := range m.reactions {
		if want[r.CommentID] {
			out = append(out, r)
		}
	}
	return out, nil
}

type memReports struct{ *memStore }

func (m memReports) Create(_ context.Context, r *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, *r)
	return nil
}

func (m memReports) List(_ context.Context, limit int) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.Report(nil), m.reports...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m memReports) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reports {
		if r.ID == id {
			m.reports = append(m.reports[:i], m.reports[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memAds struct{ *memStore }

func (m memAds) Create(_ context.Context, ad *models.Ad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.ads = append(m.ads, *ad)
	return nil
}

func (m memAds) Get(_ context.Context, id string) (*models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ad := range m.ads {
		if ad.ID == id {
			cp := ad
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m memAds) SetActive(_ context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ads {
		if m.ads[i].ID == id {
			m.ads[i].IsActive = active
			return nil
		}
	}
	return ErrNotFound
}

func (m memAds) ListRecent(_ context.Context, limit int) ([]models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.Ad(nil), m.ads...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListLive deliberately skips the window filter so SelectAds is the only
// thing enforcing it in service tests.
func (m memAds) ListLive(_ context.Context, _ time.Time) ([]models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []models.Ad
	for _, ad := range m.ads {
		if ad.IsActive {
			out = append(out, ad)
		}
	}
	return out, nil
}

// memBlobs records uploads and hands out predictable URLs.
type memBlobs struct {
	mu        sync.Mutex
	objects   map[string]string
	uploads   int
	signs     int
	uploadErr error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string]string{}}
}

func (b *memBlobs) Upload(_ context.Context, path, contentType string, body io.Reader, _ int64, overwrite bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads++
	if b.uploadErr != nil {
		return b.uploadErr
	}
	if _, ok := b.objects[path]; ok && !overwrite {
		return storage.ErrObjectExists
	}
	_, _ = io.Copy(io.Discard, body)
	b.objects[path] = contentType
	return nil
}

func (b *memBlobs) PublicURL(path string) string {
	return "https://cdn.test/" + path
}

func (b *memBlobs) SignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.signs++
	return "https://signed.test/" + path + "?sig=1", nil
}

func (b *memBlobs) Delete(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, path)
	return nil
}
