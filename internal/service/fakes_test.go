package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"devhub-api/internal/models"
	"devhub-api/internal/repository"
)

// fakeStore is an in-memory Store. Documents are cloned on every read and
// write so the service cannot share state with the store by accident.
type fakeStore struct {
	users    map[string]*models.User
	profiles map[string]*models.Profile
	posts    map[string]*models.Post
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*models.User{},
		profiles: map[string]*models.Profile{},
		posts:    map[string]*models.Post{},
	}
}

func clone[T any](src *T) *T {
	raw, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	dst := new(T)
	if err := json.Unmarshal(raw, dst); err != nil {
		panic(err)
	}
	return dst
}

// cloneUser preserves PasswordHash, which the JSON round-trip in clone drops
// because of its `json:"-"` tag.
func cloneUser(src *models.User) *models.User {
	dst := clone(src)
	dst.PasswordHash = src.PasswordHash
	return dst
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	for postID, p := range f.posts {
		if p.UserID == id {
			delete(f.posts, postID)
		}
	}
	delete(f.profiles, id)
	delete(f.users, id)
	return nil
}

func (f *fakeStore) SaveProfile(_ context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	saved := clone(profile)
	saved.Name = ""
	saved.Avatar = ""
	f.profiles[profile.UserID] = saved
	return nil
}

func (f *fakeStore) FindProfileByUserID(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	joined := clone(p)
	if u, ok := f.users[userID]; ok {
		joined.Name = u.Name
		joined.Avatar = u.Avatar
	}
	return joined, nil
}

func (f *fakeStore) ListProfiles(_ context.Context) ([]*models.Profile, error) {
	profiles := []*models.Profile{}
	for userID := range f.profiles {
		p, _ := f.FindProfileByUserID(context.Background(), userID)
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].UpdatedAt.After(profiles[j].UpdatedAt)
	})
	return profiles, nil
}

func (f *fakeStore) CreatePost(_ context.Context, post *models.Post) error {
	post.CreatedAt = time.Now().UTC()
	f.posts[post.ID] = clone(post)
	return nil
}

func (f *fakeStore) FindPostByID(_ context.Context, id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(p), nil
}

func (f *fakeStore) ListPosts(_ context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	for _, p := range f.posts {
		posts = append(posts, clone(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (f *fakeStore) UpdatePost(_ context.Context, post *models.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	f.posts[post.ID] = clone(post)
	return nil
}

func (f *fakeStore) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

// failingMailer always errors, to prove registration is not blocked by mail
type failingMailer struct{ calls int }

func (m *failingMailer) SendWelcome(to, name string) error {
	m.calls++
	return context.DeadlineExceeded
}
