package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memPostRepo is an in-memory stand-in for the Mongo post collection.
type memPostRepo struct {
	mu      sync.Mutex
	posts   []models.Post
	clock   time.Time
	listErr   error
	searchErr error
	calls     int
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{clock: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *memPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.clock = r.clock.Add(time.Second)
	post.ID = primitive.NewObjectID()
	post.CreatedAt = r.clock
	r.posts = append(r.posts, *post)
	return nil
}

func (r *memPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, p := range r.posts {
		if p.ID.Hex() == id {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrPostNotFound
}

func (r *memPostRepo) GetPostsByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(p models.Post) bool { return want[p.ID.Hex()] }), nil
}

func (r *memPostRepo) GetPostsByFeedID(_ context.Context, feedID uint) ([]models.Post, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.filter(func(p models.Post) bool { return p.FeedID == feedID }), nil
}

func (r *memPostRepo) SearchPosts(_ context.Context, feedIDs []uint, term string) ([]models.Post, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	in := make(map[uint]bool, len(feedIDs))
	for _, id := range feedIDs {
		in[id] = true
	}
	term = strings.ToLower(term)
	return r.filter(func(p models.Post) bool {
		return in[p.FeedID] && strings.Contains(strings.ToLower(p.Content), term)
	}), nil
}

func (r *memPostRepo) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for i, p := range r.posts {
		if p.ID.Hex() == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (r *memPostRepo) filter(keep func(models.Post) bool) []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := []models.Post{}
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// memBucket records uploads; err makes every upload fail.
type memBucket struct {
	mu      sync.Mutex
	name    string
	objects map[string][]byte
	err     error
}

func newMemBucket(name string) *memBucket {
	return &memBucket{name: name, objects: map[string][]byte{}}
}

func (b *memBucket) Upload(_ context.Context, path string, r io.Reader, _ string) error {
	if b.err != nil {
		return b.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[path] = data
	return nil
}

func (b *memBucket) PublicURL(path string) string {
	return "https://cdn.test/" + b.name + "/" + path
}

type failingLikes struct {
	repositories.LikeRepository
}

func (failingLikes) GetLikesByPostIDs(context.Context, []string) ([]models.Like, error) {
	return nil, errors.New("likes table unavailable")
}

type failingNotifications struct {
	repositories.NotificationRepository
}

func (failingNotifications) CreateNotification(context.Context, *models.Notification) error {
	return errors.New("notifications table unavailable")
}

// failingCommentReads stores comments but cannot read them back.
type failingCommentReads struct {
	repositories.CommentRepository
}

func (failingCommentReads) GetCommentsByPostID(context.Context, string) ([]models.Comment, error) {
	return nil, errors.New("comments table unavailable")
}

func (failingCommentReads) CountByPostID(context.Context, string) (int64, error) {
	return 0, errors.New("comments table unavailable")
}

type failingIdentity struct{}

func (failingIdentity) Resolve(context.Context, uint) (*models.Identity, error) {
	return nil, errors.New("profiles table unavailable")
}

type testEnv struct {
	db       *gorm.DB
	redis    *miniredis.Miniredis
	posts    *memPostRepo
	media    *memBucket
	avatars  *memBucket
	users    *repositories.PostgresUserRepository
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	notes    repositories.NotificationRepository
	resolver IdentityResolver
	identity *IdentityService
	notifier *NotificationService
	postSvc  *PostService
	actions  *InteractionService
	feeds    *FeedService
	search   *SearchService
	profiles *ProfileService
	auth     *AuthService
}

type envOption func(*testEnv)

func withLikes(repo repositories.LikeRepository) envOption {
	return func(e *testEnv) { e.likes = repo }
}

func withNotifications(repo repositories.NotificationRepository) envOption {
	return func(e *testEnv) { e.notes = repo }
}

func withCommentReadFailure() envOption {
	return func(e *testEnv) { e.comments = failingCommentReads{e.comments} }
}

// withActorResolver replaces the identity lookup used by likes and comments.
func withActorResolver(r IdentityResolver) envOption {
	return func(e *testEnv) { e.resolver = r }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repositories.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := &testEnv{
		db:       db,
		redis:    mr,
		posts:    newMemPostRepo(),
		media:    newMemBucket("post-media"),
		avatars:  newMemBucket("avatars"),
		users:    repositories.NewPostgresUserRepository(db),
		likes:    repositories.NewPostgresLikeRepository(db),
		comments: repositories.NewPostgresCommentRepository(db),
		notes:    repositories.NewPostgresNotificationRepository(db),
	}
	for _, opt := range opts {
		opt(e)
	}

	saves := repositories.NewPostgresSavedPostRepository(db)
	members := repositories.NewPostgresFeedMemberRepository(db)
	feedRepo := repositories.NewPostgresFeedRepository(db)
	profiles := repositories.NewPostgresProfileRepository(db)

	e.identity = NewIdentityService(e.users, profiles, repositories.NewRedisIdentityCacheRepository(rdb))
	var resolver IdentityResolver = e.identity
	if e.resolver != nil {
		resolver = e.resolver
	}
	e.notifier = NewNotificationService(e.notes)
	e.postSvc = NewPostService(e.posts, e.likes, saves, e.comments, members, e.identity, e.media)
	e.actions = NewInteractionService(e.posts, e.likes, saves, e.comments, members, resolver, e.notifier)
	e.feeds = NewFeedService(feedRepo, members, e.postSvc)
	e.search = NewSearchService(e.posts, feedRepo, members, repositories.NewRedisSearchHistoryRepository(rdb))
	e.profiles = NewProfileService(profiles, e.identity, e.avatars)
	e.auth = NewAuthService(e.users, repositories.NewRedisSessionRepository(rdb), e.identity, nil, nil, "test-secret")
	return e
}

func (e *testEnv) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	require.NoError(t, e.users.CreateUser(context.Background(), user))
	return user
}

// createFeedWith creates a feed owned by the first user and joins the rest.
func (e *testEnv) createFeedWith(t *testing.T, name string, owner *models.User, others ...*models.User) *models.Feed {
	t.Helper()
	ctx := context.Background()
	feed, err := e.feeds.CreateFeed(ctx, owner.ID, name)
	require.NoError(t, err)
	for _, u := range others {
		_, err := e.feeds.JoinFeed(ctx, u.ID, feed.Code)
		require.NoError(t, err)
	}
	return feed
}

func (e *testEnv) createTextPost(t *testing.T, author *models.User, feed *models.Feed, text string) models.FeedPost {
	t.Helper()
	posts, err := e.postSvc.CreatePost(context.Background(), CreatePostInput{UserID: author.ID, FeedID: feed.ID, Content: text})
	require.NoError(t, err)
	require.NotEmpty(t, posts)
	return posts[0]
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func fileUpload(name, body string) *Upload {
	return &Upload{Filename: name, ContentType: "application/octet-stream", Body: bytes.NewBufferString(body)}
}
