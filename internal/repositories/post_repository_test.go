package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Runs against a real server only when TEST_MONGO_URI is set.
func setupTestMongo(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("eventmories_test_" + time.Now().Format("20060102150405"))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoPostRepository(t *testing.T) {
	repo := NewMongoPostRepository(setupTestMongo(t))
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	first := &models.Post{FeedID: 1, UserID: 1, Content: "Cake was great"}
	require.NoError(t, repo.CreatePost(ctx, first))
	time.Sleep(5 * time.Millisecond)
	second := &models.Post{FeedID: 1, UserID: 2, Content: "first dance (video)"}
	require.NoError(t, repo.CreatePost(ctx, second))
	require.NoError(t, repo.CreatePost(ctx, &models.Post{FeedID: 2, UserID: 1, Content: "CAKE elsewhere"}))

	posts, err := repo.GetPostsByFeedID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)

	found, err := repo.SearchPosts(ctx, []uint{1}, "cake")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, first.ID, found[0].ID)

	// regex metacharacters are matched literally
	found, err = repo.SearchPosts(ctx, []uint{1, 2}, "(video)")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, repo.DeletePost(ctx, first.ID.Hex()))
	_, err = repo.GetPostByID(ctx, first.ID.Hex())
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.ErrorIs(t, repo.DeletePost(ctx, first.ID.Hex()), ErrPostNotFound)
}

func TestMongoPostRepository_InvalidID(t *testing.T) {
	repo := &MongoPostRepository{}
	_, err := repo.GetPostByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.ErrorIs(t, repo.DeletePost(context.Background(), "nope"), ErrPostNotFound)

	posts, err := repo.SearchPosts(context.Background(), nil, "x")
	require.NoError(t, err)
	assert.Empty(t, posts)
}
