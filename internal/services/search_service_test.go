package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "Ana", "ana@example.com")
	bo := env.createUser(t, "Bo", "bo@example.com")
	wedding := env.createFeedWith(t, "Wedding", ana)
	private := env.createFeedWith(t, "Private", bo)

	env.createTextPost(t, ana, wedding, "The CAKE was amazing")
	env.createTextPost(t, ana, wedding, "first dance")
	env.createTextPost(t, bo, private, "cake in another feed")

	results, err := env.search.Search(ctx, ana.ID, "  cake ")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The CAKE was amazing", results[0].Content)
	assert.Equal(t, wedding.ID, results[0].Feed.ID)
	assert.Equal(t, "Wedding", results[0].Feed.Name)

	none, err := env.search.Search(ctx, ana.ID, "fireworks")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	blank, err := env.search.Search(ctx, ana.ID, "   ")
	require.NoError(t, err)
	assert.Empty(t, blank)

	recent, err := env.search.RecentSearches(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fireworks", "cake"}, recent)
}

func TestRecentSearches_CappedAndDeduplicated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "Ana", "ana@example.com")

	for _, term := range []string{"a", "b", "c", "d", "e", "f", "b"} {
		_, err := env.search.Search(ctx, ana.ID, term)
		require.NoError(t, err)
	}
	recent, err := env.search.RecentSearches(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "f", "e", "d", "c"}, recent)
}

func TestSearch_FailedReadYieldsEmptyResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "Ana", "ana@example.com")
	wedding := env.createFeedWith(t, "Wedding", ana)
	env.createTextPost(t, ana, wedding, "cake")
	env.posts.searchErr = errors.New("posts collection unavailable")

	results, err := env.search.Search(ctx, ana.ID, "cake")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	// membership lookup failing degrades the same way
	env.posts.searchErr = nil
	require.NoError(t, env.db.Migrator().DropTable(&models.FeedMember{}))
	results, err = env.search.Search(ctx, ana.ID, "cake")
	require.NoError(t, err)
	assert.Empty(t, results)
}
