package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"author-registry/internal/domains/author"
)

var testHash = "$argon2id$v=19$m=65536,t=3,p=2$" + strings.Repeat("s", 22) + "$" + strings.Repeat("k", 43)

// harness is one fresh, empty author table behind a Repository.
type harness struct {
	repo author.Repository
	// exec runs a raw statement with ? placeholders rewritten for the dialect.
	exec func(ctx context.Context, query string, args ...any) error
}

func newAuthor(t *testing.T, username string) *author.Author {
	t.Helper()
	token := strings.Repeat("ab", 16)
	email := fmt.Sprintf("%s@exotic.com", strings.ReplaceAll(uuid.NewString(), "-", ""))

	a, err := author.New(uuid.New(), &token, "https://cdn.example.com/"+username+".png", email, testHash, username)
	require.NoError(t, err)
	return a
}

func usernames(authors []*author.Author) []string {
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.Username())
	}
	return out
}

// runContract checks the behaviour every author.Repository implementation shares.
func runContract(t *testing.T, setup func(t *testing.T) harness) {
	ctx := context.Background()

	t.Run("insert then find by id", func(t *testing.T) {
		h := setup(t)
		a := newAuthor(t, "joe-exotic")
		require.NoError(t, h.repo.Insert(ctx, a))

		got, found, err := h.repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, a, got)
	})

	t.Run("entity-encoded username survives round trip", func(t *testing.T) {
		h := setup(t)
		a := newAuthor(t, "&amp;amp;amp;lt;b&amp;amp;amp;gt;x")
		assert.Equal(t, "x", a.Username())
		require.NoError(t, h.repo.Insert(ctx, a))

		got, found, err := h.repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, a, got)

		want, err := json.Marshal(a)
		require.NoError(t, err)
		raw, err := json.Marshal(got)
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(raw))
	})

	t.Run("insert without token", func(t *testing.T) {
		h := setup(t)
		a := newAuthor(t, "carole")
		require.NoError(t, a.SetActivationToken(nil))
		require.NoError(t, a.SetAvatarURL(""))
		require.NoError(t, h.repo.Insert(ctx, a))

		got, found, err := h.repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		require.True(t, found)
		assert.Nil(t, got.ActivationToken())
		assert.Equal(t, "", got.AvatarURL())
	})

	t.Run("find missing id", func(t *testing.T) {
		h := setup(t)

		got, found, err := h.repo.FindByID(ctx, uuid.New())
		require.NoError(t, err, "a miss is not an error")
		assert.False(t, found)
		assert.Nil(t, got)
	})

	t.Run("duplicate id", func(t *testing.T) {
		h := setup(t)
		a := newAuthor(t, "joe-exotic")
		require.NoError(t, h.repo.Insert(ctx, a))

		err := h.repo.Insert(ctx, a)
		assert.ErrorIs(t, err, author.ErrStorageFailure)
	})

	t.Run("duplicate username", func(t *testing.T) {
		h := setup(t)
		require.NoError(t, h.repo.Insert(ctx, newAuthor(t, "joe-exotic")))

		err := h.repo.Insert(ctx, newAuthor(t, "joe-exotic"))
		assert.ErrorIs(t, err, author.ErrStorageFailure)
	})

	t.Run("update", func(t *testing.T) {
		h := setup(t)
		a := newAuthor(t, "joe-exotic")
		require.NoError(t, h.repo.Insert(ctx, a))

		require.NoError(t, a.SetActivationToken(nil))
		require.NoError(t, a.SetEmail("joe@tigerking.com"))
		require.NoError(t, a.SetUsername("tiger-king"))
		require.NoError(t, h.repo.Update(ctx, a))

		got, found, err := h.repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, a, got)
		assert.True(t, got.IsActivated())
	})

	t.Run("update missing row is a no-op", func(t *testing.T) {
		h := setup(t)
		a := newAuthor(t, "ghost")

		require.NoError(t, h.repo.Update(ctx, a))

		_, found, err := h.repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		assert.False(t, found, "update must not create a row")
	})

	t.Run("delete", func(t *testing.T) {
		h := setup(t)
		a := newAuthor(t, "joe-exotic")
		keep := newAuthor(t, "carole")
		require.NoError(t, h.repo.Insert(ctx, a))
		require.NoError(t, h.repo.Insert(ctx, keep))

		require.NoError(t, h.repo.Delete(ctx, a.ID()))

		_, found, err := h.repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		assert.False(t, found)

		_, found, err = h.repo.FindByID(ctx, keep.ID())
		require.NoError(t, err)
		assert.True(t, found, "delete must only remove the matching row")

		assert.NoError(t, h.repo.Delete(ctx, uuid.New()), "deleting a missing row is not an error")
	})

	t.Run("find by username orders results", func(t *testing.T) {
		h := setup(t)
		for _, name := range []string{"carla", "anna", "bob", "barbara"} {
			require.NoError(t, h.repo.Insert(ctx, newAuthor(t, name)))
		}

		got, err := h.repo.FindByUsername(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"anna", "barbara", "carla"}, usernames(got))
	})

	t.Run("find by username treats wildcards literally", func(t *testing.T) {
		h := setup(t)
		for _, name := range []string{"joe_exotic", "joeXexotic", "100%real", `back\slash`} {
			require.NoError(t, h.repo.Insert(ctx, newAuthor(t, name)))
		}

		got, err := h.repo.FindByUsername(ctx, "_")
		require.NoError(t, err)
		assert.Equal(t, []string{"joe_exotic"}, usernames(got))

		got, err = h.repo.FindByUsername(ctx, "%")
		require.NoError(t, err)
		assert.Equal(t, []string{"100%real"}, usernames(got))

		got, err = h.repo.FindByUsername(ctx, `\`)
		require.NoError(t, err)
		assert.Equal(t, []string{`back\slash`}, usernames(got))

		got, err = h.repo.FindByUsername(ctx, "exotic")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"joe_exotic", "joeXexotic"}, usernames(got))
	})

	t.Run("find by username substring", func(t *testing.T) {
		h := setup(t)
		joe := newAuthor(t, "Joe Exotic")
		require.NoError(t, h.repo.Insert(ctx, joe))
		require.NoError(t, h.repo.Insert(ctx, newAuthor(t, "Carole Baskin")))

		got, err := h.repo.FindByUsername(ctx, "Joe")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, joe, got[0])
	})

	t.Run("find by username without match", func(t *testing.T) {
		h := setup(t)
		require.NoError(t, h.repo.Insert(ctx, newAuthor(t, "joe-exotic")))

		got, err := h.repo.FindByUsername(ctx, "baskin")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("find by username rejects empty term", func(t *testing.T) {
		h := setup(t)

		_, err := h.repo.FindByUsername(ctx, "  <b></b> ")
		assert.ErrorIs(t, err, author.ErrInvalidFormat)
	})

	t.Run("corrupt row", func(t *testing.T) {
		h := setup(t)
		id := uuid.New()
		err := h.exec(ctx,
			"INSERT INTO author ("+columns+") VALUES (?, ?, ?, ?, ?, ?)",
			id[:], nil, "", "not-an-email", testHash, "corrupt",
		)
		require.NoError(t, err)

		_, found, err := h.repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, author.ErrStorageFailure)
		assert.ErrorIs(t, err, author.ErrInvalidFormat, "the validation failure stays in the chain")
		assert.False(t, found)

		_, err = h.repo.FindByUsername(ctx, "corrupt")
		assert.ErrorIs(t, err, author.ErrStorageFailure)
	})
}
