package redis

import (
	"testing"
	"time"

	"shorturl/cache/cacher"
	"shorturl/models"
	"shorturl/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	accessed := time.Date(2021, 7, 2, 8, 0, 0, 0, time.UTC)

	t.Run("hit", func(t *testing.T) {
		url := &models.Url{
			ID:            1337,
			LongURL:       "http://example.com",
			Created:       time.Date(2021, 7, 1, 8, 0, 0, 0, time.UTC),
			LastAccessed:  &accessed,
			AccessCounter: 3,
		}
		buffer, err := serialize(&cacher.Entry{Url: url})
		require.NoError(t, err)

		entry, err := deserialize(buffer.Bytes())
		require.NoError(t, err)
		assert.NoError(t, entry.Err)
		assert.Equal(t, url.ID, entry.Url.ID)
		assert.Equal(t, url.LongURL, entry.Url.LongURL)
		assert.True(t, url.Created.Equal(entry.Url.Created))
		assert.True(t, accessed.Equal(*entry.Url.LastAccessed))
		assert.Equal(t, url.AccessCounter, entry.Url.AccessCounter)
	})
	t.Run("miss keeps the sentinel error", func(t *testing.T) {
		buffer, err := serialize(&cacher.Entry{Err: repository.ErrRecordNotFound})
		require.NoError(t, err)

		entry, err := deserialize(buffer.Bytes())
		require.NoError(t, err)
		assert.Nil(t, entry.Url)
		assert.ErrorIs(t, entry.Err, repository.ErrRecordNotFound)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := deserialize([]byte("not gob"))
		assert.Error(t, err)
	})
}
