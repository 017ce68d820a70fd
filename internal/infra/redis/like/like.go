package infra_redis_like

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/moviematch/internal/model"
)

// upsertScript keeps one record per (movie, user).
// KEYS: id sequence, user hash (tmdbId -> "id:flag"), user order zset (tmdbId by id).
// ARGV: tmdbId, flag ("1" or "0"). Returns the record id.
var upsertScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[2], ARGV[1])
local id
if current then
	id = string.match(current, '^(%d+):')
else
	id = redis.call('INCR', KEYS[1])
	redis.call('ZADD', KEYS[3], id, ARGV[1])
end
redis.call('HSET', KEYS[2], ARGV[1], id .. ':' .. ARGV[2])
return tonumber(id)
`)

type Driver struct {
	client *redis.Client
	prefix string
}

func New(
	client *redis.Client,
	prefix string,
) *Driver {
	return &Driver{
		client: client,
		prefix: prefix,
	}
}

func (d *Driver) seqKey() string {
	return d.prefix + ":likes:seq"
}

func (d *Driver) userKey(username string) string {
	return d.prefix + ":likes:user:" + username
}

func (d *Driver) orderKey(username string) string {
	return d.prefix + ":likes:order:" + username
}

func (d *Driver) Save(ctx context.Context, like model.Like) (model.Like, error) {
	flag := "0"
	if like.Liked {
		flag = "1"
	}

	id, err := upsertScript.Run(d.client,
		[]string{d.seqKey(), d.userKey(like.Username), d.orderKey(like.Username)},
		strconv.FormatInt(like.TmdbID, 10), flag,
	).Int64()
	if err != nil {
		return model.Like{}, fmt.Errorf("upsert like: %w", err)
	}

	like.ID = id
	return like, nil
}

func (d *Driver) Liked(ctx context.Context, username string) ([]model.Like, error) {
	movieIDs, err := d.client.ZRange(d.orderKey(username), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read like order: %w", err)
	}

	likes := make([]model.Like, 0, len(movieIDs))
	if len(movieIDs) == 0 {
		return likes, nil
	}

	values, err := d.client.HMGet(d.userKey(username), movieIDs...).Result()
	if err != nil {
		return nil, fmt.Errorf("read likes: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		id, liked, err := parseRecord(raw)
		if err != nil {
			return nil, err
		}
		if !liked {
			continue
		}
		tmdbID, err := strconv.ParseInt(movieIDs[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt movie id %q: %w", movieIDs[i], err)
		}
		likes = append(likes, model.Like{
			ID:       id,
			TmdbID:   tmdbID,
			Username: username,
			Liked:    liked,
		})
	}
	return likes, nil
}

func parseRecord(raw string) (int64, bool, error) {
	idPart, flag, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, false, fmt.Errorf("corrupt like record %q", raw)
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt like record %q: %w", raw, err)
	}
	return id, flag == "1", nil
}
