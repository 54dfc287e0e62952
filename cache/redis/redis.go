package redis

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"gourluses/cache/cacher"
	"time"

	redigo "github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

const keyPrefix = "gourluses:"

func serialize(entry *cacher.Entry) (*bytes.Buffer, error) {
	var buffer bytes.Buffer
	err := gob.NewEncoder(&buffer).Encode(entry)
	return &buffer, err
}

func deserialize(valBytes []byte) (*cacher.Entry, error) {
	var entry cacher.Entry
	err := gob.NewDecoder(bytes.NewReader(valBytes)).Decode(&entry)
	return &entry, err
}

type redis struct {
	pool *redigo.Pool
	log  *zap.Logger
}

// New returns a redis-backed engine. Redis failures are logged and treated
// as cache misses so the repository keeps serving.
func New(host string, port int, logger *zap.Logger) cacher.Engine {
	pool := &redigo.Pool{
		MaxIdle:     8,
		IdleTimeout: 5 * time.Minute,
		Dial: func() (redigo.Conn, error) {
			return redigo.Dial("tcp", fmt.Sprintf("%s:%d", host, port),
				redigo.DialConnectTimeout(time.Second),
				redigo.DialReadTimeout(time.Second),
				redigo.DialWriteTimeout(time.Second),
			)
		},

		// Periodic check
		TestOnBorrow: func(c redigo.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
	return &redis{pool: pool, log: logger.Named("redis")}
}

func (r *redis) Get(key string) (*cacher.Entry, bool) {
	data, err := redigo.Bytes(r.do("GET", keyPrefix+key))
	if err == redigo.ErrNil {
		return nil, false
	}
	if err != nil {
		r.log.Warn("get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	entry, err := deserialize(data)
	if err != nil {
		r.log.Warn("deserialize failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return entry, true
}

func (r *redis) Set(key string, entry *cacher.Entry, expiration time.Duration) {
	buffer, err := serialize(entry)
	if err != nil {
		r.log.Warn("serialize failed", zap.String("key", key), zap.Error(err))
		return
	}
	args := []interface{}{keyPrefix + key, buffer.Bytes()}
	if secs := int64(expiration / time.Second); secs > 0 {
		args = append(args, "EX", secs)
	}
	if _, err := r.do("SET", args...); err != nil {
		r.log.Warn("set failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *redis) Delete(key string) {
	if _, err := r.do("DEL", keyPrefix+key); err != nil {
		r.log.Warn("delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *redis) do(cmd string, args ...interface{}) (interface{}, error) {
	conn := r.pool.Get()
	defer conn.Close()
	return conn.Do(cmd, args...)
}
