package redis

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"shorturl/cache/cacher"
	"shorturl/models"
	"shorturl/repository"

	redigo "github.com/gomodule/redigo/redis"
)

const keyPrefix = "shorturl:"

type serializable struct {
	Url    *models.Url
	Errmsg string
}

func entry2serializable(entry *cacher.Entry) serializable {
	if entry.Err != nil {
		return serializable{entry.Url, entry.Err.Error()}
	}
	return serializable{entry.Url, ""}
}

func serialized2entry(value serializable) cacher.Entry {
	if value.Errmsg != "" {
		err := errors.New(value.Errmsg)
		if value.Errmsg == repository.ErrRecordNotFound.Error() {
			err = repository.ErrRecordNotFound
		}
		return cacher.Entry{Url: value.Url, Err: err}
	}
	return cacher.Entry{Url: value.Url, Err: nil}
}

func serialize(entry *cacher.Entry) (*bytes.Buffer, error) {
	var buffer bytes.Buffer
	s := entry2serializable(entry)
	err := gob.NewEncoder(&buffer).Encode(s)
	return &buffer, err
}

func deserialize(valBytes []byte) (*cacher.Entry, error) {
	var s serializable
	if err := gob.NewDecoder(bytes.NewReader(valBytes)).Decode(&s); err != nil {
		return nil, err
	}
	entry := serialized2entry(s)
	return &entry, nil
}

type redis struct {
	pool *redigo.Pool
}

func New(host string, port int) cacher.Engine {
	pool := &redigo.Pool{
		MaxIdle:     16,
		IdleTimeout: 5 * time.Minute,
		Dial: func() (redigo.Conn, error) {
			return redigo.Dial("tcp", fmt.Sprintf("%s:%d", host, port))
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
	return &redis{pool}
}

func (r *redis) Get(key string) (*cacher.Entry, bool, error) {
	reply, err := r.do("GET", keyPrefix+key)
	if err != nil {
		return nil, false, err
	}
	if reply == nil {
		return nil, false, nil
	}

	data, err := redigo.Bytes(reply, err)
	if err != nil {
		return nil, false, err
	}
	entry, err := deserialize(data)
	if err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (r *redis) Set(key string, entry *cacher.Entry, expiration time.Duration) error {
	buffer, err := serialize(entry)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	if _, err := r.do("SET", keyPrefix+key, buffer.Bytes(), "PX", expiration.Milliseconds()); err != nil {
		return fmt.Errorf("call SET: %w", err)
	}
	return nil
}

func (r *redis) Delete(key string) error {
	reply, err := r.do("DEL", keyPrefix+key)
	if err != nil {
		return err
	}
	ok, err := redigo.Bool(reply, err)
	if err != nil {
		return err
	}
	if !ok {
		return cacher.ErrEntryNotFound
	}
	return nil
}

func (r *redis) do(commandName string, args ...interface{}) (reply interface{}, err error) {
	c := r.pool.Get()
	defer c.Close()
	return c.Do(commandName, args...)
}
