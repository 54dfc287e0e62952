package cacher

import (
	"gourluses/models"
	"time"
)

type Entry struct {
	Url models.Url
}

type Engine interface {
	Get(key string) (*Entry, bool)
	Set(key string, entry *Entry, expiration time.Duration)
	Delete(key string)
}
