package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// Safe wraps a KV so that reads fall back to a default and writes never
// fail. Errors and panics from the underlying store are logged at warn level
// and swallowed.
type Safe struct {
	kv     KV
	logger *slog.Logger
}

// NewSafe wraps kv. A nil kv gets an in-memory store; a nil logger discards.
func NewSafe(kv KV, logger *slog.Logger) *Safe {
	if kv == nil {
		kv = NewMemory()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Safe{kv: kv, logger: logger}
}

func (s *Safe) guard(op, key string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("store panic", "op", op, "key", key, "panic", r)
			ok = false
		}
	}()
	if err := fn(); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("store failure", "op", op, "key", key, "err", err)
		}
		return false
	}
	return true
}

func (s *Safe) raw(key string) (string, bool) {
	var v string
	ok := s.guard("get", key, func() (err error) {
		v, err = s.kv.GetString(key)
		return err
	})
	return v, ok
}

// String returns the stored value or def.
func (s *Safe) String(key, def string) string {
	if v, ok := s.raw(key); ok {
		return v
	}
	return def
}

// Lookup returns the stored value and whether one was present.
func (s *Safe) Lookup(key string) (string, bool) {
	return s.raw(key)
}

// Int returns the stored integer or def when missing or unparsable.
func (s *Safe) Int(key string, def int) int {
	v, ok := s.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		s.logger.Warn("store value", "key", key, "err", fmt.Errorf("%w: %v", ErrCorrupt, err))
		return def
	}
	return n
}

func (s *Safe) Float(key string, def float64) float64 {
	v, ok := s.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		s.logger.Warn("store value", "key", key, "err", fmt.Errorf("%w: %v", ErrCorrupt, err))
		return def
	}
	return f
}

func (s *Safe) Bool(key string, def bool) bool {
	v, ok := s.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		s.logger.Warn("store value", "key", key, "err", fmt.Errorf("%w: %v", ErrCorrupt, err))
		return def
	}
	return b
}

// SetString writes a value; failures are logged and ignored.
func (s *Safe) SetString(key, value string) {
	s.guard("set", key, func() error { return s.kv.SetString(key, value) })
}

func (s *Safe) SetInt(key string, v int) {
	s.SetString(key, strconv.Itoa(v))
}

func (s *Safe) SetFloat(key string, v float64) {
	s.SetString(key, strconv.FormatFloat(v, 'f', -1, 64))
}

func (s *Safe) SetBool(key string, v bool) {
	s.SetString(key, strconv.FormatBool(v))
}

func (s *Safe) Delete(key string) {
	s.guard("delete", key, func() error { return s.kv.Delete(key) })
}
