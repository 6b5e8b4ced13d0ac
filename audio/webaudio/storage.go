//go:build js
// +build js

package webaudio

import (
	"fmt"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/journey-soundscape/audio"
)

// LocalStorage is an audio.Store over window.localStorage. Browsers that
// block storage (private mode, sandboxed frames) throw; those errors are
// returned instead of panicking.
type LocalStorage struct{}

func storage() *js.Object {
	ls := js.Global.Get("localStorage")
	if !defined(ls) {
		return nil
	}
	return ls
}

func (LocalStorage) Get(key string) (v string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage get %q: %v", key, r)
		}
	}()
	ls := storage()
	if ls == nil {
		return "", audio.ErrNotFound
	}
	item := ls.Call("getItem", key)
	if !defined(item) {
		return "", audio.ErrNotFound
	}
	return item.String(), nil
}

func (LocalStorage) Set(key, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage set %q: %v", key, r)
		}
	}()
	ls := storage()
	if ls == nil {
		return fmt.Errorf("localStorage unavailable")
	}
	ls.Call("setItem", key, value)
	return nil
}
