package main

import (
	"sort"
	"sync"

	"github.com/kdudkov/chinacoord/pkg/model"
)

func NewLayers() *Layers {
	return &Layers{
		data: sync.Map{},
	}
}

type Layers struct {
	data sync.Map
}

func (h *Layers) Get(key string) (*model.Layer, bool) {
	if v, ok := h.data.Load(key); ok {
		if n, ok1 := v.(*model.Layer); ok1 {
			return n, true
		}
	}

	return nil, false
}

func (h *Layers) Add(l *model.Layer) {
	if l == nil {
		return
	}

	h.data.Store(l.GetKey(), l)
}

func (h *Layers) Remove(key string) {
	h.data.Delete(key)
}

// Replace drops layers missing from the new set and stores the rest.
func (h *Layers) Replace(layers []*model.Layer) {
	keys := make(map[string]bool, len(layers))

	for _, l := range layers {
		keys[l.GetKey()] = true
		h.Add(l)
	}

	h.All(func(l *model.Layer) bool {
		if !keys[l.GetKey()] {
			h.Remove(l.GetKey())
		}

		return true
	})
}

func (h *Layers) All(f func(l *model.Layer) bool) {
	h.data.Range(func(_, value any) bool {
		if l, ok := value.(*model.Layer); ok {
			return f(l)
		}

		return true
	})
}

// Sorted returns all layers ordered by key.
func (h *Layers) Sorted() []*model.Layer {
	var res []*model.Layer

	h.All(func(l *model.Layer) bool {
		res = append(res, l)
		return true
	})

	sort.Slice(res, func(i, j int) bool {
		return res[i].GetKey() < res[j].GetKey()
	})

	return res
}
