package ostore

import (
	"iter"

	"github.com/ValentinKolb/dColl/lib/store"
)

// node is a single entry in the linked list of the store
type node struct {
	key   store.Key
	value any
	prev  *node
	next  *node
}

type storeImpl struct {
	index map[store.Key]*node
	head  *node // oldest entry
	tail  *node // newest entry
}

// NewOrderedStore creates a new, empty ordered store.
func NewOrderedStore() store.IStore {
	return &storeImpl{
		index: make(map[store.Key]*node),
	}
}

// Factory is a store.StoreFactory creating ordered stores
func Factory() store.IStore {
	return NewOrderedStore()
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(key store.Key, value any) {
	if n, ok := s.index[key]; ok {
		n.value = value
		return
	}
	s.pushBack(&node{key: key, value: value})
}

func (s *storeImpl) Get(key store.Key) (any, bool) {
	n, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return n.value, true
}

func (s *storeImpl) Has(key store.Key) bool {
	_, ok := s.index[key]
	return ok
}

func (s *storeImpl) Delete(key store.Key) bool {
	n, ok := s.index[key]
	if !ok {
		return false
	}
	s.unlink(n)
	delete(s.index, key)
	return true
}

func (s *storeImpl) Len() int {
	return len(s.index)
}

func (s *storeImpl) Clear() {
	s.index = make(map[store.Key]*node)
	s.head = nil
	s.tail = nil
}

func (s *storeImpl) First() (store.Entry, bool) {
	if s.head == nil {
		return store.Entry{}, false
	}
	return store.Entry{Key: s.head.key, Value: s.head.value}, true
}

func (s *storeImpl) Last() (store.Entry, bool) {
	if s.tail == nil {
		return store.Entry{}, false
	}
	return store.Entry{Key: s.tail.key, Value: s.tail.value}, true
}

func (s *storeImpl) All() iter.Seq2[store.Key, any] {
	return func(yield func(store.Key, any) bool) {
		for n := s.head; n != nil; {
			// read next before yielding so the caller may delete the current entry
			next := n.next
			if !yield(n.key, n.value) {
				return
			}
			n = next
		}
	}
}

func (s *storeImpl) Backward() iter.Seq2[store.Key, any] {
	return func(yield func(store.Key, any) bool) {
		for n := s.tail; n != nil; {
			prev := n.prev
			if !yield(n.key, n.value) {
				return
			}
			n = prev
		}
	}
}

func (s *storeImpl) Snapshot() store.Snapshot {
	snap := make(store.Snapshot, 0, len(s.index))
	for n := s.head; n != nil; n = n.next {
		snap = append(snap, store.Entry{Key: n.key, Value: n.value})
	}
	return snap
}

func (s *storeImpl) Replace(entries store.Snapshot) {
	s.Clear()
	for _, e := range entries {
		s.Set(e.Key, e.Value)
	}
}

// --------------------------------------------------------------------------
// Linked List Helpers
// --------------------------------------------------------------------------

// pushBack appends a new node to the end of the list and registers it in the index
func (s *storeImpl) pushBack(n *node) {
	s.index[n.key] = n
	if s.tail == nil {
		s.head = n
		s.tail = n
		return
	}
	n.prev = s.tail
	s.tail.next = n
	s.tail = n
}

// unlink removes a node from the list, the index is not touched
func (s *storeImpl) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}
