package slotlock

import "sync"

// KeyMutex арена мьютексов, ключованных строковым ключом слота
// Гарантирует взаимное исключение операций над одним слотом,
// операции над разными слотами идут полностью параллельно.
// Мьютекс для ключа существует только пока есть ожидающие - память не растет
// с количеством слотов.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// New создает пустую арену
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*lockEntry)}
}

// Lock захватывает мьютекс для указанного ключа
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

// Unlock освобождает мьютекс для указанного ключа
// Паника при освобождении незахваченного ключа - как у sync.Mutex
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("slotlock: unlock of unlocked key " + key)
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}
