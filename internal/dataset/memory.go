package dataset

import "sync"

// Memory is an in-process Reader keyed by container and dataset path.
type Memory struct {
	mu     sync.RWMutex
	floats map[[2]string][]float64
	ints   map[[2]string][]int64
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		floats: make(map[[2]string][]float64),
		ints:   make(map[[2]string][]int64),
	}
}

// PutFloat64 stores a float dataset.
func (m *Memory) PutFloat64(container, path string, data []float64) {
	m.mu.Lock()
	m.floats[[2]string{container, path}] = data
	m.mu.Unlock()
}

// PutInt64 stores an integer dataset.
func (m *Memory) PutInt64(container, path string, data []int64) {
	m.mu.Lock()
	m.ints[[2]string{container, path}] = data
	m.mu.Unlock()
}

func (m *Memory) ReadFloat64(container, path string, count int) ([]float64, error) {
	m.mu.RLock()
	data, ok := m.floats[[2]string{container, path}]
	m.mu.RUnlock()
	if !ok {
		return nil, readErr(container, path, "no float dataset")
	}
	if err := checkCount(container, path, len(data), count); err != nil {
		return nil, err
	}
	out := make([]float64, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) ReadInt64(container, path string, count int) ([]int64, error) {
	m.mu.RLock()
	data, ok := m.ints[[2]string{container, path}]
	m.mu.RUnlock()
	if !ok {
		return nil, readErr(container, path, "no integer dataset")
	}
	if err := checkCount(container, path, len(data), count); err != nil {
		return nil, err
	}
	out := make([]int64, len(data))
	copy(out, data)
	return out, nil
}
