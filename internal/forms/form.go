// Package forms хранит состояние отдельных экземпляров форм: значения полей,
// флаг отправки, ошибку и баннер успеха.
package forms

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"
)

// DefaultSuccessDelay — сколько висит баннер успеха.
const DefaultSuccessDelay = 5 * time.Second

var ErrInFlight = errors.New("submission already in progress")

// SubmitFunc выполняет саму отправку. Текст возвращённой ошибки показывается пользователю.
type SubmitFunc func(ctx context.Context, values map[string]string) error

type State struct {
	Kind    string
	Values  map[string]string
	Busy    bool
	Error   string
	Success bool
}

type Form struct {
	kind         string
	successDelay time.Duration

	mu      sync.Mutex
	values  map[string]string
	busy    bool
	err     string
	success bool
	timer   *time.Timer
	// gen отсекает срабатывание старого таймера после новой отправки
	gen uint64
}

func New(kind string, successDelay time.Duration) *Form {
	if successDelay <= 0 {
		successDelay = DefaultSuccessDelay
	}
	return &Form{
		kind:         kind,
		successDelay: successDelay,
		values:       map[string]string{},
	}
}

// Set records an edit. A changed value clears the retained error.
func (f *Form) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setLocked(name, value)
}

func (f *Form) SetAll(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, v := range values {
		f.setLocked(k, v)
	}
}

func (f *Form) setLocked(name, value string) {
	if f.values[name] != value {
		f.err = ""
	}
	f.values[name] = value
}

// Submit запускает отправку текущих значений. Пока предыдущая не завершилась,
// возвращает ErrInFlight и fn не вызывает.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	return f.SubmitWith(ctx, nil, fn)
}

// SubmitWith records edits and starts the submission under one lock, so parallel
// requests for the same form cannot mix each other's values.
func (f *Form) SubmitWith(ctx context.Context, edits map[string]string, fn SubmitFunc) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrInFlight
	}
	for k, v := range edits {
		f.setLocked(k, v)
	}
	f.busy = true
	f.err = ""
	f.success = false
	f.stopTimerLocked()
	values := maps.Clone(f.values)
	f.mu.Unlock()

	err := fn(ctx, values)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		f.err = err.Error()
		return err
	}

	f.values = map[string]string{}
	f.success = true
	f.gen++
	gen := f.gen
	f.timer = time.AfterFunc(f.successDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gen == gen {
			f.success = false
			f.timer = nil
		}
	})
	return nil
}

func (f *Form) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Kind:    f.kind,
		Values:  maps.Clone(f.values),
		Busy:    f.busy,
		Error:   f.err,
		Success: f.success,
	}
}

// Close останавливает таймер баннера.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopTimerLocked()
}

func (f *Form) stopTimerLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.gen++
}
