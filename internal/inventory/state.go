package inventory

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"invdash/internal"
	"invdash/internal/util"
)

var (
	ErrEmptySerial      = errors.New("serial number is required")
	ErrUnknownStatus    = errors.New("unknown notebook status")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrIngestInProgress = errors.New("ingestion already in progress")
)

// State owns the current Inventory. It starts empty, is replaced wholesale by
// each ingestion and is edited in place by the CRUD operations in between.
type State struct {
	mu        sync.RWMutex
	inv       internal.Inventory
	ingesting atomic.Bool
}

func New() *State {
	return &State{inv: internal.Inventory{
		Notebooks: []internal.Notebook{},
		Handhelds: []internal.Handheld{},
		Printers:  []internal.Printer{},
	}}
}

func NewFrom(inv internal.Inventory) *State {
	s := New()
	s.Replace(inv)
	return s
}

func (s *State) Snapshot() internal.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inv.Clone()
}

func (s *State) Replace(inv internal.Inventory) {
	next := inv.Clone()
	s.mu.Lock()
	s.inv = next
	s.mu.Unlock()
}

// BeginIngest marks an ingestion as running. The returned func must be called
// when it finishes; a second caller gets ErrIngestInProgress meanwhile.
func (s *State) BeginIngest() (func(), error) {
	if !s.ingesting.CompareAndSwap(false, true) {
		return nil, ErrIngestInProgress
	}
	var once sync.Once
	return func() { once.Do(func() { s.ingesting.Store(false) }) }, nil
}

// Find returns the first record of the category with the given serial.
func (s *State) Find(cat internal.Category, serial string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch cat {
	case internal.CategoryNotebooks:
		if i := indexOf(s.inv.Notebooks, serial, func(n internal.Notebook) string { return n.SerialNumber }); i >= 0 {
			return s.inv.Notebooks[i], true
		}
	case internal.CategoryHandhelds:
		if i := indexOf(s.inv.Handhelds, serial, func(h internal.Handheld) string { return h.SerialNumber }); i >= 0 {
			return s.inv.Handhelds[i], true
		}
	case internal.CategoryPrinters:
		if i := indexOf(s.inv.Printers, serial, func(p internal.Printer) string { return p.SerialNumber }); i >= 0 {
			return s.inv.Printers[i], true
		}
	}
	return nil, false
}

// SaveNotebook edits the first notebook with this serial or appends a new one.
// created reports which of the two happened.
func (s *State) SaveNotebook(serial, model, status string) (created bool, err error) {
	sn := util.CanonicalSerial(serial)
	if sn == "" {
		return false, ErrEmptySerial
	}
	st, ok := internal.ParseNotebookStatus(status)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	item := internal.Notebook{
		SerialNumber: sn,
		Model:        util.FirstNonBlank(internal.DefaultNotebookModel, model),
		Status:       st,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.inv.Notebooks, sn, func(n internal.Notebook) string { return n.SerialNumber }); i >= 0 {
		s.inv.Notebooks[i] = item
		return false, nil
	}
	s.inv.Notebooks = append(s.inv.Notebooks, item)
	return true, nil
}

func (s *State) SaveHandheld(serial, status string) (bool, error) {
	sn := util.CanonicalSerial(serial)
	if sn == "" {
		return false, ErrEmptySerial
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item := internal.Handheld{
		ID:           internal.ManualRecordID,
		SerialNumber: sn,
		Status:       util.FirstNonBlank(internal.DefaultHandheldStatus, status),
	}
	if i := indexOf(s.inv.Handhelds, sn, func(h internal.Handheld) string { return h.SerialNumber }); i >= 0 {
		item.ID = s.inv.Handhelds[i].ID
		s.inv.Handhelds[i] = item
		return false, nil
	}
	s.inv.Handhelds = append(s.inv.Handhelds, item)
	return true, nil
}

func (s *State) SavePrinter(serial, ip string) (bool, error) {
	sn := util.CanonicalSerial(serial)
	if sn == "" {
		return false, ErrEmptySerial
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item := internal.Printer{
		ID:           internal.ManualRecordID,
		IPAddress:    util.NormalizeSpaces(ip),
		SerialNumber: sn,
	}
	if i := indexOf(s.inv.Printers, sn, func(p internal.Printer) string { return p.SerialNumber }); i >= 0 {
		item.ID = s.inv.Printers[i].ID
		s.inv.Printers[i] = item
		return false, nil
	}
	s.inv.Printers = append(s.inv.Printers, item)
	return true, nil
}

// Delete removes every record of the category carrying the serial and returns
// how many were removed.
func (s *State) Delete(cat internal.Category, serial string) (int, error) {
	sn := util.CanonicalSerial(serial)
	if sn == "" {
		return 0, ErrEmptySerial
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	switch cat {
	case internal.CategoryNotebooks:
		s.inv.Notebooks, removed = without(s.inv.Notebooks, sn, func(n internal.Notebook) string { return n.SerialNumber })
	case internal.CategoryHandhelds:
		s.inv.Handhelds, removed = without(s.inv.Handhelds, sn, func(h internal.Handheld) string { return h.SerialNumber })
	case internal.CategoryPrinters:
		s.inv.Printers, removed = without(s.inv.Printers, sn, func(p internal.Printer) string { return p.SerialNumber })
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	return removed, nil
}

func indexOf[T any](items []T, serial string, key func(T) string) int {
	for i, item := range items {
		if util.SameSerial(key(item), serial) {
			return i
		}
	}
	return -1
}

func without[T any](items []T, serial string, key func(T) string) ([]T, int) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if util.SameSerial(key(item), serial) {
			continue
		}
		out = append(out, item)
	}
	return out, len(items) - len(out)
}
