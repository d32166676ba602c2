package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale/pkg/utils/debounce"
	"github.com/ems-iodt/twinscale/pkg/utils/filewatch"
)

var ErrInterfaceNotFound = errors.New("interface is not found in the catalog")

// registryEntry is one row of the library's registry.json: it binds a
// DTMI to its document file and carries search metadata the DTDL
// format itself has no place for.
type registryEntry struct {
	DTMI      string   `json:"dtmi"`
	File      string   `json:"file"`
	ThingType string   `json:"thingType,omitempty"`
	Domain    string   `json:"domain,omitempty"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type registry struct {
	Interfaces []registryEntry `json:"interfaces"`
}

type entry struct {
	meta registryEntry
	doc  Document
}

// Filter narrows a catalog search. Zero fields do not filter.
type Filter struct {
	ThingType string
	Domain    string
	Category  string
	Tags      []string
	Keyword   string
}

// Library is the in-memory view of the DTDL library directory. It is
// safe for concurrent use; Reload swaps the whole cache at once.
type Library struct {
	dir string

	mu      sync.RWMutex
	entries []entry
	byDTMI  map[string]entry
}

// Load reads the library directory (registry.json plus the document
// files it names) into memory.
func Load(dir string) (*Library, error) {
	lib := &Library{dir: dir}
	if err := lib.Reload(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Reload re-reads the directory. On error the previous cache stays in
// place. Documents named by the registry but unreadable or
// unparsable are skipped, not fatal, so one broken file does not take
// the whole catalog down.
func (lib *Library) Reload() error {
	buf, err := os.ReadFile(filepath.Join(lib.dir, "registry.json"))
	if err != nil {
		return fmt.Errorf("cannot read the catalog registry: %w", err)
	}
	reg := registry{}
	if err := json.Unmarshal(buf, &reg); err != nil {
		return fmt.Errorf("cannot parse the catalog registry: %w", err)
	}

	entries := make([]entry, 0, len(reg.Interfaces))
	byDTMI := make(map[string]entry, len(reg.Interfaces))
	for _, meta := range reg.Interfaces {
		buf, err := os.ReadFile(filepath.Join(lib.dir, meta.File))
		if err != nil {
			continue
		}
		doc := Document{}
		if err := json.Unmarshal(buf, &doc); err != nil {
			continue
		}
		if doc.ID == "" {
			doc.ID = meta.DTMI
		}
		e := entry{meta: meta, doc: doc}
		entries = append(entries, e)
		byDTMI[meta.DTMI] = e
	}

	lib.mu.Lock()
	defer lib.mu.Unlock()
	lib.entries = entries
	lib.byDTMI = byDTMI
	return nil
}

// Watch reloads the library when files in its directory change,
// coalescing bursts of writes, until ctx is done.
func (lib *Library) Watch(ctx context.Context, logger *log.Logger) error {
	events, err := filewatch.Modified(ctx, lib.dir)
	if err != nil {
		return err
	}

	deb := debounce.New(debounce.DefaultQuiet)
	defer deb.Stop()

	reload := func(token uint64) {
		if !deb.Current(token) {
			return
		}
		if err := lib.Reload(); err != nil {
			logger.Printf("catalog reload failed: %s", err)
			return
		}
		logger.Printf("catalog reloaded: %d interfaces", lib.Len())
	}

	for range events {
		deb.Trigger(reload)
	}
	return ctx.Err()
}

func (lib *Library) Len() int {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	return len(lib.entries)
}

// Get yields the parsed document for dtmi, or ErrInterfaceNotFound.
func (lib *Library) Get(dtmi string) (Document, error) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	e, ok := lib.byDTMI[dtmi]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, dtmi)
	}
	return e.doc, nil
}

// Ref yields the search-metadata view of dtmi.
func (lib *Library) Ref(dtmi string) (dtdl.InterfaceRef, error) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	e, ok := lib.byDTMI[dtmi]
	if !ok {
		return dtdl.InterfaceRef{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, dtmi)
	}
	return e.ref(), nil
}

func (e entry) ref() dtdl.InterfaceRef {
	return dtdl.InterfaceRef{
		DTMI:        e.meta.DTMI,
		DisplayName: e.doc.DisplayName,
		Description: e.doc.Description,
		ThingType:   e.meta.ThingType,
		Domain:      e.meta.Domain,
		Category:    e.meta.Category,
		Tags:        e.meta.Tags,
	}
}

// Search lists interfaces matching every given filter field, in
// registry order.
func (lib *Library) Search(filter Filter) []dtdl.InterfaceRef {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	found := []dtdl.InterfaceRef{}
	for _, e := range lib.entries {
		if !e.matches(filter) {
			continue
		}
		found = append(found, e.ref())
	}
	return found
}

func (e entry) matches(filter Filter) bool {
	if filter.ThingType != "" && e.meta.ThingType != filter.ThingType {
		return false
	}
	if filter.Domain != "" && e.meta.Domain != filter.Domain {
		return false
	}
	if filter.Category != "" && e.meta.Category != filter.Category {
		return false
	}
	for _, want := range filter.Tags {
		if !slices.Contains(e.meta.Tags, want) {
			return false
		}
	}
	if filter.Keyword != "" {
		kw := strings.ToLower(filter.Keyword)
		haystack := strings.ToLower(strings.Join(append(
			[]string{e.meta.DTMI, e.doc.DisplayName, e.doc.Description},
			e.meta.Tags...,
		), "\n"))
		if !strings.Contains(haystack, kw) {
			return false
		}
	}
	return true
}
