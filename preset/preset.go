// Package preset implements the built-in + user preset library: named
// bundles of effect steps, tag management with cascade delete, and
// .pspi export/import.
//
// Grounded on original_source/core/preset_manager.py's PresetManager
// (builtin/user preset lists, builtin/user/deleted tag sets, the
// export_presets/import_presets .pspi format).
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"glitchmaker/dsp"
	"glitchmaker/ledger"
)

// ApplyPreset appends one processing Operation per effect step in p,
// global in range, to l — the engine-facing consumption path for a
// preset once it has been looked up by name.
func ApplyPreset(l *ledger.Ledger, p Preset) error {
	for _, step := range p.Effects {
		op := ledger.NewOperation(ledger.KindEffect, fmt.Sprintf("%s (%s)", step.EffectID, p.Name))
		op.EffectID = step.EffectID
		op.Params = step.Params
		op.IsGlobal = true
		if err := l.AppendProcessingOp(op); err != nil {
			return err
		}
	}
	return nil
}

const pspiFormat = "glitchmaker_presets"

// EffectStep is one effect application recorded in a preset.
type EffectStep struct {
	EffectID dsp.EffectID `json:"effect_id"`
	Params   dsp.Params   `json:"params"`
}

// Preset is a named, taggable bundle of effect steps.
type Preset struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Tags        []string     `json:"tags"`
	Effects     []EffectStep `json:"effects"`
	Builtin     bool         `json:"builtin"`
}

type builtinFile struct {
	Presets []Preset `json:"presets"`
	Tags    []string `json:"tags"`
}

type pspiFile struct {
	Format  string   `json:"format"`
	Version int      `json:"version"`
	Tags    []string `json:"tags"`
	Presets []Preset `json:"presets"`
}

// Manager holds the merged builtin + user preset/tag state and persists
// user edits to disk, mirroring the original's three-file layout
// (~/.glitchmaker_presets.json, ~/.glitchmaker_tags.json,
// ~/.glitchmaker_deleted_tags.json) plus a read-only builtin assets file.
type Manager struct {
	builtin      []Preset
	user         []Preset
	builtinTags  []string
	userTags     []string
	deletedTags  []string

	builtinPath     string
	userPath        string
	userTagsPath    string
	deletedTagsPath string
}

// NewManager loads builtin presets from assetsDir/presets.json and user
// state from the user's home directory, tolerating missing/corrupt files
// exactly as the original's best-effort try/except load does.
func NewManager(assetsDir string) *Manager {
	home, _ := os.UserHomeDir()
	m := &Manager{
		builtinPath:     filepath.Join(assetsDir, "presets.json"),
		userPath:        filepath.Join(home, ".glitchmaker_presets.json"),
		userTagsPath:    filepath.Join(home, ".glitchmaker_tags.json"),
		deletedTagsPath: filepath.Join(home, ".glitchmaker_deleted_tags.json"),
	}
	m.load()
	return m
}

func (m *Manager) load() {
	var bf builtinFile
	if readJSONFile(m.builtinPath, &bf) {
		m.builtin = bf.Presets
		m.builtinTags = bf.Tags
	}
	var user []Preset
	if readJSONFile(m.userPath, &user) {
		m.user = user
	}
	var userTags []string
	if readJSONFile(m.userTagsPath, &userTags) {
		m.userTags = userTags
	}
	var deleted []string
	if readJSONFile(m.deletedTagsPath, &deleted) {
		m.deletedTags = deleted
	}
}

func readJSONFile(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func writeJSONFile(path string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

func (m *Manager) saveUser()        { writeJSONFile(m.userPath, m.user) }
func (m *Manager) saveTags()        { writeJSONFile(m.userTagsPath, m.userTags) }
func (m *Manager) saveDeletedTags() { writeJSONFile(m.deletedTagsPath, m.deletedTags) }

// AllPresets returns builtin presets followed by user presets.
func (m *Manager) AllPresets() []Preset {
	out := make([]Preset, 0, len(m.builtin)+len(m.user))
	out = append(out, m.builtin...)
	out = append(out, m.user...)
	return out
}

// GetPreset finds a preset by exact name.
func (m *Manager) GetPreset(name string) (Preset, bool) {
	for _, p := range m.AllPresets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetsByTag returns every preset carrying the given tag.
func (m *Manager) PresetsByTag(tag string) []Preset {
	var out []Preset
	for _, p := range m.AllPresets() {
		if containsString(p.Tags, tag) {
			out = append(out, p)
		}
	}
	return out
}

// AddPreset appends a new user preset and persists it.
func (m *Manager) AddPreset(name, description string, tags []string, effects []EffectStep) {
	m.user = append(m.user, Preset{Name: name, Description: description, Tags: tags, Effects: effects, Builtin: false})
	m.saveUser()
}

// DeletePreset removes a user preset by name. Builtin presets cannot be
// deleted this way (mirrors the original: only _user is searched).
func (m *Manager) DeletePreset(name string) bool {
	for i, p := range m.user {
		if p.Name == name {
			m.user = append(m.user[:i], m.user[i+1:]...)
			m.saveUser()
			return true
		}
	}
	return false
}

// AllTags returns the union of active builtin and user tags, plus any tag
// still referenced by a non-deleted preset, minus deleted tags — sorted.
func (m *Manager) AllTags() []string {
	set := map[string]bool{}
	for _, t := range m.builtinTags {
		if !containsString(m.deletedTags, t) {
			set[t] = true
		}
	}
	for _, t := range m.userTags {
		set[t] = true
	}
	for _, p := range m.AllPresets() {
		for _, t := range p.Tags {
			if !containsString(m.deletedTags, t) {
				set[t] = true
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// AddTag registers a new user tag, un-deleting it first if it was
// previously removed.
func (m *Manager) AddTag(tag string) {
	if tag == "" {
		return
	}
	if containsString(m.deletedTags, tag) {
		m.deletedTags = removeString(m.deletedTags, tag)
		m.saveDeletedTags()
	}
	if !containsString(m.builtinTags, tag) && !containsString(m.userTags, tag) {
		m.userTags = append(m.userTags, tag)
		m.saveTags()
	}
}

// DeleteTag removes a tag from every preset (builtin presets only in
// memory, user presets persisted) and marks it deleted so a builtin tag
// stays hidden even though presets.json itself is never rewritten.
func (m *Manager) DeleteTag(tag string) bool {
	if containsString(m.userTags, tag) {
		m.userTags = removeString(m.userTags, tag)
		m.saveTags()
	}
	if !containsString(m.deletedTags, tag) {
		m.deletedTags = append(m.deletedTags, tag)
		m.saveDeletedTags()
	}
	for i := range m.builtin {
		m.builtin[i].Tags = removeString(m.builtin[i].Tags, tag)
	}
	changed := false
	for i := range m.user {
		if containsString(m.user[i].Tags, tag) {
			m.user[i].Tags = removeString(m.user[i].Tags, tag)
			changed = true
		}
	}
	if changed {
		m.saveUser()
	}
	return true
}

// IsBuiltinTag reports whether tag originates from the builtin asset file
// and hasn't been deleted.
func (m *Manager) IsBuiltinTag(tag string) bool {
	return containsString(m.builtinTags, tag) && !containsString(m.deletedTags, tag)
}

// ExportPresets writes the named presets (or, if names is empty, every user
// preset, or every preset when there are no user presets) to a .pspi file
// alongside the tags they use.
func (m *Manager) ExportPresets(path string, names []string) error {
	all := m.AllPresets()
	var presets []Preset
	if len(names) > 0 {
		for _, p := range all {
			if containsString(names, p.Name) {
				presets = append(presets, p)
			}
		}
	} else if len(m.user) > 0 {
		presets = append(presets, m.user...)
	} else {
		presets = all
	}

	tagSet := map[string]bool{}
	for _, p := range presets {
		for _, t := range p.Tags {
			tagSet[t] = true
		}
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	data := pspiFile{Format: pspiFormat, Version: 1, Tags: tags, Presets: presets}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ImportPresets reads a .pspi file, registering any new tags and any
// presets whose names don't already exist. Returns the count imported and
// the names of presets skipped as duplicates.
func (m *Manager) ImportPresets(path string) (int, []string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, err
	}
	var data pspiFile
	if err := json.Unmarshal(b, &data); err != nil {
		return 0, nil, err
	}
	if data.Format != pspiFormat {
		return 0, nil, fmt.Errorf("preset: invalid preset file format")
	}

	existing := map[string]bool{}
	for _, p := range m.AllPresets() {
		existing[p.Name] = true
	}
	allTags := m.AllTags()
	for _, t := range data.Tags {
		if t != "" && !containsString(allTags, t) {
			m.AddTag(t)
		}
	}

	var skipped []string
	imported := 0
	for _, p := range data.Presets {
		if p.Name == "" {
			continue
		}
		if existing[p.Name] {
			skipped = append(skipped, p.Name)
			continue
		}
		p.Builtin = false
		m.user = append(m.user, p)
		existing[p.Name] = true
		imported++
	}
	if imported > 0 {
		m.saveUser()
	}
	return imported, skipped, nil
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func removeString(s []string, v string) []string {
	out := s[:0:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
